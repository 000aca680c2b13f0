package services

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/blogem/ehs-records/repositories"
	"github.com/blogem/ehs-records/userctx"
)

// RecordService interface defines CRUD for one kind of EHS record
type RecordService[T any, F any] interface {
	Create(ctx context.Context, form *F) (*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id int64, form *F) (*T, error)
}

// recordService implements RecordService interface
type recordService[T any, F any] struct {
	repo  repositories.RecordRepository[T]
	label string
	// build validates a form into a record
	build func(*F) (*T, error)
	// touch runs before every write, may be nil
	touch func(*T)
}

func newRecordService[T any, F any](repo repositories.RecordRepository[T], label string, build func(*F) (*T, error), touch func(*T)) RecordService[T, F] {
	return &recordService[T, F]{repo: repo, label: label, build: build, touch: touch}
}

func (s *recordService[T, F]) Create(ctx context.Context, form *F) (*T, error) {
	record, err := s.build(form)
	if err != nil {
		return nil, err
	}
	if s.touch != nil {
		s.touch(record)
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", s.label)
	}
	log.WithFields(log.Fields{"record": s.label, "user": userctx.GetUser(ctx)}).Debug("record created")
	return record, nil
}

func (s *recordService[T, F]) Get(ctx context.Context, id int64) (*T, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *recordService[T, F]) List(ctx context.Context) ([]T, error) {
	return s.repo.List(ctx)
}

func (s *recordService[T, F]) Update(ctx context.Context, id int64, form *F) (*T, error) {
	record, err := s.build(form)
	if err != nil {
		return nil, err
	}
	if s.touch != nil {
		s.touch(record)
	}
	if err := s.repo.Update(ctx, id, record); err != nil {
		return nil, errors.Wrapf(err, "failed to update %s %d", s.label, id)
	}
	log.WithFields(log.Fields{"record": s.label, "id": id, "user": userctx.GetUser(ctx)}).Debug("record updated")
	return record, nil
}
