package main

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/blogem/ehs-records/config"
	"github.com/blogem/ehs-records/models"
	"github.com/blogem/ehs-records/services"
	"github.com/blogem/ehs-records/userctx"
)

//go:embed seed_data.yaml
var seedYAML []byte

type seedUser struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type seedDocument struct {
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
}

type seedData struct {
	Users         []seedUser     `yaml:"users"`
	Groups        []string       `yaml:"groups"`
	Locations     []string       `yaml:"locations"`
	Shifts        []string       `yaml:"shifts"`
	Machines      []string       `yaml:"machines"`
	Regions       []string       `yaml:"regions"`
	Bays          []string       `yaml:"bays"`
	Names         []string       `yaml:"names"`
	WorkTypes     []string       `yaml:"work_types"`
	IncidentTypes []string       `yaml:"incident_types"`
	Documents     []seedDocument `yaml:"documents"`
}

type SeedFlags struct {
	StorageFlags *config.StorageFlags
	Plans        int
	Records      int
	RandomSeed   uint64
}

func NewSeedCommand() *cobra.Command {
	f := &SeedFlags{
		StorageFlags: config.NewStorageFlags(),
		Plans:        25,
		Records:      15,
		RandomSeed:   34,
	}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with sample records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.StorageFlags.Validate(); err != nil {
				return errors.WithMessage(err, "error validating options")
			}

			var data seedData
			if err := yaml.Unmarshal(seedYAML, &data); err != nil {
				return errors.Wrap(err, "invalid embedded seed data")
			}

			repos, db, err := f.StorageFlags.GetRepositories(cmd.Context())
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}

			s := &seeder{
				srvs: services.NewServices(repos),
				data: data,
				rnd:  rand.New(rand.NewPCG(f.RandomSeed, f.RandomSeed)),
			}
			return s.run(userctx.SetUser(cmd.Context(), "seed"), f.Plans, f.Records)
		},
	}

	f.StorageFlags.BindFlags(cmd.Flags())
	cmd.Flags().IntVar(&f.Plans, "plans", f.Plans, "Number of safety plans to create")
	cmd.Flags().IntVar(&f.Records, "records", f.Records, "Number of records to create per collection")
	cmd.Flags().Uint64Var(&f.RandomSeed, "random-seed", f.RandomSeed, "Seed for the sample generator")
	return cmd
}

type seeder struct {
	srvs *services.Services
	data seedData
	rnd  *rand.Rand
}

func (s *seeder) pick(values []string) string {
	return values[s.rnd.IntN(len(values))]
}

func (s *seeder) yesNo() string {
	if s.rnd.IntN(2) == 0 {
		return models.AnswerYes
	}
	return models.AnswerNo
}

// date returns a day in the past year
func (s *seeder) date() string {
	return models.FormatDate(time.Now().AddDate(0, 0, -s.rnd.IntN(365)))
}

func (s *seeder) run(ctx context.Context, plans, records int) error {
	steps := []struct {
		name string
		fn   func(context.Context, int) error
	}{
		{"users", s.users},
		{"safety plans", s.safetyPlans},
		{"permits", s.permits},
		{"crane inspections", s.inspections},
		{"calibrations", s.calibrations},
		{"incidents", s.incidents},
		{"documents", s.documents},
	}
	for _, step := range steps {
		n := records
		if step.name == "safety plans" {
			n = plans
		}
		if err := step.fn(ctx, n); err != nil {
			return errors.Wrapf(err, "failed to seed %s", step.name)
		}
		log.WithField("collection", step.name).Info("seeded")
	}
	return nil
}

func (s *seeder) users(ctx context.Context, _ int) error {
	for _, u := range s.data.Users {
		_, err := s.srvs.Users.Register(ctx, u.Username, u.Password)
		if models.IsConflict(err) {
			log.WithField("user", u.Username).Debug("user already exists")
		} else if err != nil {
			return err
		}

		notFirst := false
		_, err = s.srvs.Preferences.Save(ctx, u.Username, &models.UserPreferencesForm{
			System:      s.pick(models.Systems),
			Group:       s.pick(s.data.Groups),
			Site:        s.pick(s.data.Locations),
			IsFirstTime: &notFirst,
			Role:        u.Role,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) safetyPlans(ctx context.Context, n int) error {
	catalog := models.Hazards()

	for i := 0; i < n; i++ {
		form := &models.SafetyPlanForm{
			Group:             s.pick(s.data.Groups),
			TaskName:          fmt.Sprintf("%s on %s", s.pick(s.data.WorkTypes), s.pick(s.data.Machines)),
			Date:              s.date(),
			Location:          s.pick(s.data.Locations),
			Shift:             s.pick(s.data.Shifts),
			MachineNumber:     s.pick(s.data.Machines),
			Region:            s.pick(s.data.Regions),
			System:            s.pick(models.Systems),
			CanSocialDistance: s.yesNo(),
			ScreeningAnswers: models.ScreeningAnswers{
				Q1SpecializedTraining: s.yesNo(),
				Q2Chemicals:           s.yesNo(),
				Q3ImpactOthers:        s.yesNo(),
				Q4Falls:               s.yesNo(),
				Q5Barricades:          s.yesNo(),
				Q6Loto:                s.yesNo(),
				Q7Lifting:             s.yesNo(),
				Q8Ergonomics:          s.yesNo(),
				Q9OtherConcerns:       s.yesNo(),
				Q10HeadInjury:         s.yesNo(),
				Q11OtherPPE:           s.yesNo(),
			},
			Assessments: map[string]models.HazardAssessment{},
			LeadName:    s.pick(s.data.Names),
			Engineers:   []string{s.pick(s.data.Names)},
			Status:      string(models.StatusDraft),
		}

		for _, idx := range s.rnd.Perm(len(catalog))[:1+s.rnd.IntN(4)] {
			h := catalog[idx]
			form.Hazards = append(form.Hazards, h.Name)
			// some hazards stay unassessed
			if s.rnd.IntN(5) == 0 {
				continue
			}
			a := models.DefaultAssessment(h.Name)
			a.Severity = 1 + s.rnd.IntN(models.MaxRating)
			a.Likelihood = 1 + s.rnd.IntN(models.MaxRating)
			a.Mitigation = "Implement safety protocols for " + strings.ToLower(h.Name)
			form.Assessments[h.Name] = a
		}

		plan, err := s.srvs.SafetyPlans.Create(ctx, form)
		if err != nil {
			return err
		}
		if err := s.advance(ctx, plan.ID); err != nil {
			return err
		}
	}
	return nil
}

// advance walks a draft plan to a random point of the workflow
func (s *seeder) advance(ctx context.Context, id int64) error {
	target := []models.PlanStatus{models.StatusDraft, models.StatusPending, models.StatusApproved, models.StatusRejected}[s.rnd.IntN(4)]
	if target == models.StatusDraft {
		return nil
	}

	if _, err := s.srvs.SafetyPlans.Transition(ctx, id, &models.TransitionRequest{Status: string(models.StatusPending)}); err != nil {
		return err
	}
	if target == models.StatusPending {
		return nil
	}

	comments := "Reviewed during seeding"
	_, err := s.srvs.SafetyPlans.Transition(ctx, id, &models.TransitionRequest{
		Status:   string(target),
		Approver: s.pick(s.data.Names),
		Comments: &comments,
	})
	return err
}

func (s *seeder) permits(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		_, err := s.srvs.Permits.Create(ctx, &models.PermitForm{
			Date:            s.date(),
			Submitter:       s.pick(s.data.Names),
			Manager:         s.pick(s.data.Names),
			Location:        s.pick(s.data.Locations),
			WorkType:        s.pick(s.data.WorkTypes),
			WorkDescription: fmt.Sprintf("Performing %s work on %s", strings.ToLower(s.pick(s.data.WorkTypes)), s.pick(s.data.Machines)),
			Spq1:            s.yesNo(),
			Spq2:            s.yesNo(),
			Spq3:            s.yesNo(),
			Spq4:            s.yesNo(),
			Spq5:            s.yesNo(),
			AuthorityName:   s.pick(s.data.Names),
			Status:          s.pick([]string{models.PermitDraft, models.PermitPending, models.PermitApproved, models.PermitRejected}),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) inspections(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		_, err := s.srvs.Inspections.Create(ctx, &models.CraneInspectionForm{
			Inspector:      s.pick(s.data.Names),
			BuddyInspector: s.pick(s.data.Names),
			Bay:            s.pick(s.data.Bays),
			Machine:        fmt.Sprintf("Crane-%03d", i+1),
			Date:           s.date(),
			Q1:             s.yesNo(),
			Q2:             s.yesNo(),
			Q3:             s.yesNo(),
			Status:         s.pick([]string{models.InspectionDraft, models.InspectionCompleted, models.InspectionFailed}),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) calibrations(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		_, err := s.srvs.Calibrations.Create(ctx, &models.DraegerCalibrationForm{
			NC12:            fmt.Sprintf("NC%04d", 1000+i),
			SerialNumber:    fmt.Sprintf("SN%06d", 10000+i),
			CalibrationDate: s.date(),
			CalibratedBy:    s.pick(s.data.Names),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) incidents(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		_, err := s.srvs.Incidents.Create(ctx, &models.IncidentForm{
			Date:     s.date(),
			Type:     s.pick(s.data.IncidentTypes),
			Location: s.pick(s.data.Locations),
			Description: fmt.Sprintf("Incident involving %s during %s operations",
				s.pick(s.data.Machines), strings.ToLower(s.pick(s.data.WorkTypes))),
			Severity:             1 + s.rnd.IntN(models.MaxRating),
			AssignedInvestigator: s.pick(s.data.Names),
			Status:               s.pick([]string{models.IncidentOpen, models.IncidentInvestigating, models.IncidentClosed}),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) documents(ctx context.Context, _ int) error {
	for _, d := range s.data.Documents {
		slug := strings.ToLower(strings.NewReplacer(" ", "-", "/", "-").Replace(d.Title))
		_, err := s.srvs.Documents.Create(ctx, &models.DocumentForm{
			Title:         d.Title,
			Category:      d.Category,
			Description:   d.Description,
			SharepointURL: "https://company.sharepoint.com/sites/ehs/" + slug,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
