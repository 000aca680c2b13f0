package models

import (
	"strings"
	"time"
)

// DraegerCalibration records a gas-detector calibration
type DraegerCalibration struct {
	ID              int64     `json:"id"`
	NC12            string    `json:"nc12"`
	SerialNumber    string    `json:"serialNumber"`
	CalibrationDate string    `json:"calibrationDate"`
	CalibratedBy    string    `json:"calibratedBy"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DraegerCalibrationForm is the submitted body for a calibration
type DraegerCalibrationForm struct {
	NC12            string `json:"nc12"`
	SerialNumber    string `json:"serialNumber"`
	CalibrationDate string `json:"calibrationDate"`
	CalibratedBy    string `json:"calibratedBy"`
}

// Validate validates the calibration form data
func (f *DraegerCalibrationForm) Validate() ValidationErrors {
	var errs ValidationErrors
	requireText(&errs, "nc12", "12NC", f.NC12)
	requireText(&errs, "serialNumber", "Serial number", f.SerialNumber)
	requireDate(&errs, "calibrationDate", "Calibration date", f.CalibrationDate)
	requireText(&errs, "calibratedBy", "Calibrated by", f.CalibratedBy)
	return errs
}

// ToCalibration validates the form and builds a calibration
func (f *DraegerCalibrationForm) ToCalibration() (*DraegerCalibration, error) {
	if errs := f.Validate(); errs.HasErrors() {
		return nil, errs
	}
	return &DraegerCalibration{
		NC12:            strings.TrimSpace(f.NC12),
		SerialNumber:    strings.TrimSpace(f.SerialNumber),
		CalibrationDate: f.CalibrationDate,
		CalibratedBy:    strings.TrimSpace(f.CalibratedBy),
	}, nil
}
