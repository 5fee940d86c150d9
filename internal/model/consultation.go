package model

import "time"

// Consultation status constants. Waiting is initial, completed is
// terminal; there is no cancellation path.
const (
	ConsultationWaiting   = "waiting"
	ConsultationCompleted = "completed"
)

// Queue priorities
const (
	PriorityNormal    = "normal"
	PriorityEmergency = "emergency"
)

// Consultation is one doctor-patient encounter. TokenNumber is the queue
// length at assignment time and is never renumbered.
type Consultation struct {
	Base
	PatientID         string     `json:"patient_id"`
	DoctorID          string     `json:"doctor_id"`
	HospitalID        string     `json:"hospital_id"`
	Status            string     `json:"status"`
	Priority          string     `json:"priority"`
	TokenNumber       int        `json:"token_number"`
	EstimatedWaitMins int        `json:"estimated_wait_mins"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	Diagnosis         string     `json:"diagnosis,omitempty"`
	Prescription      string     `json:"prescription,omitempty"`
	Notes             string     `json:"notes,omitempty"`
}

type AssignPatientRequest struct {
	PatientID  string `json:"patient_id" binding:"required"`
	DoctorID   string `json:"doctor_id" binding:"required"`
	HospitalID string `json:"hospital_id" binding:"required"`
	Priority   string `json:"priority" binding:"omitempty,oneof=normal emergency"`
}

// Assignment is what the queue service hands back to the booking UI.
type Assignment struct {
	Consultation      *Consultation `json:"consultation"`
	QueuePosition     int           `json:"queue_position"`
	EstimatedWaitMins int           `json:"estimated_wait_mins"`
}

type CompleteConsultationRequest struct {
	Diagnosis    string `json:"diagnosis" binding:"required"`
	Prescription string `json:"prescription" binding:"required"`
	Notes        string `json:"notes"`
}
