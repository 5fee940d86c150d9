package model

import "time"

// AnalyticsSnapshot is the daily roll-up written by Refresh and kept in
// the document for the dashboard landing page.
type AnalyticsSnapshot struct {
	Date                 string    `json:"date"`
	TotalConsultations   int       `json:"total_consultations"`
	CompletedToday       int       `json:"completed_today"`
	WaitingNow           int       `json:"waiting_now"`
	EmergencyGrantsToday int       `json:"emergency_grants_today"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// HospitalStats is the per-hospital read-time aggregation. Revenue is
// completed-today count times the mean consultation fee across the
// hospital's doctors.
type HospitalStats struct {
	HospitalID         string  `json:"hospital_id"`
	Date               string  `json:"date"`
	DoctorCount        int     `json:"doctor_count"`
	TotalConsultations int     `json:"total_consultations"`
	CompletedToday     int     `json:"completed_today"`
	WaitingNow         int     `json:"waiting_now"`
	AverageFee         float64 `json:"average_fee"`
	ProjectedRevenue   float64 `json:"projected_revenue"`
}
