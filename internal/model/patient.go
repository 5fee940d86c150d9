package model

import "time"

// Patient is the full demographic and clinical profile behind an NFC card.
// MedicalHistory is kept most-recent-first; completion of a consultation
// prepends an entry.
type Patient struct {
	Base
	Name            string                `json:"name"`
	Age             int                   `json:"age"`
	Gender          string                `json:"gender"`
	BloodGroup      string                `json:"blood_group"`
	Mobile          string                `json:"mobile"`
	Email           string                `json:"email,omitempty"`
	Address         string                `json:"address,omitempty"`
	NfcCardID       string                `json:"nfc_card_id"`
	AssignedDoctor  string                `json:"assigned_doctor,omitempty"`
	CurrentHospital string                `json:"current_hospital,omitempty"`
	MedicalHistory  []MedicalHistoryEntry `json:"medical_history"`
	Prescriptions   []Prescription        `json:"prescriptions,omitempty"`
	Insurance       *InsuranceInfo        `json:"insurance,omitempty"`
}

type MedicalHistoryEntry struct {
	Date         time.Time `json:"date"`
	DoctorID     string    `json:"doctor_id"`
	HospitalID   string    `json:"hospital_id"`
	Diagnosis    string    `json:"diagnosis"`
	Prescription string    `json:"prescription"`
	Notes        string    `json:"notes,omitempty"`
}

type Prescription struct {
	Date       time.Time `json:"date"`
	DoctorID   string    `json:"doctor_id"`
	Medication string    `json:"medication"`
	Dosage     string    `json:"dosage,omitempty"`
	Duration   string    `json:"duration,omitempty"`
}

type InsuranceInfo struct {
	Provider     string    `json:"provider"`
	PolicyNumber string    `json:"policy_number"`
	ValidUntil   time.Time `json:"valid_until"`
}
