package model

import "time"

// GrantValidity is how long an emergency access grant stays usable.
const GrantValidity = 2 * time.Hour

// EmergencyAccessGrant is a time-boxed permission for non-owning staff to
// read a patient record. Status stays "active" in storage; expiry is a
// read-time comparison against ExpiresAt, never a stored transition.
type EmergencyAccessGrant struct {
	Base
	PatientID    string    `json:"patient_id"`
	NfcCardID    string    `json:"nfc_card_id"`
	AccessorID   string    `json:"accessor_id"`
	AccessorName string    `json:"accessor_name"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the grant is past its window at the given time.
func (g *EmergencyAccessGrant) Expired(now time.Time) bool {
	return !now.Before(g.ExpiresAt)
}

type GrantEmergencyAccessRequest struct {
	NfcCardID    string `json:"nfc_card_id" binding:"required"`
	AccessorID   string `json:"accessor_id" binding:"required"`
	AccessorName string `json:"accessor_name" binding:"required"`
	Reason       string `json:"reason" binding:"required"`
}
