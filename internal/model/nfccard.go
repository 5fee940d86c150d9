package model

// NFC card status constants
const (
	NfcCardActive   = "active"
	NfcCardInactive = "inactive"
	NfcCardLost     = "lost"
)

// NfcCard is 1:1 with a patient and is the lookup key for tap-to-identify
// and emergency access flows.
type NfcCard struct {
	Base
	PatientID string `json:"patient_id"`
	Status    string `json:"status"`
}
