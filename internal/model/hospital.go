package model

type Hospital struct {
	Base
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Address         string   `json:"address,omitempty"`
	City            string   `json:"city,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Doctors         []string `json:"doctors"`
	CurrentPatients []string `json:"current_patients"`
	ApprovalStatus  string   `json:"approval_status"`
}
