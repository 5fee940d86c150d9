package model

// Approval status for doctor and hospital profiles
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Doctor holds the clinical profile plus the live waiting queue.
// PatientQueue is ordered (FIFO with a single emergency override) and
// holds each patient at most once; AssignedPatients is the doctor's
// panel and survives queue removal.
type Doctor struct {
	Base
	Name             string              `json:"name"`
	Email            string              `json:"email"`
	Specialization   string              `json:"specialization"`
	ConsultationFee  float64             `json:"consultation_fee"`
	HospitalID       string              `json:"hospital_id,omitempty"`
	Availability     map[string][]string `json:"availability,omitempty"`
	PatientQueue     []string            `json:"patient_queue"`
	AssignedPatients []string            `json:"assigned_patients"`
	ApprovalStatus   string              `json:"approval_status"`
}

// InQueue reports whether the patient is already waiting.
func (d *Doctor) InQueue(patientID string) bool {
	for _, id := range d.PatientQueue {
		if id == patientID {
			return true
		}
	}
	return false
}

// QueuePosition returns the 1-based rank of the patient, or 0 if absent.
func (d *Doctor) QueuePosition(patientID string) int {
	for i, id := range d.PatientQueue {
		if id == patientID {
			return i + 1
		}
	}
	return 0
}
