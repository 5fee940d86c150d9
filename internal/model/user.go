package model

// User roles
const (
	RolePatient  = "patient"
	RoleDoctor   = "doctor"
	RoleHospital = "hospital"
	RoleAdmin    = "admin"
)

// User status constants
const (
	UserStatusActive    = "active"
	UserStatusPending   = "pending"
	UserStatusRejected  = "rejected"
	UserStatusSuspended = "suspended"
)

// User represents a portal login. Patients sign in with their mobile
// number, everyone else with email. The mock store keeps the password in
// the clear; the hashed path lives in cmd/authd.
type User struct {
	Base
	Email      string `json:"email,omitempty"`
	Mobile     string `json:"mobile,omitempty"`
	Password   string `json:"password,omitempty"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	PatientID  string `json:"patient_id,omitempty"`
	DoctorID   string `json:"doctor_id,omitempty"`
	HospitalID string `json:"hospital_id,omitempty"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Role       string `json:"role" binding:"required,oneof=patient doctor hospital admin"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// RegisterRequest carries the union of the role-specific signup forms.
type RegisterRequest struct {
	Role     string `json:"role" binding:"required,oneof=patient doctor hospital"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Mobile   string `json:"mobile" binding:"omitempty,mobile"`
	Password string `json:"password" binding:"required,min=4"`

	// patient fields
	Age        int    `json:"age,omitempty"`
	Gender     string `json:"gender,omitempty"`
	BloodGroup string `json:"blood_group,omitempty" binding:"omitempty,bloodgroup"`
	Address    string `json:"address,omitempty"`

	// doctor fields
	Specialization  string  `json:"specialization,omitempty"`
	ConsultationFee float64 `json:"consultation_fee,omitempty"`
	HospitalID      string  `json:"hospital_id,omitempty"`

	// hospital fields
	City  string `json:"city,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// RegisterResult reports the created login plus whichever profile the
// role called for.
type RegisterResult struct {
	User     *User     `json:"user"`
	Patient  *Patient  `json:"patient,omitempty"`
	Doctor   *Doctor   `json:"doctor,omitempty"`
	Hospital *Hospital `json:"hospital,omitempty"`
	NfcCard  *NfcCard  `json:"nfc_card,omitempty"`
}
