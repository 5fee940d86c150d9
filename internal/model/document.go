package model

// Document is the whole record-store payload, persisted wholesale under a
// single storage key. Version is bumped on every save and checked by the
// store drivers (optimistic concurrency).
type Document struct {
	Version         int64                            `json:"version"`
	Users           map[string]*User                 `json:"users"`
	Patients        map[string]*Patient              `json:"patients"`
	Doctors         map[string]*Doctor               `json:"doctors"`
	Hospitals       map[string]*Hospital             `json:"hospitals"`
	NfcCards        map[string]*NfcCard              `json:"nfc_cards"`
	Consultations   map[string]*Consultation         `json:"consultations"`
	AccessLogs      []AccessLogEntry                 `json:"access_logs"`
	EmergencyAccess map[string]*EmergencyAccessGrant `json:"emergency_access"`
	Analytics       *AnalyticsSnapshot               `json:"analytics,omitempty"`
}

// NewDocument returns the default empty document a fresh store starts
// from.
func NewDocument() *Document {
	return &Document{
		Users:           make(map[string]*User),
		Patients:        make(map[string]*Patient),
		Doctors:         make(map[string]*Doctor),
		Hospitals:       make(map[string]*Hospital),
		NfcCards:        make(map[string]*NfcCard),
		Consultations:   make(map[string]*Consultation),
		AccessLogs:      []AccessLogEntry{},
		EmergencyAccess: make(map[string]*EmergencyAccessGrant),
	}
}

// Normalize backfills nil maps after JSON decoding so callers never nil
// check container fields.
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = make(map[string]*User)
	}
	if d.Patients == nil {
		d.Patients = make(map[string]*Patient)
	}
	if d.Doctors == nil {
		d.Doctors = make(map[string]*Doctor)
	}
	if d.Hospitals == nil {
		d.Hospitals = make(map[string]*Hospital)
	}
	if d.NfcCards == nil {
		d.NfcCards = make(map[string]*NfcCard)
	}
	if d.Consultations == nil {
		d.Consultations = make(map[string]*Consultation)
	}
	if d.AccessLogs == nil {
		d.AccessLogs = []AccessLogEntry{}
	}
	if d.EmergencyAccess == nil {
		d.EmergencyAccess = make(map[string]*EmergencyAccessGrant)
	}
}
