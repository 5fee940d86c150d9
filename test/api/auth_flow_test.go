package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatientRegisterAndLogin(t *testing.T) {
	token, patientID, cardID := registerPatient(t, "Asha Patel")
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, patientID)
	assert.NotEmpty(t, cardID)

	resp := makeRequest("GET", "/patients/"+patientID, nil, token)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, "Asha Patel", resp.Data["name"])
	assert.Equal(t, "O+", resp.Data["blood_group"])
	assert.Equal(t, cardID, resp.Data["nfc_card_id"])
}

func TestLoginWrongPassword(t *testing.T) {
	mobile := uniqueMobile()
	resp := makeRequest("POST", "/auth/register", map[string]interface{}{
		"role":     "patient",
		"name":     "Ravi Kumar",
		"mobile":   mobile,
		"password": "pw1234",
	}, "")
	assert.True(t, resp.IsSuccess())

	login := makeRequest("POST", "/auth/login", map[string]string{
		"identifier": mobile,
		"password":   "wrong",
		"role":       "patient",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, login.Code)
}

func TestPendingDoctorCannotLogin(t *testing.T) {
	email := uniqueEmail("pending_doctor")
	resp := makeRequest("POST", "/auth/register", map[string]interface{}{
		"role":           "doctor",
		"name":           "Dr. Pending",
		"email":          email,
		"password":       "pw1234",
		"specialization": "dermatology",
	}, "")
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, "pending", resp.GetMap("user")["status"])

	login := makeRequest("POST", "/auth/login", map[string]string{
		"identifier": email,
		"password":   "pw1234",
		"role":       "doctor",
	}, "")
	assert.Equal(t, http.StatusForbidden, login.Code)
}

func TestRegisterValidation(t *testing.T) {
	bad := makeRequest("POST", "/auth/register", map[string]interface{}{
		"role":        "patient",
		"name":        "Bad Blood",
		"mobile":      uniqueMobile(),
		"password":    "pw1234",
		"blood_group": "Z+",
	}, "")
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	badMobile := makeRequest("POST", "/auth/register", map[string]interface{}{
		"role":     "patient",
		"name":     "Bad Mobile",
		"mobile":   "12345",
		"password": "pw1234",
	}, "")
	assert.Equal(t, http.StatusBadRequest, badMobile.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	resp := makeRequest("GET", "/patients/PAT1", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = makeRequest("GET", "/hospitals", nil, "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
