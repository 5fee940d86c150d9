package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

var mobileSeq int64

// uniqueMobile hands out distinct ten-digit numbers so signups never
// collide across tests.
func uniqueMobile() string {
	return fmt.Sprintf("9%09d", atomic.AddInt64(&mobileSeq, 1))
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@example.com", prefix, time.Now().UnixNano())
}

// TestResponse wraps the API response envelope for assertions.
type TestResponse struct {
	Code    int
	Status  string
	Message string
	Data    map[string]interface{}
	List    []interface{}
}

func (r TestResponse) IsSuccess() bool {
	return r.Status == "success"
}

func (r TestResponse) GetString(key string) string {
	if v, ok := r.Data[key].(string); ok {
		return v
	}
	return ""
}

func (r TestResponse) GetMap(key string) map[string]interface{} {
	if v, ok := r.Data[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

func (r TestResponse) GetFloat(key string) float64 {
	if v, ok := r.Data[key].(float64); ok {
		return v
	}
	return 0
}

func makeRequest(method, path string, body interface{}, token string) TestResponse {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return TestResponse{Status: "error", Message: err.Error()}
		}
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		return TestResponse{Status: "error", Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return TestResponse{Status: "error", Message: err.Error()}
	}
	defer resp.Body.Close()

	var envelope struct {
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return TestResponse{Code: resp.StatusCode, Status: "error", Message: err.Error()}
	}

	out := TestResponse{Code: resp.StatusCode, Status: envelope.Status, Message: envelope.Message}
	if len(envelope.Data) > 0 {
		var asMap map[string]interface{}
		if err := json.Unmarshal(envelope.Data, &asMap); err == nil {
			out.Data = asMap
		} else {
			var asList []interface{}
			if err := json.Unmarshal(envelope.Data, &asList); err == nil {
				out.List = asList
			}
		}
	}
	return out
}

// registerPatient signs up a fresh patient and returns its login token,
// patient ID and NFC card ID.
func registerPatient(t *testing.T, name string) (token, patientID, cardID string) {
	t.Helper()
	mobile := uniqueMobile()

	resp := makeRequest("POST", "/auth/register", map[string]interface{}{
		"role":        "patient",
		"name":        name,
		"mobile":      mobile,
		"password":    "pw1234",
		"age":         30,
		"gender":      "female",
		"blood_group": "O+",
	}, "")
	if !resp.IsSuccess() {
		t.Fatalf("Failed to register patient: %s", resp.Message)
	}

	patient := resp.GetMap("patient")
	card := resp.GetMap("nfc_card")
	if patient == nil || card == nil {
		t.Fatalf("Registration response missing profile: %+v", resp.Data)
	}
	patientID, _ = patient["id"].(string)
	cardID, _ = card["id"].(string)

	login := makeRequest("POST", "/auth/login", map[string]string{
		"identifier": mobile,
		"password":   "pw1234",
		"role":       "patient",
	}, "")
	if !login.IsSuccess() {
		t.Fatalf("Failed to login patient: %s", login.Message)
	}
	return login.GetString("token"), patientID, cardID
}

// registerApprovedDoctor signs up a doctor, approves it as admin, and
// returns the doctor's login token and profile ID.
func registerApprovedDoctor(t *testing.T, hospitalID string, fee float64) (token, doctorID string) {
	t.Helper()
	email := uniqueEmail("doctor")

	resp := makeRequest("POST", "/auth/register", map[string]interface{}{
		"role":             "doctor",
		"name":             "Dr. Test",
		"email":            email,
		"password":         "pw1234",
		"specialization":   "general medicine",
		"consultation_fee": fee,
		"hospital_id":      hospitalID,
	}, "")
	if !resp.IsSuccess() {
		t.Fatalf("Failed to register doctor: %s", resp.Message)
	}
	user := resp.GetMap("user")
	doctor := resp.GetMap("doctor")
	userID, _ := user["id"].(string)
	doctorID, _ = doctor["id"].(string)

	review := makeRequest("POST", "/admin/review/"+userID, map[string]bool{"approve": true}, adminToken)
	if !review.IsSuccess() {
		t.Fatalf("Failed to approve doctor: %s", review.Message)
	}

	login := makeRequest("POST", "/auth/login", map[string]string{
		"identifier": email,
		"password":   "pw1234",
		"role":       "doctor",
	}, "")
	if !login.IsSuccess() {
		t.Fatalf("Failed to login doctor: %s", login.Message)
	}
	return login.GetString("token"), doctorID
}

// registerApprovedHospital signs up and approves a hospital, returning
// its login token and profile ID.
func registerApprovedHospital(t *testing.T) (token, hospitalID string) {
	t.Helper()
	email := uniqueEmail("hospital")

	resp := makeRequest("POST", "/auth/register", map[string]interface{}{
		"role":     "hospital",
		"name":     "Test Hospital",
		"email":    email,
		"password": "pw1234",
		"city":     "Pune",
	}, "")
	if !resp.IsSuccess() {
		t.Fatalf("Failed to register hospital: %s", resp.Message)
	}
	user := resp.GetMap("user")
	hospital := resp.GetMap("hospital")
	userID, _ := user["id"].(string)
	hospitalID, _ = hospital["id"].(string)

	review := makeRequest("POST", "/admin/review/"+userID, map[string]bool{"approve": true}, adminToken)
	if !review.IsSuccess() {
		t.Fatalf("Failed to approve hospital: %s", review.Message)
	}

	login := makeRequest("POST", "/auth/login", map[string]string{
		"identifier": email,
		"password":   "pw1234",
		"role":       "hospital",
	}, "")
	if !login.IsSuccess() {
		t.Fatalf("Failed to login hospital: %s", login.Message)
	}
	return login.GetString("token"), hospitalID
}
