package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueAndConsultationFlow(t *testing.T) {
	_, hospitalID := registerApprovedHospital(t)
	doctorToken, doctorID := registerApprovedDoctor(t, hospitalID, 500)
	_, patientID, _ := registerPatient(t, "Queue Patient One")
	_, patientID2, _ := registerPatient(t, "Queue Patient Two")

	// First assignment: head of the queue, one slot of wait.
	assign1 := makeRequest("POST", "/queue/assign", map[string]string{
		"patient_id":  patientID,
		"doctor_id":   doctorID,
		"hospital_id": hospitalID,
	}, doctorToken)
	require.True(t, assign1.IsSuccess(), assign1.Message)
	assert.Equal(t, float64(1), assign1.GetFloat("queue_position"))
	assert.Equal(t, float64(15), assign1.GetFloat("estimated_wait_mins"))

	consultation1 := assign1.GetMap("consultation")
	require.NotNil(t, consultation1)
	assert.Equal(t, "waiting", consultation1["status"])
	assert.Equal(t, float64(1), consultation1["token_number"])
	consultationID, _ := consultation1["id"].(string)
	require.NotEmpty(t, consultationID)

	// Emergency assignment jumps to the head.
	assign2 := makeRequest("POST", "/queue/assign", map[string]string{
		"patient_id":  patientID2,
		"doctor_id":   doctorID,
		"hospital_id": hospitalID,
		"priority":    "emergency",
	}, doctorToken)
	require.True(t, assign2.IsSuccess(), assign2.Message)
	assert.Equal(t, float64(1), assign2.GetFloat("queue_position"))
	assert.Equal(t, float64(2), assign2.GetMap("consultation")["token_number"])

	queue := makeRequest("GET", "/doctors/"+doctorID+"/queue", nil, doctorToken)
	require.True(t, queue.IsSuccess())
	require.Len(t, queue.List, 2)
	first, _ := queue.List[0].(map[string]interface{})
	assert.Equal(t, patientID2, first["id"])

	// Complete the first consultation.
	complete := makeRequest("POST", "/consultations/"+consultationID+"/complete", map[string]string{
		"diagnosis":    "viral fever",
		"prescription": "paracetamol 500mg",
		"notes":        "review in 3 days",
	}, doctorToken)
	require.True(t, complete.IsSuccess(), complete.Message)
	assert.Equal(t, "completed", complete.Data["status"])

	// The history entry shows up at the head of the patient record.
	history := makeRequest("GET", "/patients/"+patientID+"/history", nil, doctorToken)
	require.True(t, history.IsSuccess())
	require.Len(t, history.List, 1)
	entry, _ := history.List[0].(map[string]interface{})
	assert.Equal(t, "viral fever", entry["diagnosis"])

	// Completed patient is off the queue; the emergency one remains.
	queue = makeRequest("GET", "/doctors/"+doctorID+"/queue", nil, doctorToken)
	require.True(t, queue.IsSuccess())
	require.Len(t, queue.List, 1)
	remaining, _ := queue.List[0].(map[string]interface{})
	assert.Equal(t, patientID2, remaining["id"])

	// Completed is terminal.
	again := makeRequest("POST", "/consultations/"+consultationID+"/complete", map[string]string{
		"diagnosis":    "viral fever",
		"prescription": "paracetamol 500mg",
	}, doctorToken)
	assert.Equal(t, http.StatusConflict, again.Code)
}

func TestQueueAssignUnknownDoctor(t *testing.T) {
	_, hospitalID := registerApprovedHospital(t)
	doctorToken, _ := registerApprovedDoctor(t, hospitalID, 300)
	_, patientID, _ := registerPatient(t, "Orphan Patient")

	resp := makeRequest("POST", "/queue/assign", map[string]string{
		"patient_id":  patientID,
		"doctor_id":   "DOC404",
		"hospital_id": hospitalID,
	}, doctorToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestQueueAssignForbiddenForPatients(t *testing.T) {
	patientToken, patientID, _ := registerPatient(t, "Pushy Patient")

	resp := makeRequest("POST", "/queue/assign", map[string]string{
		"patient_id":  patientID,
		"doctor_id":   "DOC1",
		"hospital_id": "HSP1",
	}, patientToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestHospitalStats(t *testing.T) {
	hospitalToken, hospitalID := registerApprovedHospital(t)
	doctorToken, doctorID := registerApprovedDoctor(t, hospitalID, 500)
	_, patientID, _ := registerPatient(t, "Stats Patient")

	assign := makeRequest("POST", "/queue/assign", map[string]string{
		"patient_id":  patientID,
		"doctor_id":   doctorID,
		"hospital_id": hospitalID,
	}, doctorToken)
	require.True(t, assign.IsSuccess())
	consultationID, _ := assign.GetMap("consultation")["id"].(string)

	complete := makeRequest("POST", "/consultations/"+consultationID+"/complete", map[string]string{
		"diagnosis":    "sprain",
		"prescription": "rest",
	}, doctorToken)
	require.True(t, complete.IsSuccess())

	stats := makeRequest("GET", "/hospitals/"+hospitalID+"/stats", nil, hospitalToken)
	require.True(t, stats.IsSuccess(), stats.Message)
	assert.Equal(t, float64(1), stats.GetFloat("doctor_count"))
	assert.Equal(t, float64(1), stats.GetFloat("completed_today"))
	assert.Equal(t, float64(500), stats.GetFloat("average_fee"))
	assert.Equal(t, float64(500), stats.GetFloat("projected_revenue"))
}
