package appointment

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carebook/booking-api/internal/model"
	"github.com/carebook/booking-api/internal/repository/repositorytest"
	"github.com/carebook/booking-api/internal/service/appointment"
)

func setupRouter(users ...*model.User) (*gin.Engine, *repositorytest.FakeUserRepository) {
	gin.SetMode(gin.TestMode)
	repo := repositorytest.New(users...)
	svc := appointment.NewService(repo, time.Second)

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group("/api"))
	return engine, repo
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestCreateAppointmentUnknownEmail(t *testing.T) {
	engine, _ := setupRouter()

	w, resp := doJSON(t, engine, http.MethodPost, "/api/appointments", gin.H{
		"fullname": "Ghost",
		"email":    "ghost@example.com",
		"phone":    "+1234567890",
		"date":     "2024-07-01",
		"time":     "14:30",
		"hospital": "General Hospital",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "User not found with this email", resp["message"])
}

func TestCreateAppointment(t *testing.T) {
	engine, repo := setupRouter(&model.User{
		ID:    primitive.NewObjectID(),
		Name:  "Alice",
		Email: "alice@example.com",
		Type:  model.UserTypePatient,
	})

	w, resp := doJSON(t, engine, http.MethodPost, "/api/appointments", gin.H{
		"fullname": "Alice A",
		"email":    "alice@example.com",
		"phone":    "+1234567890",
		"date":     "2024-07-01",
		"time":     "14:30",
		"symptoms": "cough",
		"hospital": "General Hospital",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, resp["success"])

	appt, ok := resp["appointment"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "scheduled", appt["status"])
	assert.Equal(t, "routine", appt["urgencyLevel"])
	assert.NotEmpty(t, appt["id"])
	require.Len(t, repo.Users[0].Appointments, 1)
}

func TestByDateMissingParams(t *testing.T) {
	engine, _ := setupRouter()

	w, resp := doJSON(t, engine, http.MethodPost, "/api/appointments/by-date", gin.H{
		"clinicianId": "",
		"date":        "",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestByDate(t *testing.T) {
	clinician := primitive.NewObjectID()
	engine, _ := setupRouter(&model.User{
		ID:    primitive.NewObjectID(),
		Name:  "Alice",
		Email: "alice@example.com",
		Type:  model.UserTypePatient,
		Appointments: []model.Appointment{
			{
				ID:          primitive.NewObjectID(),
				FullName:    "Alice A",
				Email:       "alice@example.com",
				Date:        time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
				Time:        "10:00",
				Status:      model.AppointmentStatusScheduled,
				Hospital:    "General Hospital",
				ClinicianID: &clinician,
			},
			{
				ID:          primitive.NewObjectID(),
				FullName:    "Alice A",
				Email:       "alice@example.com",
				Date:        time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
				Time:        "10:00",
				Status:      model.AppointmentStatusScheduled,
				Hospital:    "General Hospital",
				ClinicianID: &clinician,
			},
		},
	})

	w, resp := doJSON(t, engine, http.MethodPost, "/api/appointments/by-date", gin.H{
		"clinicianId": clinician.Hex(),
		"date":        "2024-01-01",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	appointments, ok := resp["appointments"].([]interface{})
	require.True(t, ok)
	require.Len(t, appointments, 1)

	first := appointments[0].(map[string]interface{})
	assert.Equal(t, "Alice", first["patientName"])
	assert.Equal(t, "alice@example.com", first["patientEmail"])
}

func TestAssignClinicianEndpoint(t *testing.T) {
	apptID := primitive.NewObjectID()
	engine, repo := setupRouter(&model.User{
		ID:    primitive.NewObjectID(),
		Email: "alice@example.com",
		Type:  model.UserTypePatient,
		Appointments: []model.Appointment{
			{
				ID:       apptID,
				FullName: "Alice A",
				Email:    "alice@example.com",
				Date:     time.Now(),
				Time:     "10:00",
				Hospital: "General Hospital",
			},
		},
	})

	clinician := primitive.NewObjectID()
	w, resp := doJSON(t, engine, http.MethodPut, "/api/appointments/"+apptID.Hex()+"/clinician", gin.H{
		"clinicianId": clinician.Hex(),
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	require.NotNil(t, repo.Users[0].Appointments[0].ClinicianID)
	assert.Equal(t, clinician, *repo.Users[0].Appointments[0].ClinicianID)
}

func TestAssignClinicianMissingBodyField(t *testing.T) {
	engine, _ := setupRouter()

	w, resp := doJSON(t, engine, http.MethodPut, "/api/appointments/"+primitive.NewObjectID().Hex()+"/clinician", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestListForPatientEndpoint(t *testing.T) {
	engine, _ := setupRouter(&model.User{
		ID:    primitive.NewObjectID(),
		Email: "alice@example.com",
		Type:  model.UserTypePatient,
		Appointments: []model.Appointment{
			{
				ID:       primitive.NewObjectID(),
				FullName: "Alice A",
				Email:    "alice@example.com",
				Date:     time.Now(),
				Time:     "10:00",
				Hospital: "General Hospital",
			},
		},
	})

	w, resp := doJSON(t, engine, http.MethodGet, "/api/appointments/patient/alice@example.com", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	appointments, ok := resp["appointments"].([]interface{})
	require.True(t, ok)
	assert.Len(t, appointments, 1)
}
