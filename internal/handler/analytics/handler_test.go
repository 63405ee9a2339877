package analytics

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

func setupRouter(users ...*model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := repositorytest.New(users...)
	svc := appointment.NewService(repo, time.Second)

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group("/api"))
	return engine
}

func postAnalytics(t *testing.T, engine *gin.Engine, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/analytics", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestAnalyticsMissingClinicianID(t *testing.T) {
	engine := setupRouter()

	w, resp := postAnalytics(t, engine, gin.H{"timeframe": "week"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "clinicianId is required", resp["message"])
}

func TestAnalyticsEndpoint(t *testing.T) {
	clinician := primitive.NewObjectID()
	duration := 30
	engine := setupRouter(&model.User{
		ID:    primitive.NewObjectID(),
		Email: "alice@example.com",
		Type:  model.UserTypePatient,
		Appointments: []model.Appointment{
			{
				ID:          primitive.NewObjectID(),
				FullName:    "Alice A",
				Email:       "alice@example.com",
				Date:        time.Now().UTC(),
				Time:        "10:00",
				Status:      model.AppointmentStatusCompleted,
				Hospital:    "General Hospital",
				Duration:    &duration,
				ClinicianID: &clinician,
			},
		},
	})

	w, resp := postAnalytics(t, engine, gin.H{"clinicianId": clinician.Hex(), "timeframe": "week"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	analytics, ok := resp["analytics"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), analytics["patients"])
	assert.Equal(t, "30 mins", analytics["avgConsultation"])
	assert.Equal(t, "This Week", analytics["period"])
}

func TestAnalyticsUnknownTimeframeIsAllTime(t *testing.T) {
	clinician := primitive.NewObjectID()
	engine := setupRouter()

	w, resp := postAnalytics(t, engine, gin.H{"clinicianId": clinician.Hex(), "timeframe": "fortnight"})

	assert.Equal(t, http.StatusOK, w.Code)

	analytics, ok := resp["analytics"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(0), analytics["patients"])
	assert.Equal(t, "N/A", analytics["avgConsultation"])
	assert.Equal(t, "All Time", analytics["period"])
}
