package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carebook/booking-api/internal/model"
	"github.com/carebook/booking-api/internal/repository/repositorytest"
	"github.com/carebook/booking-api/internal/service/user"
)

func setupRouter(users ...*model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := user.NewService(repositorytest.New(users...))

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group("/api"))
	return engine
}

func doGet(t *testing.T, engine *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestGetUser(t *testing.T) {
	id := primitive.NewObjectID()
	engine := setupRouter(&model.User{
		ID:    id,
		Name:  "Alice",
		Email: "alice@example.com",
		Type:  model.UserTypePatient,
	})

	w, resp := doGet(t, engine, "/api/users/"+id.Hex())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	u, ok := resp["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", u["email"])
	assert.NotContains(t, u, "password")
}

func TestGetUserNotFound(t *testing.T) {
	engine := setupRouter()

	w, resp := doGet(t, engine, "/api/users/"+primitive.NewObjectID().Hex())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "User not found", resp["message"])
}

func TestGetUserMalformedID(t *testing.T) {
	engine := setupRouter()

	w, _ := doGet(t, engine, "/api/users/not-a-hex-id")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListClinicians(t *testing.T) {
	engine := setupRouter(
		&model.User{ID: primitive.NewObjectID(), Name: "Dr. Smith", Email: "smith@example.com", Type: model.UserTypeClinician},
		&model.User{ID: primitive.NewObjectID(), Name: "Alice", Email: "alice@example.com", Type: model.UserTypePatient},
	)

	w, resp := doGet(t, engine, "/api/clinicians")

	assert.Equal(t, http.StatusOK, w.Code)
	clinicians, ok := resp["clinicians"].([]interface{})
	require.True(t, ok)
	require.Len(t, clinicians, 1)
	assert.Equal(t, "smith@example.com", clinicians[0].(map[string]interface{})["email"])
}

func TestListCliniciansEmpty(t *testing.T) {
	engine := setupRouter()

	w, resp := doGet(t, engine, "/api/clinicians")

	assert.Equal(t, http.StatusOK, w.Code)
	clinicians, ok := resp["clinicians"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, clinicians)
}
