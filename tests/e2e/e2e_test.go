package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipreserve/internal/database"
	"equipreserve/internal/middleware"
	"equipreserve/internal/modules/auth"
	"equipreserve/internal/modules/catalog"
	"equipreserve/internal/modules/directory"
	"equipreserve/internal/modules/ledger"
	jwtsvc "equipreserve/internal/pkg/jwt"
	"equipreserve/internal/repository"
	"equipreserve/internal/store"
)

type E2ETestSuite struct {
	router *gin.Engine
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	t.Helper()

	// a file-backed database so every pooled connection sees the same data
	db, err := database.Connect(filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err, "Failed to connect to test database")

	st := store.New(db)
	require.NoError(t, st.Migrate())

	userRepo := repository.NewUserRepository(st)
	equipmentRepo := repository.NewEquipmentRepository(st)
	reservationRepo := repository.NewReservationRepository(st)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	directoryService := directory.NewService(userRepo)
	directoryHandler := directory.NewHandler(directoryService)

	authService := auth.NewService(directoryService, jwtService)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(equipmentRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	ledgerService := ledger.NewService(reservationRepo, equipmentRepo, userRepo, st)
	ledgerHandler := ledger.NewHandler(ledgerService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.Auth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		catalogHandler.RegisterRoutes(protected)
		ledgerHandler.RegisterRoutes(protected)
	}

	admin := protected.Group("")
	admin.Use(middleware.AdminOnly())
	{
		catalogHandler.RegisterAdminRoutes(admin)
		directoryHandler.RegisterAdminRoutes(admin)
		ledgerHandler.RegisterAdminRoutes(admin)
	}

	return &E2ETestSuite{router: r}
}

func (s *E2ETestSuite) request(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, TestResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "response body: %s", w.Body.String())
	return w, resp
}

// login returns the token and user id of the given seeded account.
func (s *E2ETestSuite) login(t *testing.T, email, password string) (string, string) {
	t.Helper()

	w, resp := s.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	token := resp.Data["token"].(string)
	user := resp.Data["user"].(map[string]interface{})
	return token, user["id"].(string)
}

func TestLogin(t *testing.T) {
	s := setupTestSuite(t)

	token, userID := s.login(t, "admin@school.edu", "admin123")
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, userID)

	w, resp := s.request(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	user := resp.Data["user"].(map[string]interface{})
	assert.Equal(t, "admin@school.edu", user["email"])
	assert.Equal(t, "admin", user["role"])
	_, hasHash := user["passwordHash"]
	assert.False(t, hasHash, "login response must not carry the password hash")
}

func TestLogin_WrongPassword(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "admin@school.edu",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
}

func TestRequests_RequireToken(t *testing.T) {
	s := setupTestSuite(t)

	w, _ := s.request(t, http.MethodGet, "/api/v1/equipment", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReservationLifecycle(t *testing.T) {
	s := setupTestSuite(t)
	token, adminID := s.login(t, "admin@school.edu", "admin123")

	// a fresh projector to reserve
	w, resp := s.request(t, http.MethodPost, "/api/v1/equipment", token, gin.H{
		"name": "Test Projector",
		"type": "Projector",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	equipmentID := resp.Data["equipment"].(map[string]interface{})["id"].(string)

	// reserve it
	w, resp = s.request(t, http.MethodPost, "/api/v1/reservations", token, gin.H{
		"userId":      adminID,
		"equipmentId": equipmentID,
		"startDate":   "2025-03-10",
		"endDate":     "2025-03-12",
		"purpose":     "physics class",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reservation := resp.Data["reservation"].(map[string]interface{})
	reservationID := reservation["id"].(string)
	assert.Equal(t, "active", reservation["status"])

	// the reservation took the equipment
	w, resp = s.request(t, http.MethodGet, "/api/v1/equipment/"+equipmentID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp.Data["equipment"].(map[string]interface{})["available"])

	// a second reservation for the same equipment is refused
	w, resp = s.request(t, http.MethodPost, "/api/v1/reservations", token, gin.H{
		"userId":      adminID,
		"equipmentId": equipmentID,
		"startDate":   "2025-03-13",
		"endDate":     "2025-03-14",
		"purpose":     "chemistry class",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EQUIPMENT_UNAVAILABLE", resp.Error.Code)

	// returning frees the equipment
	w, resp = s.request(t, http.MethodPatch, "/api/v1/reservations/"+reservationID+"/status", token, gin.H{
		"status": "returned",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "returned", resp.Data["reservation"].(map[string]interface{})["status"])

	w, resp = s.request(t, http.MethodGet, "/api/v1/equipment/"+equipmentID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp.Data["equipment"].(map[string]interface{})["available"])

	// reactivation takes it again
	w, resp = s.request(t, http.MethodPatch, "/api/v1/reservations/"+reservationID+"/status", token, gin.H{
		"status": "active",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, resp = s.request(t, http.MethodGet, "/api/v1/equipment/"+equipmentID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp.Data["equipment"].(map[string]interface{})["available"])

	// deleting the active reservation frees the equipment
	w, _ = s.request(t, http.MethodDelete, "/api/v1/reservations/"+reservationID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = s.request(t, http.MethodGet, "/api/v1/equipment/"+equipmentID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp.Data["equipment"].(map[string]interface{})["available"])
}

func TestReservation_InvalidDates(t *testing.T) {
	s := setupTestSuite(t)
	token, adminID := s.login(t, "admin@school.edu", "admin123")

	w, resp := s.request(t, http.MethodPost, "/api/v1/reservations", token, gin.H{
		"userId":      adminID,
		"equipmentId": "anything",
		"startDate":   "2025-03-12",
		"endDate":     "2025-03-10",
		"purpose":     "backwards",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestReservation_InvalidTransition(t *testing.T) {
	s := setupTestSuite(t)
	token, adminID := s.login(t, "admin@school.edu", "admin123")

	w, resp := s.request(t, http.MethodPost, "/api/v1/equipment", token, gin.H{
		"name": "Spare TV",
		"type": "TV",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	equipmentID := resp.Data["equipment"].(map[string]interface{})["id"].(string)

	w, resp = s.request(t, http.MethodPost, "/api/v1/reservations", token, gin.H{
		"userId":      adminID,
		"equipmentId": equipmentID,
		"startDate":   "2025-03-10",
		"endDate":     "2025-03-11",
		"purpose":     "assembly",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	reservationID := resp.Data["reservation"].(map[string]interface{})["id"].(string)

	w, resp = s.request(t, http.MethodPatch, "/api/v1/reservations/"+reservationID+"/status", token, gin.H{
		"status": "returned",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// returned can only reactivate, not cancel
	w, resp = s.request(t, http.MethodPatch, "/api/v1/reservations/"+reservationID+"/status", token, gin.H{
		"status": "canceled",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_STATUS_TRANSITION", resp.Error.Code)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	s := setupTestSuite(t)
	token, _ := s.login(t, "admin@school.edu", "admin123")

	body := gin.H{
		"name":     "New Teacher",
		"email":    "newteacher@school.edu",
		"password": "secret1",
		"role":     "teacher",
	}

	w, _ := s.request(t, http.MethodPost, "/api/v1/users", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, resp := s.request(t, http.MethodPost, "/api/v1/users", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMAIL_EXISTS", resp.Error.Code)
}

func TestTeacher_AccessBoundaries(t *testing.T) {
	s := setupTestSuite(t)
	adminToken, adminID := s.login(t, "admin@school.edu", "admin123")
	teacherToken, teacherID := s.login(t, "teacher@school.edu", "teacher123")

	// user management is admin-only
	w, _ := s.request(t, http.MethodGet, "/api/v1/users", teacherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// an admin reservation the teacher must not see
	w, resp := s.request(t, http.MethodGet, "/api/v1/equipment", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	equipmentList := resp.Data["equipment"].([]interface{})
	require.NotEmpty(t, equipmentList)
	adminEquipmentID := equipmentList[0].(map[string]interface{})["id"].(string)
	teacherEquipmentID := equipmentList[1].(map[string]interface{})["id"].(string)

	w, resp = s.request(t, http.MethodPost, "/api/v1/reservations", adminToken, gin.H{
		"userId":      adminID,
		"equipmentId": adminEquipmentID,
		"startDate":   "2025-03-10",
		"endDate":     "2025-03-11",
		"purpose":     "admin meeting",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	adminReservationID := resp.Data["reservation"].(map[string]interface{})["id"].(string)

	// a teacher reserving "for the admin" still reserves for themselves
	w, resp = s.request(t, http.MethodPost, "/api/v1/reservations", teacherToken, gin.H{
		"userId":      adminID,
		"equipmentId": teacherEquipmentID,
		"startDate":   "2025-03-10",
		"endDate":     "2025-03-11",
		"purpose":     "english class",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := resp.Data["reservation"].(map[string]interface{})
	assert.Equal(t, teacherID, created["userId"])

	// the teacher's list only carries their own reservation
	w, resp = s.request(t, http.MethodGet, "/api/v1/reservations", teacherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	reservations := resp.Data["reservations"].([]interface{})
	require.Len(t, reservations, 1)
	assert.Equal(t, teacherID, reservations[0].(map[string]interface{})["userId"])

	// and the admin's reservation is off limits directly too
	w, _ = s.request(t, http.MethodGet, "/api/v1/reservations/"+adminReservationID, teacherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAvailabilityRebuild(t *testing.T) {
	s := setupTestSuite(t)
	token, adminID := s.login(t, "admin@school.edu", "admin123")

	w, resp := s.request(t, http.MethodGet, "/api/v1/equipment", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	equipmentList := resp.Data["equipment"].([]interface{})
	require.NotEmpty(t, equipmentList)
	equipmentID := equipmentList[0].(map[string]interface{})["id"].(string)

	w, _ = s.request(t, http.MethodPost, "/api/v1/reservations", token, gin.H{
		"userId":      adminID,
		"equipmentId": equipmentID,
		"startDate":   "2025-03-10",
		"endDate":     "2025-03-11",
		"purpose":     "seminar",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// force the flag out of sync, then rebuild
	w, _ = s.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/equipment/%s/availability", equipmentID), token, gin.H{
		"available": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = s.request(t, http.MethodPost, "/api/v1/availability/rebuild", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(1), resp.Data["changed"])

	w, resp = s.request(t, http.MethodGet, "/api/v1/equipment/"+equipmentID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp.Data["equipment"].(map[string]interface{})["available"])
}
