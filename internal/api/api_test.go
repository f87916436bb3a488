package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dengue-surveillance-api/internal/api"
	"github.com/dengue-surveillance-api/internal/auth"
	"github.com/dengue-surveillance-api/internal/config"
	"github.com/dengue-surveillance-api/internal/mocks"
	"github.com/dengue-surveillance-api/internal/models"
	"github.com/dengue-surveillance-api/internal/realtime"
	"github.com/dengue-surveillance-api/internal/repository"
	"github.com/dengue-surveillance-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type testEnv struct {
	router   *gin.Engine
	auth     *mocks.MockAuthService
	sight    *mocks.MockSightingRepository
	areas    *mocks.MockRiskAreaRepository
	cases    *mocks.MockCaseRepository
	notifs   *mocks.MockNotificationRepository
	hub      *realtime.Hub
	services *service.Services
}

func setupTestRouter() *testEnv {
	gin.SetMode(gin.TestMode)

	sight := mocks.NewMockSightingRepository()
	areas := mocks.NewMockRiskAreaRepository()
	caseRepo := mocks.NewMockCaseRepository()
	notifs := mocks.NewMockNotificationRepository()

	repos := &repository.Repositories{
		User:         mocks.NewMockUserRepository(),
		Sighting:     sight,
		RiskArea:     areas,
		Case:         caseRepo,
		Notification: notifs,
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080", CORSOrigin: "*"},
		Auth:   config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour, BcryptCost: 4},
	}

	hub := realtime.NewHub(zerolog.Nop())
	services := service.NewServices(repos, cfg, hub, zerolog.Nop())

	mockAuth := mocks.NewMockAuthService()
	mockAuth.Tokens["admin-token"] = &auth.Claims{UserID: 1, Name: "Administrador", Email: "admin@dengue.local", Role: models.RoleAdmin}
	mockAuth.Tokens["operator-token"] = &auth.Claims{UserID: 2, Name: "Operador", Email: "operador@dengue.local", Role: models.RoleOperator}
	mockAuth.Tokens["viewer-token"] = &auth.Claims{UserID: 3, Name: "Observador", Email: "viewer@dengue.local", Role: models.RoleViewer}
	services.Auth = mockAuth

	router := api.NewRouter(services, hub, nil, cfg, zerolog.Nop())

	return &testEnv{
		router:   router,
		auth:     mockAuth,
		sight:    sight,
		areas:    areas,
		cases:    caseRepo,
		notifs:   notifs,
		hub:      hub,
		services: services,
	}
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestRouter()

	w := doJSON(env.router, "GET", "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["status"] != "ok" {
		t.Errorf("Expected status 'ok', got %v", response["status"])
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := setupTestRouter()

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/sightings"},
		{"GET", "/api/risk-areas"},
		{"GET", "/api/cases"},
		{"GET", "/api/notifications"},
		{"POST", "/api/auth/register"},
	}

	for _, p := range paths {
		w := doJSON(env.router, p.method, p.path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: expected 401, got %d", p.method, p.path, w.Code)
		}
	}

	w := doJSON(env.router, "GET", "/api/sightings", "forged-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for an unknown token, got %d", w.Code)
	}
}

func TestRoleGating(t *testing.T) {
	env := setupTestRouter()

	// Viewers cannot write
	w := doJSON(env.router, "POST", "/api/sightings", "viewer-token", map[string]interface{}{})
	if w.Code != http.StatusForbidden {
		t.Errorf("Viewer POST: expected 403, got %d", w.Code)
	}

	// Operators cannot delete
	w = doJSON(env.router, "DELETE", "/api/sightings/1", "operator-token", nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("Operator DELETE: expected 403, got %d", w.Code)
	}

	// Only admins register new accounts
	w = doJSON(env.router, "POST", "/api/auth/register", "operator-token", models.RegisterRequest{
		Name: "X", Email: "x@dengue.local", Password: "secret99", Role: models.RoleViewer,
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("Operator register: expected 403, got %d", w.Code)
	}

	w = doJSON(env.router, "POST", "/api/auth/register", "admin-token", models.RegisterRequest{
		Name: "X", Email: "x@dengue.local", Password: "secret99", Role: models.RoleViewer,
	})
	if w.Code != http.StatusCreated {
		t.Errorf("Admin register: expected 201, got %d", w.Code)
	}
}

func TestLoginEndpoint(t *testing.T) {
	env := setupTestRouter()
	env.auth.LoginFunc = func(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error) {
		if req.Email == "admin@dengue.local" && req.Password == "admin123" {
			return &models.LoginResult{
				Token: "issued-token",
				User:  &models.UserSummary{ID: 1, Name: "Administrador", Email: req.Email, Role: models.RoleAdmin},
			}, nil
		}
		return nil, nil
	}

	w := doJSON(env.router, "POST", "/api/auth/login", "", models.LoginRequest{
		Email: "admin@dengue.local", Password: "admin123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result models.LoginResult
	json.Unmarshal(w.Body.Bytes(), &result)
	if result.Token != "issued-token" {
		t.Errorf("Expected issued token, got %q", result.Token)
	}
	if result.User == nil || result.User.Role != models.RoleAdmin {
		t.Errorf("Expected admin user in response, got %+v", result.User)
	}
}

func TestVerifyEndpoint(t *testing.T) {
	env := setupTestRouter()

	w := doJSON(env.router, "GET", "/api/auth/verify", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["valid"] != false {
		t.Errorf("Expected valid=false, got %v", response["valid"])
	}

	w = doJSON(env.router, "GET", "/api/auth/verify", "operator-token", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["valid"] != true {
		t.Errorf("Expected valid=true, got %v", response["valid"])
	}
	user := response["user"].(map[string]interface{})
	if user["email"] != "operador@dengue.local" {
		t.Errorf("Expected operator email, got %v", user["email"])
	}
}

func TestSightingLifecycle(t *testing.T) {
	env := setupTestRouter()

	desc := "pneus acumulando água no quintal"
	create := models.SightingCreate{
		Latitude:    floatPtr(-23.5505),
		Longitude:   floatPtr(-46.6333),
		Category:    models.CategoryTire,
		Description: &desc,
		ReportDate:  "2026-08-30",
	}

	w := doJSON(env.router, "POST", "/api/sightings", "operator-token", create)
	if w.Code != http.StatusCreated {
		t.Fatalf("Create: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created models.Sighting
	json.Unmarshal(w.Body.Bytes(), &created)
	if created.ID == 0 {
		t.Fatal("Expected an assigned id")
	}
	if created.Source != models.SourceInspection {
		t.Errorf("Expected default source, got %q", created.Source)
	}
	if created.UserID == nil || *created.UserID != 2 {
		t.Errorf("Expected the operator's user id, got %v", created.UserID)
	}

	// Round trip
	w = doJSON(env.router, "GET", fmt.Sprintf("/api/sightings/%d", created.ID), "viewer-token", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Get: expected 200, got %d", w.Code)
	}
	var fetched models.Sighting
	json.Unmarshal(w.Body.Bytes(), &fetched)
	if fetched.Category != models.CategoryTire || fetched.Description == nil || *fetched.Description != desc {
		t.Errorf("Round trip mismatch: %+v", fetched)
	}

	// Sparse update
	newCat := models.CategoryBucketDrum
	w = doJSON(env.router, "PUT", fmt.Sprintf("/api/sightings/%d", created.ID), "operator-token", models.SightingPatch{Category: &newCat})
	if w.Code != http.StatusOK {
		t.Fatalf("Update: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Empty patch is rejected
	w = doJSON(env.router, "PUT", fmt.Sprintf("/api/sightings/%d", created.ID), "operator-token", models.SightingPatch{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Empty patch: expected 400, got %d", w.Code)
	}

	// Admin delete, then the record is gone
	w = doJSON(env.router, "DELETE", fmt.Sprintf("/api/sightings/%d", created.ID), "admin-token", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Delete: expected 200, got %d", w.Code)
	}
	w = doJSON(env.router, "GET", fmt.Sprintf("/api/sightings/%d", created.ID), "viewer-token", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Get after delete: expected 404, got %d", w.Code)
	}
}

func TestSightingValidationDetails(t *testing.T) {
	env := setupTestRouter()

	w := doJSON(env.router, "POST", "/api/sightings", "operator-token", map[string]interface{}{
		"category": "helicoptero",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	var response struct {
		Error   string              `json:"error"`
		Details []models.FieldError `json:"details"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if len(response.Details) == 0 {
		t.Fatal("Expected field errors in the response")
	}
	fields := map[string]bool{}
	for _, d := range response.Details {
		fields[d.Field] = true
	}
	for _, want := range []string{"latitude", "longitude", "category", "report_date"} {
		if !fields[want] {
			t.Errorf("Expected %s in details, got %v", want, fields)
		}
	}
}

func TestInvalidPathID(t *testing.T) {
	env := setupTestRouter()

	for _, path := range []string{"/api/sightings/abc", "/api/sightings/0", "/api/sightings/-3"} {
		w := doJSON(env.router, "GET", path, "viewer-token", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("GET %s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestSightingPagination(t *testing.T) {
	env := setupTestRouter()

	for i := 1; i <= 5; i++ {
		uid := int64(2)
		env.sight.Items = append(env.sight.Items, &models.Sighting{
			ID:         int64(i),
			UserID:     &uid,
			Latitude:   -23.5,
			Longitude:  -46.6,
			Category:   models.CategoryTire,
			Source:     models.SourceInspection,
			ReportDate: "2026-08-30",
		})
	}
	env.sight.NextID = 6

	page := func(limit, offset int) []models.Sighting {
		w := doJSON(env.router, "GET", fmt.Sprintf("/api/sightings?limit=%d&offset=%d", limit, offset), "viewer-token", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("List: expected 200, got %d", w.Code)
		}
		var out []models.Sighting
		json.Unmarshal(w.Body.Bytes(), &out)
		return out
	}

	first := page(2, 0)
	second := page(2, 2)

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("Expected 2 records per page, got %d and %d", len(first), len(second))
	}

	seen := map[int64]bool{}
	for _, s := range append(first, second...) {
		if seen[s.ID] {
			t.Errorf("Pages overlap on id %d", s.ID)
		}
		seen[s.ID] = true
	}

	// Newest first
	if first[0].ID != 5 {
		t.Errorf("Expected newest record first, got id %d", first[0].ID)
	}

	tail := page(10, 4)
	if len(tail) != 1 {
		t.Errorf("Expected 1 record on the last page, got %d", len(tail))
	}
	if len(page(10, 50)) != 0 {
		t.Error("Expected an empty page past the end")
	}
}

func TestHighRiskAreaEmitsNotification(t *testing.T) {
	env := setupTestRouter()

	events := env.hub.Subscribe(4)
	defer env.hub.Unsubscribe(events)

	w := doJSON(env.router, "POST", "/api/risk-areas", "operator-token", models.RiskAreaCreate{
		Latitude:   floatPtr(-23.5505),
		Longitude:  floatPtr(-46.6333),
		Severity:   models.SeverityHigh,
		ReportDate: "2026-08-30",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Create: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var area models.RiskArea
	json.Unmarshal(w.Body.Bytes(), &area)
	if area.Radius != models.DefaultRadiusMeters {
		t.Errorf("Expected default radius, got %d", area.Radius)
	}

	// The websocket hub saw the event
	select {
	case evt := <-events:
		if evt.Name != realtime.EventNewRiskArea {
			t.Errorf("Expected %q event, got %q", realtime.EventNewRiskArea, evt.Name)
		}
	default:
		t.Error("Expected a broadcast event")
	}

	// Every user sees the stored notification
	w = doJSON(env.router, "GET", "/api/notifications", "viewer-token", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("List notifications: expected 200, got %d", w.Code)
	}
	var notifications []models.Notification
	json.Unmarshal(w.Body.Bytes(), &notifications)
	if len(notifications) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notifications))
	}
	if notifications[0].Title != "Nova Área de Alto Risco Identificada" {
		t.Errorf("Unexpected title %q", notifications[0].Title)
	}

	// Unread count, mark all, then zero
	w = doJSON(env.router, "GET", "/api/notifications/unread-count", "viewer-token", nil)
	var count map[string]int
	json.Unmarshal(w.Body.Bytes(), &count)
	if count["total"] != 1 {
		t.Errorf("Expected 1 unread, got %d", count["total"])
	}

	w = doJSON(env.router, "PUT", "/api/notifications/read-all", "viewer-token", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Mark all read: expected 200, got %d", w.Code)
	}
	var marked map[string]int
	json.Unmarshal(w.Body.Bytes(), &marked)
	if marked["count"] != 1 {
		t.Errorf("Expected 1 marked, got %d", marked["count"])
	}

	w = doJSON(env.router, "GET", "/api/notifications/unread-count", "viewer-token", nil)
	json.Unmarshal(w.Body.Bytes(), &count)
	if count["total"] != 0 {
		t.Errorf("Expected 0 unread after read-all, got %d", count["total"])
	}
}

func TestNotificationListReadFilter(t *testing.T) {
	env := setupTestRouter()

	mockNotif := mocks.NewMockNotificationService()
	mockNotif.Items = []*models.Notification{
		{ID: 1, Category: models.NotificationRiskArea, Title: "unread"},
		{ID: 2, Category: models.NotificationRiskArea, Title: "read", Read: true},
	}
	mockNotif.UnreadCount = 1
	env.services.Notification = mockNotif

	w := doJSON(env.router, "GET", "/api/notifications?read=false", "viewer-token", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var notifications []models.Notification
	json.Unmarshal(w.Body.Bytes(), &notifications)
	if len(notifications) != 1 || notifications[0].Title != "unread" {
		t.Errorf("Expected only the unread notification, got %+v", notifications)
	}

	// An unparsable read filter is ignored
	w = doJSON(env.router, "GET", "/api/notifications?read=maybe", "viewer-token", nil)
	json.Unmarshal(w.Body.Bytes(), &notifications)
	if len(notifications) != 2 {
		t.Errorf("Expected all notifications for an invalid filter, got %d", len(notifications))
	}

	w = doJSON(env.router, "GET", "/api/notifications/unread-count", "viewer-token", nil)
	var count map[string]int
	json.Unmarshal(w.Body.Bytes(), &count)
	if count["total"] != 1 {
		t.Errorf("Expected 1 unread, got %d", count["total"])
	}
}

func TestMarkUnknownNotification(t *testing.T) {
	env := setupTestRouter()

	w := doJSON(env.router, "PUT", "/api/notifications/42/read", "viewer-token", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for an unknown notification, got %d", w.Code)
	}
}

func TestCaseStatsEndpoint(t *testing.T) {
	env := setupTestRouter()
	env.cases.Stats = []models.CaseStats{
		{Status: models.CaseStatusConfirmed, Total: 12, Last7Days: 4},
		{Status: models.CaseStatusSuspected, Total: 7, Last7Days: 7},
	}

	w := doJSON(env.router, "GET", "/api/cases/stats/summary", "viewer-token", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var stats []models.CaseStats
	json.Unmarshal(w.Body.Bytes(), &stats)
	if len(stats) != 2 || stats[0].Total != 12 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestCORSPreflight(t *testing.T) {
	env := setupTestRouter()

	req := httptest.NewRequest("OPTIONS", "/api/sightings", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected wildcard origin, got %q", got)
	}
}

func floatPtr(f float64) *float64 { return &f }
