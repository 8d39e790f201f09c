package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"musclemania/gym-catalog/internal/config"
	"musclemania/gym-catalog/internal/domain"
	"musclemania/gym-catalog/internal/repository/memory"
	"musclemania/gym-catalog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	store  *memory.Store
}

func newTestServer(t *testing.T, policy service.CatalogPolicy) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	logger := zap.NewNop()

	router := gin.New()
	router.Use(RequestLogger(logger))
	SetupRoutes(router, Services{
		Auth:       service.NewAuthService(store.Users(), "test-secret", time.Hour),
		Catalog:    service.NewCatalogService(store.Categories(), store.Equipment(), policy, logger),
		Workout:    service.NewWorkoutService(store.WorkoutHistory(), store.Equipment()),
		Generation: service.NewGenerationService(nil, nil, logger),
	}, nil)
	return &testServer{t: t, router: router, store: store}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// signup registers and logs in; admin users are promoted in the store first.
func (s *testServer) signup(email string, role domain.Role) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{Email: email, Password: "hunter22"})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	user := decode[UserResponse](s.t, w)
	if role != domain.RoleUser {
		require.NoError(s.t, s.store.SetRole(user.ID, role))
	}

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: email, Password: "hunter22"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return decode[LoginResponse](s.t, w).Token
}

func TestPing(t *testing.T) {
	s := newTestServer(t, service.CatalogPolicy{})
	w := s.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t, service.CatalogPolicy{})
	token := s.signup("lifter@example.com", domain.RoleUser)

	w := s.do(http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{Email: "lifter@example.com", Password: "hunter22"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{Email: "long@example.com", Password: strings.Repeat("p", 80)})
	assert.Equal(t, http.StatusBadRequest, w.Code, "passwords longer than bcrypt accepts")

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "lifter@example.com", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[MeResponse](t, w)
	assert.Equal(t, domain.RoleUser, me.Profile.Role)
	assert.Equal(t, "lifter@example.com", me.Email)

	w = s.do(http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCatalogAdminOnly(t *testing.T) {
	s := newTestServer(t, service.CatalogPolicy{PropagateRename: true})
	user := s.signup("user@example.com", domain.RoleUser)
	admin := s.signup("admin@example.com", domain.RoleAdmin)

	w := s.do(http.MethodPost, "/api/v1/categories", "", CategoryRequest{Name: "Legs"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(http.MethodPost, "/api/v1/categories", user, CategoryRequest{Name: "Legs"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/v1/categories", admin, CategoryRequest{Name: "Legs"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	legs := decode[domain.Category](t, w)

	w = s.do(http.MethodPost, "/api/v1/equipment", admin, EquipmentRequest{
		Name: "Squat Rack", CategoryID: legs.ID, VideoURL: "https://www.youtube.com/watch?v=sq123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rack := decode[EquipmentResponse](t, w)
	assert.Equal(t, "Legs", rack.CategoryName)
	assert.Equal(t, "https://www.youtube.com/embed/sq123", rack.EmbedURL)

	w = s.do(http.MethodPost, "/api/v1/equipment", admin, EquipmentRequest{Name: "Ghost", CategoryID: "missing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(http.MethodPost, "/api/v1/equipment", admin, EquipmentRequest{Name: "Rower", Type: "rowing", CategoryID: legs.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// public reads
	w = s.do(http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Category](t, w), 1)

	w = s.do(http.MethodPut, "/api/v1/categories/"+legs.ID, admin, CategoryRequest{Name: "Lower Body"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/categories/"+legs.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[CategoryDetailResponse](t, w)
	assert.Equal(t, "Lower Body", detail.Category.Name)
	require.Len(t, detail.Equipment, 1)
	assert.Equal(t, "Lower Body", detail.Equipment[0].CategoryName)

	w = s.do(http.MethodGet, "/api/v1/equipment/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodGet, "/api/v1/categories/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, "/api/v1/equipment/"+rack.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(http.MethodGet, "/api/v1/equipment?categoryId="+legs.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]EquipmentResponse](t, w))
}

func TestDeleteCategoryRejectPolicy(t *testing.T) {
	s := newTestServer(t, service.CatalogPolicy{DeletePolicy: config.DeletePolicyReject})
	admin := s.signup("admin@example.com", domain.RoleAdmin)

	legs := decode[domain.Category](t, s.do(http.MethodPost, "/api/v1/categories", admin, CategoryRequest{Name: "Legs"}))
	w := s.do(http.MethodPost, "/api/v1/equipment", admin, EquipmentRequest{Name: "Squat Rack", CategoryID: legs.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodDelete, "/api/v1/categories/"+legs.ID, admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWorkoutLog(t *testing.T) {
	s := newTestServer(t, service.CatalogPolicy{})
	admin := s.signup("admin@example.com", domain.RoleAdmin)
	user := s.signup("user@example.com", domain.RoleUser)

	cardio := decode[domain.Category](t, s.do(http.MethodPost, "/api/v1/categories", admin, CategoryRequest{Name: "Cardio"}))
	bike := decode[EquipmentResponse](t, s.do(http.MethodPost, "/api/v1/equipment", admin, EquipmentRequest{
		Name: "Stationary Bike", Type: domain.EquipmentCardio, CategoryID: cardio.ID,
	}))

	w := s.do(http.MethodPost, "/api/v1/workouts", "", SaveWorkoutRequest{EquipmentID: bike.ID})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/v1/workouts", user, SaveWorkoutRequest{
		EquipmentID: bike.ID,
		Sets:        []service.SetEntry{{Kind: service.EntryStrength, Weight: "50", Reps: "10"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "strength set on cardio equipment")

	w = s.do(http.MethodPost, "/api/v1/workouts", user, SaveWorkoutRequest{
		EquipmentID: bike.ID,
		Sets:        []service.SetEntry{{Kind: service.EntryCardio, Duration: "30", Distance: "12"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	saved := decode[domain.WorkoutSession](t, w)
	assert.Equal(t, "Stationary Bike", saved.EquipmentName)
	assert.NotEmpty(t, saved.UserID)

	w = s.do(http.MethodGet, "/api/v1/workouts", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.WorkoutSession](t, w), 1)

	w = s.do(http.MethodGet, "/api/v1/workouts", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]domain.WorkoutSession](t, w), "history is per user")

	w = s.do(http.MethodGet, "/api/v1/equipment/"+bike.ID+"/history", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[MachineHistoryResponse](t, w)
	require.NotNil(t, history.LastSession)
	assert.Equal(t, saved.ID, history.LastSession.ID)
}

func TestGenerationNotConfigured(t *testing.T) {
	s := newTestServer(t, service.CatalogPolicy{})
	admin := s.signup("admin@example.com", domain.RoleAdmin)
	user := s.signup("user@example.com", domain.RoleUser)

	w := s.do(http.MethodPost, "/api/v1/generate/equipment-info", user, EquipmentInfoRequest{EquipmentName: "Treadmill"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/v1/generate/equipment-info", admin, EquipmentInfoRequest{EquipmentName: "Treadmill"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.do(http.MethodPost, "/api/v1/generate/image-prompt", admin, ImagePromptRequest{EquipmentName: "Treadmill"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["prompt"], "Treadmill")
}
