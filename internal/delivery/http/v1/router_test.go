package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tvet-connect-backend/config"
	v1 "tvet-connect-backend/internal/delivery/http/v1"
	"tvet-connect-backend/internal/domain"
	"tvet-connect-backend/pkg/apperror"
	"tvet-connect-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mocks ---

type MockAuthUsecase struct{ mock.Mock }

func (m *MockAuthUsecase) SignupIndividual(ctx context.Context, req domain.SignupIndividualRequest) (*domain.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}
func (m *MockAuthUsecase) SignupPrivateSector(ctx context.Context, req domain.SignupPrivateSectorRequest) (*domain.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}
func (m *MockAuthUsecase) CreateTVET(ctx context.Context, req domain.CreateTVETRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthUsecase) Login(ctx context.Context, req domain.LoginRequest, meta domain.LoginMeta) (*domain.AuthResult, error) {
	args := m.Called(ctx, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}
func (m *MockAuthUsecase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockUserUsecase struct{ mock.Mock }

func (m *MockUserUsecase) Me(ctx context.Context) (*domain.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
func (m *MockUserUsecase) GetProfile(ctx context.Context, id string) (*domain.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
func (m *MockUserUsecase) Search(ctx context.Context, filter domain.UserSearchFilter) (*domain.Page[domain.UserProfile], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.UserProfile]), args.Error(1)
}
func (m *MockUserUsecase) UpdateMe(ctx context.Context, req domain.UpdateProfileRequest) (*domain.UserProfile, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

type MockConnectionUsecase struct{ mock.Mock }

func (m *MockConnectionUsecase) RequestConnection(ctx context.Context, requesterID, targetID string) (*domain.Connection, error) {
	args := m.Called(ctx, requesterID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Connection), args.Error(1)
}
func (m *MockConnectionUsecase) RespondToConnection(ctx context.Context, connectionID string, decision domain.ConnectionDecision) (*domain.Connection, error) {
	args := m.Called(ctx, connectionID, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Connection), args.Error(1)
}
func (m *MockConnectionUsecase) RemoveConnection(ctx context.Context, otherUserID string) error {
	return m.Called(ctx, otherUserID).Error(0)
}
func (m *MockConnectionUsecase) ListConnections(ctx context.Context, filter domain.ConnectionFilter) (*domain.Page[domain.ConnectionView], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.ConnectionView]), args.Error(1)
}
func (m *MockConnectionUsecase) GetRelationship(ctx context.Context, otherUserID string) (*domain.RelationshipView, error) {
	args := m.Called(ctx, otherUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RelationshipView), args.Error(1)
}
func (m *MockConnectionUsecase) IsConnected(ctx context.Context, a, b string) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

type MockNotificationUsecase struct{ mock.Mock }

func (m *MockNotificationUsecase) Dispatch(ctx context.Context, req domain.DispatchRequest) (*domain.Notification, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}
func (m *MockNotificationUsecase) Author(ctx context.Context, req domain.DispatchRequest) (*domain.Notification, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}
func (m *MockNotificationUsecase) ListForViewer(ctx context.Context) (*domain.NotificationList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationList), args.Error(1)
}
func (m *MockNotificationUsecase) Filter(ctx context.Context, q domain.NotificationQuery) (*domain.NotificationList, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationList), args.Error(1)
}
func (m *MockNotificationUsecase) MarkRead(ctx context.Context, id string) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}
func (m *MockNotificationUsecase) Remove(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockAdminUsecase struct{ mock.Mock }

func (m *MockAdminUsecase) GetStatistics(ctx context.Context) (*domain.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminStats), args.Error(1)
}
func (m *MockAdminUsecase) ListPendingApprovals(ctx context.Context, page, limit int) (*domain.Page[domain.AdminUser], error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.AdminUser]), args.Error(1)
}
func (m *MockAdminUsecase) ListUsers(ctx context.Context, status string, role string, page, limit int) (*domain.Page[domain.AdminUser], error) {
	args := m.Called(ctx, status, role, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.AdminUser]), args.Error(1)
}
func (m *MockAdminUsecase) ApproveUser(ctx context.Context, userID string) (*domain.AdminUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminUser), args.Error(1)
}

type fakeHealth struct{ ready bool }

func (f fakeHealth) Live(ctx context.Context) map[string]string {
	return map[string]string{"status": "ok"}
}
func (f fakeHealth) Ready(ctx context.Context) (map[string]string, bool) {
	if f.ready {
		return map[string]string{"status": "ok", "database": "ok", "redis": "disabled"}, true
	}
	return map[string]string{"status": "unavailable", "database": "unavailable", "redis": "disabled"}, false
}

// --- Harness ---

type harness struct {
	router       *gin.Engine
	auth         *MockAuthUsecase
	users        *MockUserUsecase
	connections  *MockConnectionUsecase
	notification *MockNotificationUsecase
	admin        *MockAdminUsecase
}

var (
	alice = &domain.User{ID: "u-alice", Role: domain.RoleIndividual, IsApproved: true}
	admin = &domain.User{ID: "u-admin", Role: domain.RoleTVET, IsApproved: true}
)

func newHarness(t *testing.T, ready bool) *harness {
	t.Helper()
	h := &harness{
		auth:         new(MockAuthUsecase),
		users:        new(MockUserUsecase),
		connections:  new(MockConnectionUsecase),
		notification: new(MockNotificationUsecase),
		admin:        new(MockAdminUsecase),
	}
	h.auth.On("Authenticate", mock.Anything, "alice-token").Return(alice, nil).Maybe()
	h.auth.On("Authenticate", mock.Anything, "admin-token").Return(admin, nil).Maybe()
	h.auth.On("Authenticate", mock.Anything, "bad-token").Return(nil, apperror.Unauthorized("Invalid or expired token")).Maybe()

	cfg := &config.Config{
		AppEnv:                   "development",
		FrontendURL:              "http://localhost:3000",
		JWTExpiresIn:             time.Hour,
		RateLimitWindowSeconds:   60,
		RateLimitLoginThreshold:  1000,
		RateLimitGlobalThreshold: 1000,
		MetricsEnabled:           true,
	}

	h.router = v1.NewRouter(v1.RouterDeps{
		AuthUC:         h.auth,
		UserUC:         h.users,
		ConnectionUC:   h.connections,
		NotificationUC: h.notification,
		AdminUC:        h.admin,
		HealthUC:       fakeHealth{ready: ready},
		Metrics:        metrics.NewNop(),
		Config:         cfg,
	})

	t.Cleanup(func() {
		h.users.AssertExpectations(t)
		h.connections.AssertExpectations(t)
		h.notification.AssertExpectations(t)
		h.admin.AssertExpectations(t)
	})
	return h
}

func (h *harness) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     json.RawMessage `json:"error"`
	RequestID string          `json:"request_id"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

// actor matches a request context carrying the given user id.
func actor(userID string) interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		id, _ := ctx.Value(domain.KeyUserID).(string)
		return id == userID
	})
}

// --- Tests ---

func TestHealthRoutes(t *testing.T) {
	t.Run("Should report liveness", func(t *testing.T) {
		h := newHarness(t, true)
		w := h.do(http.MethodGet, "/v1/health/live", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should return 503 when not ready", func(t *testing.T) {
		h := newHarness(t, false)
		w := h.do(http.MethodGet, "/v1/health/ready", "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		env := decode(t, w)
		assert.False(t, env.Success)
		assert.Contains(t, string(env.Error), `"database":"unavailable"`)
	})

	t.Run("Should expose prometheus metrics", func(t *testing.T) {
		h := newHarness(t, true)
		w := h.do(http.MethodGet, "/metrics", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthRoutes(t *testing.T) {
	t.Run("Should set the session cookie on login", func(t *testing.T) {
		h := newHarness(t, true)
		req := domain.LoginRequest{Email: "alice@example.com", Password: "Secret123!"}
		h.auth.On("Login", mock.Anything, req, mock.AnythingOfType("domain.LoginMeta")).
			Return(&domain.AuthResult{Token: "jwt-value"}, nil).Once()

		w := h.do(http.MethodPost, "/v1/auth/login", "", req)

		assert.Equal(t, http.StatusOK, w.Code)
		var session *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == "auth_token" {
				session = c
			}
		}
		require.NotNil(t, session)
		assert.Equal(t, "jwt-value", session.Value)
		assert.True(t, session.HttpOnly)
		h.auth.AssertExpectations(t)
	})

	t.Run("Should surface pending approval as 403", func(t *testing.T) {
		h := newHarness(t, true)
		h.auth.On("Login", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperror.Forbidden("Your account is pending approval")).Once()

		w := h.do(http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "co@example.com", "password": "x"})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Your account is pending approval", decode(t, w).Message)
	})

	t.Run("Should reject malformed JSON with 400", func(t *testing.T) {
		h := newHarness(t, true)
		w := h.do(http.MethodPost, "/v1/auth/signup/individual", "", "{not json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decode(t, w).Message)
	})

	t.Run("Should require a token for /auth/me", func(t *testing.T) {
		h := newHarness(t, true)
		w := h.do(http.MethodGet, "/v1/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestConnectionRoutes(t *testing.T) {
	t.Run("Should create a request as the authenticated user", func(t *testing.T) {
		h := newHarness(t, true)
		h.connections.On("RequestConnection", actor("u-alice"), "u-alice", "u-bob").
			Return(&domain.Connection{ID: "c-1", RequesterID: "u-alice", TargetID: "u-bob", Status: domain.ConnectionStatusPending}, nil).Once()

		w := h.do(http.MethodPost, "/v1/connections", "alice-token", map[string]string{"target_user_id": "u-bob"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, string(decode(t, w).Data), `"status":"pending"`)
	})

	t.Run("Should reject anonymous callers", func(t *testing.T) {
		h := newHarness(t, true)
		w := h.do(http.MethodPost, "/v1/connections", "", map[string]string{"target_user_id": "u-bob"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should require target_user_id", func(t *testing.T) {
		h := newHarness(t, true)
		w := h.do(http.MethodPost, "/v1/connections", "alice-token", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should render a conflict with its details", func(t *testing.T) {
		h := newHarness(t, true)
		h.connections.On("RequestConnection", mock.Anything, "u-alice", "u-bob").
			Return(nil, apperror.Conflict("Connection request already sent").
				WithDetails(map[string]string{"status": "pending", "connection_id": "c-1"})).Once()

		w := h.do(http.MethodPost, "/v1/connections", "alice-token", map[string]string{"target_user_id": "u-bob"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, string(decode(t, w).Error), `"connection_id":"c-1"`)
	})

	t.Run("Should accept either decision or status when responding", func(t *testing.T) {
		bodies := map[string]interface{}{
			"decision": map[string]string{"decision": "accept"},
			"status":   map[string]string{"status": "accepted"},
		}
		for name, body := range bodies {
			t.Run(name, func(t *testing.T) {
				h := newHarness(t, true)
				h.connections.On("RespondToConnection", actor("u-alice"), "c-1", domain.DecisionAccept).
					Return(&domain.Connection{ID: "c-1", Status: domain.ConnectionStatusAccepted}, nil).Once()

				w := h.do(http.MethodPatch, "/v1/connections/c-1", "alice-token", body)

				assert.Equal(t, http.StatusOK, w.Code)
				assert.Equal(t, "Connection accepted", decode(t, w).Message)
			})
		}
	})

	t.Run("Should map a forbidden response to 403", func(t *testing.T) {
		h := newHarness(t, true)
		h.connections.On("RespondToConnection", mock.Anything, "c-1", domain.DecisionReject).
			Return(nil, apperror.Forbidden("Only the recipient can respond to this request")).Once()

		w := h.do(http.MethodPatch, "/v1/connections/c-1", "alice-token", map[string]string{"decision": "reject"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Should pass list filters through", func(t *testing.T) {
		h := newHarness(t, true)
		filter := domain.ConnectionFilter{
			Status:    domain.ConnectionStatusAccepted,
			Direction: domain.DirectionIncoming,
			Page:      2,
			Limit:     5,
		}
		h.connections.On("ListConnections", actor("u-alice"), filter).
			Return(domain.NewPage([]domain.ConnectionView{}, 2, 5, 0), nil).Once()

		w := h.do(http.MethodGet, "/v1/connections?status=accepted&direction=incoming&page=2&limit=5", "alice-token", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should remove by counterpart id", func(t *testing.T) {
		h := newHarness(t, true)
		h.connections.On("RemoveConnection", actor("u-alice"), "u-bob").Return(nil).Once()

		w := h.do(http.MethodDelete, "/v1/connections/user/u-bob", "alice-token", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should report relationship status", func(t *testing.T) {
		h := newHarness(t, true)
		h.connections.On("GetRelationship", actor("u-alice"), "u-bob").
			Return(&domain.RelationshipView{Status: domain.RelationshipReceived, ConnectionID: "c-9"}, nil).Once()

		w := h.do(http.MethodGet, "/v1/connections/status/u-bob", "alice-token", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(decode(t, w).Data), `"status":"received"`)
	})
}

func TestUserRoutes(t *testing.T) {
	t.Run("Should allow anonymous directory search", func(t *testing.T) {
		h := newHarness(t, true)
		h.users.On("Search", actor(""), domain.UserSearchFilter{Role: domain.RoleIndividual, Search: "weld", Page: 1, Limit: 10}).
			Return(domain.NewPage([]domain.UserProfile{}, 1, 10, 0), nil).Once()

		w := h.do(http.MethodGet, "/v1/users?role=individual&search=weld", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should attach the viewer when a token is sent", func(t *testing.T) {
		h := newHarness(t, true)
		h.users.On("GetProfile", actor("u-alice"), "u-bob").Return(&domain.UserProfile{ID: "u-bob"}, nil).Once()

		w := h.do(http.MethodGet, "/v1/users/u-bob", "alice-token", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should reject an invalid optional token", func(t *testing.T) {
		h := newHarness(t, true)
		w := h.do(http.MethodGet, "/v1/users/u-bob", "bad-token", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should update own profile", func(t *testing.T) {
		h := newHarness(t, true)
		h.users.On("UpdateMe", actor("u-alice"), mock.MatchedBy(func(req domain.UpdateProfileRequest) bool {
			return req.Bio != nil && *req.Bio == "Welder" && req.FirstName == nil
		})).Return(&domain.UserProfile{ID: "u-alice"}, nil).Once()

		w := h.do(http.MethodPut, "/v1/users/me", "alice-token", map[string]string{"bio": "Welder"})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestNotificationRoutes(t *testing.T) {
	t.Run("Should list the general feed anonymously", func(t *testing.T) {
		h := newHarness(t, true)
		h.notification.On("ListForViewer", actor("")).
			Return(&domain.NotificationList{Notifications: []domain.Notification{}}, nil).Once()

		w := h.do(http.MethodGet, "/v1/notifications", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should only let TVET administrators author", func(t *testing.T) {
		h := newHarness(t, true)
		w := h.do(http.MethodPost, "/v1/notifications", "alice-token", map[string]string{
			"title": "Hi", "message": "Hello", "recipient_type": "general",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		h.notification.AssertNotCalled(t, "Author", mock.Anything, mock.Anything)
	})

	t.Run("Should create as a TVET administrator", func(t *testing.T) {
		h := newHarness(t, true)
		h.notification.On("Author", actor("u-admin"), mock.MatchedBy(func(req domain.DispatchRequest) bool {
			return req.RecipientType == domain.RecipientGeneral && req.Title == "Intake"
		})).Return(&domain.Notification{ID: "n-1"}, nil).Once()

		w := h.do(http.MethodPost, "/v1/notifications", "admin-token", map[string]string{
			"title": "Intake", "message": "Applications open", "recipient_type": "general",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Should pass filter query parameters", func(t *testing.T) {
		h := newHarness(t, true)
		h.notification.On("Filter", actor("u-alice"), domain.NotificationQuery{RecipientType: domain.RecipientUser, RecipientID: "u-alice"}).
			Return(&domain.NotificationList{}, nil).Once()

		w := h.do(http.MethodGet, "/v1/notifications/filter?recipient_type=user&recipient_id=u-alice", "alice-token", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should mark read and delete", func(t *testing.T) {
		h := newHarness(t, true)
		h.notification.On("MarkRead", actor("u-alice"), "n-1").Return(&domain.Notification{ID: "n-1", IsRead: true}, nil).Once()
		h.notification.On("Remove", actor("u-alice"), "n-1").Return(apperror.NotFound("Notification not found")).Once()

		assert.Equal(t, http.StatusOK, h.do(http.MethodPatch, "/v1/notifications/n-1/read", "alice-token", nil).Code)
		assert.Equal(t, http.StatusNotFound, h.do(http.MethodDelete, "/v1/notifications/n-1", "alice-token", nil).Code)
	})
}

func TestAdminRoutes(t *testing.T) {
	t.Run("Should block non-TVET users before the usecase", func(t *testing.T) {
		h := newHarness(t, true)
		w := h.do(http.MethodGet, "/v1/admin/statistics", "alice-token", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		h.admin.AssertNotCalled(t, "GetStatistics", mock.Anything)
	})

	t.Run("Should serve statistics to TVET administrators", func(t *testing.T) {
		h := newHarness(t, true)
		h.admin.On("GetStatistics", actor("u-admin")).Return(&domain.AdminStats{PendingApprovals: 3}, nil).Once()

		w := h.do(http.MethodGet, "/v1/admin/statistics", "admin-token", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should approve a user", func(t *testing.T) {
		h := newHarness(t, true)
		h.admin.On("ApproveUser", actor("u-admin"), "u-co").Return(&domain.AdminUser{ID: "u-co", IsApproved: true}, nil).Once()

		w := h.do(http.MethodPost, "/v1/admin/users/u-co/approve", "admin-token", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should pass list filters", func(t *testing.T) {
		h := newHarness(t, true)
		h.admin.On("ListUsers", mock.Anything, "pending", "private_sector", 1, 10).
			Return(domain.NewPage([]domain.AdminUser{}, 1, 10, 0), nil).Once()
		h.admin.On("ListPendingApprovals", mock.Anything, 1, 10).
			Return(domain.NewPage([]domain.AdminUser{}, 1, 10, 0), nil).Once()

		assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/v1/admin/users?status=pending&role=private_sector", "admin-token", nil).Code)
		assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/v1/admin/approvals/pending", "admin-token", nil).Code)
	})
}

func TestRequestID(t *testing.T) {
	t.Run("Should echo the request id in the envelope", func(t *testing.T) {
		h := newHarness(t, true)
		w := h.do(http.MethodGet, "/v1/health/live", "", nil)
		env := decode(t, w)
		assert.NotEmpty(t, env.RequestID)
		assert.True(t, strings.EqualFold(env.RequestID, w.Header().Get("X-Request-ID")))
	})
}
