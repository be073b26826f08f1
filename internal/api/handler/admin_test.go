package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"billboardgo/backend/internal/api/handler"
	"billboardgo/backend/internal/models"
	"billboardgo/backend/internal/moderation"
	"billboardgo/backend/internal/push"
	"billboardgo/backend/internal/realtime"
	"billboardgo/backend/internal/storage"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testSecret = []byte("test-secret")

type testEnv struct {
	router   *gin.Engine
	storage  *MockStorage
	notifier *MockNotifier
}

// newTestEnv wires a router with the same route layout as cmd/main.go.
func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	storageMock := new(MockStorage)
	notifier := new(MockNotifier)
	h := handler.NewHandler(
		storageMock,
		realtime.NewRegistry(),
		notifier,
		moderation.NewService(storageMock),
		push.NewProvider("test-vapid-key"),
		testSecret,
	)

	r := gin.New()
	auth := r.Group("/", h.AuthRequired())
	{
		auth.GET("/api/notifications/unread-count", h.UnreadCount)
		auth.POST("/api/notifications/read", h.MarkNotificationsRead)
	}
	admin := r.Group("/api/admin", h.AuthRequired(), h.AdminRequired())
	{
		admin.POST("/billboards/:id/approve", h.ApproveBillboard)
		admin.POST("/billboards/:id/reject", h.RejectBillboard)
		admin.POST("/users/:id/suspend", h.SuspendUser)
	}
	r.GET("/api/push/public-key", h.PushPublicKey)

	return &testEnv{router: r, storage: storageMock, notifier: notifier}
}

func tokenFor(userID, role string) string {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iss":     "billboardgo-service",
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	return token
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestApproveBillboard_NonAdminRejected(t *testing.T) {
	env := newTestEnv()
	env.storage.On("IsUserSuspended", "user_1").Return(false, nil)

	w := env.do(http.MethodPost, "/api/admin/billboards/b1/approve", tokenFor("user_1", models.RoleUser), nil)

	// Wrong role yields the same 401 as a missing session, and no data
	// mutation happens.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env.storage.AssertNotCalled(t, "UpdateBillboard", mock.Anything)
}

func TestApproveBillboard_NoSessionRejected(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodPost, "/api/admin/billboards/b1/approve", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env.storage.AssertNotCalled(t, "GetBillboardByID", mock.Anything)
}

func TestApproveBillboard_AdminMutatesTargetedRecord(t *testing.T) {
	env := newTestEnv()
	env.storage.On("IsUserSuspended", "admin_1").Return(false, nil)
	env.storage.On("GetBillboardByID", "b1").Return(&models.Billboard{
		ID:      "b1",
		OwnerID: "owner_1",
		Title:   "Main Street LED",
		Status:  models.BillboardStatusPending,
	}, nil)
	env.storage.On("UpdateBillboard", mock.AnythingOfType("*models.Billboard")).Return(nil)

	w := env.do(http.MethodPost, "/api/admin/billboards/b1/approve", tokenFor("admin_1", models.RoleAdmin), nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Billboard
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "b1", updated.ID)
	assert.Equal(t, models.BillboardStatusActive, updated.Status)
	assert.Equal(t, "admin_1", updated.ApprovedBy)
	assert.NotNil(t, updated.ApprovedAt)

	// The owner is notified of the approval.
	calls := env.notifier.Calls()
	assert.Len(t, calls, 1)
	assert.Equal(t, "owner_1", calls[0].RecipientID)
	assert.Equal(t, models.NotificationBillboardApproved, calls[0].Kind)
}

func TestRejectBillboard_RequiresReason(t *testing.T) {
	env := newTestEnv()
	env.storage.On("IsUserSuspended", "admin_1").Return(false, nil)

	w := env.do(http.MethodPost, "/api/admin/billboards/b1/reject", tokenFor("admin_1", models.RoleAdmin), gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.storage.AssertNotCalled(t, "UpdateBillboard", mock.Anything)
}

func TestRejectBillboard_RecordsReason(t *testing.T) {
	env := newTestEnv()
	env.storage.On("IsUserSuspended", "admin_1").Return(false, nil)
	env.storage.On("GetBillboardByID", "b1").Return(&models.Billboard{
		ID:      "b1",
		OwnerID: "owner_1",
		Status:  models.BillboardStatusPending,
	}, nil)
	env.storage.On("UpdateBillboard", mock.AnythingOfType("*models.Billboard")).Return(nil)

	w := env.do(http.MethodPost, "/api/admin/billboards/b1/reject",
		tokenFor("admin_1", models.RoleAdmin), gin.H{"reason": "blurry photos"})

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Billboard
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.BillboardStatusRejected, updated.Status)
	assert.Equal(t, "blurry photos", updated.RejectReason)
}

func TestApproveBillboard_NotFound(t *testing.T) {
	env := newTestEnv()
	env.storage.On("IsUserSuspended", "admin_1").Return(false, nil)
	env.storage.On("GetBillboardByID", "missing").Return(nil, storage.ErrNotFound)

	w := env.do(http.MethodPost, "/api/admin/billboards/missing/approve", tokenFor("admin_1", models.RoleAdmin), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSuspendUser_AdminOnly(t *testing.T) {
	env := newTestEnv()
	env.storage.On("IsUserSuspended", "admin_1").Return(false, nil)
	env.storage.On("GetUserByID", "target").Return(&models.User{ID: "target", Role: models.RoleUser}, nil)
	env.storage.On("UpdateUser", mock.AnythingOfType("*models.User")).Return(nil)
	env.storage.On("CacheSuspension", "target", mock.AnythingOfType("time.Time")).Return(nil)

	w := env.do(http.MethodPost, "/api/admin/users/target/suspend", tokenFor("admin_1", models.RoleAdmin), nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.True(t, updated.Suspended)
	env.storage.AssertCalled(t, "UpdateUser", mock.AnythingOfType("*models.User"))
}

func TestPushPublicKey(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodGet, "/api/push/public-key", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test-vapid-key")
}
