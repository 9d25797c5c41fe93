package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"marketly.backend/internal/domain/entities"
	domainerrors "marketly.backend/internal/domain/errors"
	"marketly.backend/internal/interfaces/http/middleware"
)

type merchantServiceStub struct {
	applyFn        func(ctx context.Context, userID uuid.UUID, input *entities.MerchantApplyInput) (*entities.Merchant, error)
	updateStatusFn func(ctx context.Context, merchantID uuid.UUID, input *entities.UpdateMerchantStatusInput, changedBy *uuid.UUID) (*entities.Merchant, error)
	createBranchFn func(ctx context.Context, parentID uuid.UUID, input *entities.CreateBranchInput, changedBy *uuid.UUID) (*entities.Merchant, error)
	getFn          func(ctx context.Context, id uuid.UUID) (*entities.Merchant, error)
	listFn         func(ctx context.Context, status *entities.MerchantStatus, limit, offset int) ([]*entities.Merchant, int64, error)
	statusLogsFn   func(ctx context.Context, merchantID uuid.UUID) ([]*entities.MerchantStatusLog, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
}

func (s merchantServiceStub) Apply(ctx context.Context, userID uuid.UUID, input *entities.MerchantApplyInput) (*entities.Merchant, error) {
	return s.applyFn(ctx, userID, input)
}
func (s merchantServiceStub) UpdateStatus(ctx context.Context, merchantID uuid.UUID, input *entities.UpdateMerchantStatusInput, changedBy *uuid.UUID) (*entities.Merchant, error) {
	return s.updateStatusFn(ctx, merchantID, input, changedBy)
}
func (s merchantServiceStub) CreateBranch(ctx context.Context, parentID uuid.UUID, input *entities.CreateBranchInput, changedBy *uuid.UUID) (*entities.Merchant, error) {
	return s.createBranchFn(ctx, parentID, input, changedBy)
}
func (s merchantServiceStub) Get(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	return s.getFn(ctx, id)
}
func (s merchantServiceStub) List(ctx context.Context, status *entities.MerchantStatus, limit, offset int) ([]*entities.Merchant, int64, error) {
	return s.listFn(ctx, status, limit, offset)
}
func (s merchantServiceStub) GetStatusLogs(ctx context.Context, merchantID uuid.UUID) ([]*entities.MerchantStatusLog, error) {
	return s.statusLogsFn(ctx, merchantID)
}
func (s merchantServiceStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

type onboardingServiceStub struct {
	checklistFn func(ctx context.Context, merchantID uuid.UUID) (*entities.OnboardingChecklist, error)
}

func (s onboardingServiceStub) Checklist(ctx context.Context, merchantID uuid.UUID) (*entities.OnboardingChecklist, error) {
	return s.checklistFn(ctx, merchantID)
}

func withUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func patchJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getPath(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func merchantRouter(h *MerchantHandler, userID uuid.UUID) *gin.Engine {
	r := gin.New()
	r.POST("/merchants/apply", withUser(userID), h.Apply)
	r.GET("/merchants", h.List)
	r.GET("/merchants/:id", h.Get)
	r.PATCH("/merchants/:id/status", withUser(userID), h.UpdateStatus)
	r.POST("/merchants/:id/branches", withUser(userID), h.CreateBranch)
	r.GET("/merchants/:id/status-logs", h.GetStatusLogs)
	r.GET("/merchants/:id/onboarding", h.GetOnboarding)
	r.DELETE("/merchants/:id", h.Delete)
	return r
}

func TestMerchantHandler_Apply(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	merchantID := uuid.New()

	service := merchantServiceStub{
		applyFn: func(_ context.Context, gotUserID uuid.UUID, input *entities.MerchantApplyInput) (*entities.Merchant, error) {
			require.Equal(t, userID, gotUserID)
			require.Equal(t, entities.MerchantTypeIndividual, input.Type)
			if input.Name == "Dup Shop" {
				return nil, domainerrors.ErrAlreadyExists
			}
			return &entities.Merchant{ID: merchantID, Name: input.Name, Status: entities.MerchantStatusPending}, nil
		},
	}
	h := NewMerchantHandler(service, onboardingServiceStub{})
	r := merchantRouter(h, userID)

	w := postJSON(t, r, "/merchants/apply", `{"type":"individual","name":"Corner Shop","contactEmail":"shop@mail.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), merchantID.String())
	require.Contains(t, w.Body.String(), "pending")

	// A user with an existing application cannot apply again
	w = postJSON(t, r, "/merchants/apply", `{"type":"individual","name":"Dup Shop","contactEmail":"shop@mail.com"}`)
	require.Equal(t, http.StatusConflict, w.Code)

	// Binding failure
	w = postJSON(t, r, "/merchants/apply", `{"type":"individual"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMerchantHandler_UpdateStatusMappings(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	merchantID := uuid.New()
	missingID := uuid.New()

	service := merchantServiceStub{
		updateStatusFn: func(_ context.Context, gotID uuid.UUID, input *entities.UpdateMerchantStatusInput, changedBy *uuid.UUID) (*entities.Merchant, error) {
			require.NotNil(t, changedBy)
			require.Equal(t, userID, *changedBy)
			if gotID == missingID {
				return nil, domainerrors.ErrNotFound
			}
			switch input.Status {
			case entities.MerchantStatusActive:
				return nil, domainerrors.ErrInvalidTransition
			case entities.MerchantStatusRejected:
				if input.Reason == "" {
					return nil, domainerrors.ErrMissingReason
				}
			}
			return &entities.Merchant{ID: gotID, Status: input.Status}, nil
		},
	}
	h := NewMerchantHandler(service, onboardingServiceStub{})
	r := merchantRouter(h, userID)

	// Legal transition
	w := patchJSON(t, r, "/merchants/"+merchantID.String()+"/status", `{"status":"submitted"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// Illegal transition maps to 422
	w = patchJSON(t, r, "/merchants/"+merchantID.String()+"/status", `{"status":"active"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Rejection without a reason maps to 422
	w = patchJSON(t, r, "/merchants/"+merchantID.String()+"/status", `{"status":"rejected"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Unknown merchant maps to 404
	w = patchJSON(t, r, "/merchants/"+missingID.String()+"/status", `{"status":"submitted"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Malformed ID
	w = patchJSON(t, r, "/merchants/not-a-uuid/status", `{"status":"submitted"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMerchantHandler_CreateBranch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	parentID := uuid.New()

	service := merchantServiceStub{
		createBranchFn: func(_ context.Context, gotParent uuid.UUID, input *entities.CreateBranchInput, _ *uuid.UUID) (*entities.Merchant, error) {
			require.Equal(t, parentID, gotParent)
			return &entities.Merchant{ID: uuid.New(), Name: input.Name, Status: entities.MerchantStatusActive}, nil
		},
	}
	h := NewMerchantHandler(service, onboardingServiceStub{})
	r := merchantRouter(h, userID)

	w := postJSON(t, r, "/merchants/"+parentID.String()+"/branches", `{"name":"Downtown","contactEmail":"downtown@mail.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "active")
}

func TestMerchantHandler_ListValidatesStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	service := merchantServiceStub{
		listFn: func(_ context.Context, status *entities.MerchantStatus, limit, offset int) ([]*entities.Merchant, int64, error) {
			require.NotNil(t, status)
			require.Equal(t, entities.MerchantStatusPending, *status)
			require.Equal(t, 10, limit)
			require.Equal(t, 10, offset)
			return []*entities.Merchant{{ID: uuid.New(), Status: *status}}, 1, nil
		},
	}
	h := NewMerchantHandler(service, onboardingServiceStub{})
	r := merchantRouter(h, userID)

	w := getPath(t, r, "/merchants?status=pending&page=2&limit=10")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "pagination")

	w = getPath(t, r, "/merchants?status=bogus")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMerchantHandler_StatusLogsAndOnboarding(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	merchantID := uuid.New()

	service := merchantServiceStub{
		statusLogsFn: func(_ context.Context, gotID uuid.UUID) ([]*entities.MerchantStatusLog, error) {
			to := entities.MerchantStatusPending
			return []*entities.MerchantStatusLog{{ID: uuid.New(), MerchantID: gotID, ToStatus: to}}, nil
		},
	}
	onboarding := onboardingServiceStub{
		checklistFn: func(_ context.Context, _ uuid.UUID) (*entities.OnboardingChecklist, error) {
			return &entities.OnboardingChecklist{
				Items:                []entities.ChecklistItem{{Key: entities.ChecklistAccountCreated, Completed: true}},
				CompletedCount:       3,
				TotalCount:           9,
				CompletionPercentage: 33,
			}, nil
		},
	}
	h := NewMerchantHandler(service, onboarding)
	r := merchantRouter(h, userID)

	w := getPath(t, r, "/merchants/"+merchantID.String()+"/status-logs")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "statusLogs")

	w = getPath(t, r, "/merchants/"+merchantID.String()+"/onboarding")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"completedCount":3`)
}

func TestMerchantHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	merchantID := uuid.New()

	service := merchantServiceStub{
		deleteFn: func(_ context.Context, gotID uuid.UUID) error {
			if gotID != merchantID {
				return domainerrors.ErrNotFound
			}
			return nil
		},
	}
	h := NewMerchantHandler(service, onboardingServiceStub{})
	r := merchantRouter(h, userID)

	req := httptest.NewRequest(http.MethodDelete, "/merchants/"+merchantID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/merchants/"+uuid.NewString(), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}
