package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"marketly.backend/internal/domain/entities"
	domainerrors "marketly.backend/internal/domain/errors"
	"marketly.backend/internal/interfaces/http/middleware"
	"marketly.backend/internal/interfaces/http/response"
	"marketly.backend/pkg/utils"
)

type MerchantService interface {
	Apply(ctx context.Context, userID uuid.UUID, input *entities.MerchantApplyInput) (*entities.Merchant, error)
	UpdateStatus(ctx context.Context, merchantID uuid.UUID, input *entities.UpdateMerchantStatusInput, changedBy *uuid.UUID) (*entities.Merchant, error)
	CreateBranch(ctx context.Context, parentID uuid.UUID, input *entities.CreateBranchInput, changedBy *uuid.UUID) (*entities.Merchant, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Merchant, error)
	List(ctx context.Context, status *entities.MerchantStatus, limit, offset int) ([]*entities.Merchant, int64, error)
	GetStatusLogs(ctx context.Context, merchantID uuid.UUID) ([]*entities.MerchantStatusLog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type OnboardingService interface {
	Checklist(ctx context.Context, merchantID uuid.UUID) (*entities.OnboardingChecklist, error)
}

// MerchantHandler handles merchant lifecycle endpoints
type MerchantHandler struct {
	merchantUsecase   MerchantService
	onboardingUsecase OnboardingService
}

// NewMerchantHandler creates a new merchant handler
func NewMerchantHandler(merchantUsecase MerchantService, onboardingUsecase OnboardingService) *MerchantHandler {
	return &MerchantHandler{
		merchantUsecase:   merchantUsecase,
		onboardingUsecase: onboardingUsecase,
	}
}

// Apply handles a merchant application
// POST /api/v1/merchants/apply
func (h *MerchantHandler) Apply(c *gin.Context) {
	var input entities.MerchantApplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	merchant, err := h.merchantUsecase.Apply(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"merchant": merchant})
}

// Get gets a merchant by ID
// GET /api/v1/merchants/:id
func (h *MerchantHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid merchant ID"))
		return
	}

	merchant, err := h.merchantUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"merchant": merchant})
}

// List lists merchants, optionally filtered by status
// GET /api/v1/merchants?status=pending&page=1&limit=20
func (h *MerchantHandler) List(c *gin.Context) {
	var status *entities.MerchantStatus
	if s := c.Query("status"); s != "" {
		ms := entities.MerchantStatus(s)
		if !ms.IsValid() {
			response.Error(c, domainerrors.BadRequest("Invalid merchant status"))
			return
		}
		status = &ms
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	merchants, total, err := h.merchantUsecase.List(c.Request.Context(), status, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"merchants":  merchants,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// UpdateStatus applies a lifecycle transition to a merchant
// PATCH /api/v1/merchants/:id/status
func (h *MerchantHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid merchant ID"))
		return
	}

	var input entities.UpdateMerchantStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	var changedBy *uuid.UUID
	if userID, ok := middleware.GetUserID(c); ok {
		changedBy = &userID
	}

	merchant, err := h.merchantUsecase.UpdateStatus(c.Request.Context(), id, &input, changedBy)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"merchant": merchant})
}

// CreateBranch creates a branch under an organization merchant
// POST /api/v1/merchants/:id/branches
func (h *MerchantHandler) CreateBranch(c *gin.Context) {
	parentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid merchant ID"))
		return
	}

	var input entities.CreateBranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	var changedBy *uuid.UUID
	if userID, ok := middleware.GetUserID(c); ok {
		changedBy = &userID
	}

	branch, err := h.merchantUsecase.CreateBranch(c.Request.Context(), parentID, &input, changedBy)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"merchant": branch})
}

// GetStatusLogs returns the audit trail of a merchant's transitions
// GET /api/v1/merchants/:id/status-logs
func (h *MerchantHandler) GetStatusLogs(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid merchant ID"))
		return
	}

	logs, err := h.merchantUsecase.GetStatusLogs(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"statusLogs": logs})
}

// GetOnboarding returns the onboarding checklist for a merchant
// GET /api/v1/merchants/:id/onboarding
func (h *MerchantHandler) GetOnboarding(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid merchant ID"))
		return
	}

	checklist, err := h.onboardingUsecase.Checklist(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, checklist)
}

// Delete soft-deletes a merchant
// DELETE /api/v1/merchants/:id
func (h *MerchantHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid merchant ID"))
		return
	}

	if err := h.merchantUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
