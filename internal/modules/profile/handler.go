package profile

import (
	"errors"
	"net/http"
	"strconv"

	"coderr/internal/domain"
	"coderr/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/profile/:pk", h.Get)
	protected.PATCH("/profile/:pk", h.Update)
	protected.GET("/profiles/business", h.ListBusiness)
	protected.GET("/profiles/customer", h.ListCustomer)
}

func (h *Handler) Get(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("pk"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user ID")
		return
	}

	p, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No user profile found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Update(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("pk"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user ID")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	callerID := c.GetInt64("user_id")
	p, err := h.service.Update(c.Request.Context(), callerID, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No user profile found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not allowed to edit another user's profile")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) ListBusiness(c *gin.Context) {
	h.listByType(c, domain.ProfileTypeBusiness)
}

func (h *Handler) ListCustomer(c *gin.Context) {
	h.listByType(c, domain.ProfileTypeCustomer)
}

func (h *Handler) listByType(c *gin.Context, t domain.ProfileType) {
	profiles, err := h.service.ListByType(c.Request.Context(), t)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, profiles)
}
