package review

import (
	"errors"
	"net/http"
	"strconv"

	"coderr/internal/pkg/apierror"
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
	protected.GET("/reviews", h.list)
	protected.POST("/reviews", h.create)
	protected.GET("/reviews/:id", response.MethodNotAllowed)
	protected.PUT("/reviews/:id", response.MethodNotAllowed)
	protected.PATCH("/reviews/:id", h.update)
	protected.DELETE("/reviews/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{
		BusinessUserID: c.Query("business_user_id"),
		ReviewerID:     c.Query("reviewer_id"),
		Ordering:       c.Query("ordering"),
	}

	reviews, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, reviews)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	callerID := c.GetInt64("user_id")
	rv, err := h.service.Create(c.Request.Context(), callerID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, rv)
}

func (h *Handler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review id")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	rv, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), c.GetBool("is_staff"), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), c.GetBool("is_staff"), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var ve apierror.ValidationError
	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", ve)
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to perform this action")
	case errors.Is(err, ErrNoBusinessUser):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "A business user must be supplied")
	case errors.Is(err, ErrReviewNotAllowed):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only review businesses you have completed an order with")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
