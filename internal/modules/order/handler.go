package order

import (
	"errors"
	"net/http"
	"strconv"

	"coderr/internal/domain"
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

// RegisterRoutes wires the order surface. The single-order resource only
// supports PATCH and DELETE; GET and PUT answer 405.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/orders", h.List)
	protected.POST("/orders", h.Create)
	protected.PATCH("/orders/:id", h.UpdateStatus)
	protected.DELETE("/orders/:id", h.Delete)
	protected.GET("/orders/:id", response.MethodNotAllowed)
	protected.PUT("/orders/:id", response.MethodNotAllowed)

	protected.GET("/order-count/:business_user_id", h.CountInProgress)
	protected.GET("/completed-order-count/:business_user_id", h.CountCompleted)
}

func (h *Handler) List(c *gin.Context) {
	callerID := c.GetInt64("user_id")
	orders, err := h.service.List(c.Request.Context(), callerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, orders)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	callerID := c.GetInt64("user_id")
	o, err := h.service.Create(c.Request.Context(), callerID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, o)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order ID")
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	callerID := c.GetInt64("user_id")
	isStaff := c.GetBool("is_staff")
	o, err := h.service.UpdateStatus(c.Request.Context(), callerID, isStaff, orderID, payload)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, o)
}

func (h *Handler) Delete(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order ID")
		return
	}

	callerID := c.GetInt64("user_id")
	isStaff := c.GetBool("is_staff")
	if err := h.service.Delete(c.Request.Context(), callerID, isStaff, orderID); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) CountInProgress(c *gin.Context) {
	h.count(c, domain.OrderInProgress, "order_count")
}

func (h *Handler) CountCompleted(c *gin.Context) {
	h.count(c, domain.OrderCompleted, "completed_order_count")
}

func (h *Handler) count(c *gin.Context, status domain.OrderStatus, key string) {
	businessUserID, err := strconv.ParseInt(c.Param("business_user_id"), 10, 64)
	if err != nil || businessUserID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid business user ID")
		return
	}

	count, err := h.service.CountForBusiness(c.Request.Context(), businessUserID, status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{key: count})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var ve apierror.ValidationError
	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", ve)
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this action")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
	case errors.Is(err, ErrDetailNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Offer detail not found")
	case errors.Is(err, ErrBusinessNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business user not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}
