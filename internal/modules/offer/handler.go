package offer

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

// RegisterRoutes wires the catalog surface. Listing and retrieval stay
// public, every mutation requires a token.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/offers", h.List)
	public.GET("/offers/:id", h.Get)

	protected.POST("/offers", h.Create)
	protected.PATCH("/offers/:id", h.Update)
	protected.DELETE("/offers/:id", h.Delete)
	protected.GET("/offerdetails/:id", h.GetDetail)
}

func (h *Handler) List(c *gin.Context) {
	q := ListQuery{
		CreatorID:       c.Query("creator_id"),
		Search:          c.Query("search"),
		MaxDeliveryTime: c.Query("max_delivery_time"),
		MinPrice:        c.Query("min_price"),
		Ordering:        c.Query("ordering"),
		Page:            c.Query("page"),
		PageSize:        c.Query("page_size"),
	}

	offers, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"count":   total,
		"results": offers,
	})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	callerID := c.GetInt64("user_id")
	offer, err := h.service.Create(c.Request.Context(), callerID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, offer)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid offer ID")
		return
	}

	offer, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, offer)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid offer ID")
		return
	}

	var req UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	callerID := c.GetInt64("user_id")
	offer, err := h.service.Update(c.Request.Context(), callerID, id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, offer)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid offer ID")
		return
	}

	callerID := c.GetInt64("user_id")
	if err := h.service.Delete(c.Request.Context(), callerID, id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid offer detail ID")
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var ve apierror.ValidationError
	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", ve)
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only business users may manage their own offers")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Offer not found")
	case errors.Is(err, ErrDetailNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Offer detail not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}
