package ledger

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"equipreserve/internal/domain"
	"equipreserve/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the endpoints available to any authenticated
// user. Non-admins only see and create their own reservations.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	res := rg.Group("/reservations")
	{
		res.GET("", h.List)
		res.GET("/:id", h.GetByID)
		res.POST("", h.Create)
	}
}

// RegisterAdminRoutes mounts the management endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	res := rg.Group("/reservations")
	{
		res.PUT("/:id", h.Update)
		res.PATCH("/:id/status", h.SetStatus)
		res.DELETE("/:id", h.Delete)
	}
	rg.POST("/availability/rebuild", h.RebuildAvailability)
}

func (h *Handler) List(c *gin.Context) {
	filter := ListFilter{
		UserID:      c.Query("user_id"),
		EquipmentID: c.Query("equipment_id"),
		Status:      c.Query("status"),
		Query:       c.Query("q"),
	}

	// non-admins are pinned to their own reservations
	if c.GetString("role") != string(domain.RoleAdmin) {
		filter.UserID = c.GetString("user_id")
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown reservation status")
			return
		}
		response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to load reservations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservations": items})
}

func (h *Handler) GetByID(c *gin.Context) {
	d, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "RESERVATION_NOT_FOUND", "Reservation not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to load reservation")
		return
	}

	if c.GetString("role") != string(domain.RoleAdmin) && d.UserID != c.GetString("user_id") {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your reservation")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": d})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	// non-admins reserve for themselves regardless of the body
	if c.GetString("role") != string(domain.RoleAdmin) {
		req.UserID = c.GetString("user_id")
	}

	r, err := h.service.Reserve(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "End date must not precede start date and purpose is required")
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "Reservation user does not exist")
		case errors.Is(err, ErrEquipmentNotFound):
			response.Error(c, http.StatusNotFound, "EQUIPMENT_NOT_FOUND", "Reservation equipment does not exist")
		case errors.Is(err, ErrNotAvailable):
			response.Error(c, http.StatusConflict, "EQUIPMENT_UNAVAILABLE", "Equipment is not available")
		default:
			response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create reservation")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"reservation": r})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "End date must not precede start date and purpose is required")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "RESERVATION_NOT_FOUND", "Reservation not found")
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "Reservation user does not exist")
		case errors.Is(err, ErrEquipmentNotFound):
			response.Error(c, http.StatusNotFound, "EQUIPMENT_NOT_FOUND", "Reservation equipment does not exist")
		case errors.Is(err, ErrNotAvailable):
			response.Error(c, http.StatusConflict, "EQUIPMENT_UNAVAILABLE", "Equipment is not available")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update reservation")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) SetStatus(c *gin.Context) {
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), domain.ReservationStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown reservation status")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "RESERVATION_NOT_FOUND", "Reservation not found")
		case errors.Is(err, ErrInvalidTransition):
			response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Status transition not allowed")
		case errors.Is(err, ErrNotAvailable):
			response.Error(c, http.StatusConflict, "EQUIPMENT_UNAVAILABLE", "Equipment was reserved by someone else")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update reservation status")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete reservation")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) RebuildAvailability(c *gin.Context) {
	changed, err := h.service.RebuildAvailability(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "REBUILD_FAILED", "Failed to rebuild availability flags")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"changed": changed})
}
