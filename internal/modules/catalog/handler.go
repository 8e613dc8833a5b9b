package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"equipreserve/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the read endpoints available to any
// authenticated user.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	eq := rg.Group("/equipment")
	{
		eq.GET("", h.List)
		eq.GET("/:id", h.GetByID)
	}
}

// RegisterAdminRoutes mounts the management endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	eq := rg.Group("/equipment")
	{
		eq.POST("", h.Create)
		eq.PUT("/:id", h.Update)
		eq.DELETE("/:id", h.Delete)
		eq.PATCH("/:id/availability", h.SetAvailability)
	}
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to load equipment")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"equipment": items})
}

func (h *Handler) GetByID(c *gin.Context) {
	e, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "EQUIPMENT_NOT_FOUND", "Equipment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to load equipment")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"equipment": e})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	e, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name and type are required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create equipment")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"equipment": e})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	e, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name and type are required")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "EQUIPMENT_NOT_FOUND", "Equipment not found")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update equipment")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"equipment": e})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete equipment")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) SetAvailability(c *gin.Context) {
	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Available == nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	e, err := h.service.SetAvailability(c.Request.Context(), c.Param("id"), *req.Available)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "EQUIPMENT_NOT_FOUND", "Equipment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update availability")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"equipment": e})
}
