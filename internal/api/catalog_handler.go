package api

import (
	"fmt"
	"net/http"

	"musclemania/gym-catalog/internal/domain"
	"musclemania/gym-catalog/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves categories and equipment.
type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// --- DTOs ---

type CategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"imageUrl" binding:"omitempty,url"`
}

type EquipmentRequest struct {
	Name       string               `json:"name" binding:"required"`
	ImageURL   string               `json:"imageUrl" binding:"omitempty,url"`
	Info       string               `json:"info"`
	VideoURL   string               `json:"videoUrl" binding:"omitempty,url"`
	Type       domain.EquipmentType `json:"type" binding:"omitempty,oneof=strength cardio"`
	CategoryID string               `json:"categoryId" binding:"required"`
}

func (r EquipmentRequest) input() service.EquipmentInput {
	return service.EquipmentInput{
		Name:       r.Name,
		ImageURL:   r.ImageURL,
		Info:       r.Info,
		VideoURL:   r.VideoURL,
		Type:       r.Type,
		CategoryID: r.CategoryID,
	}
}

// EquipmentResponse adds the embeddable player URL of VideoURL, if any.
type EquipmentResponse struct {
	domain.Equipment
	EmbedURL string `json:"embedUrl,omitempty"`
}

type CategoryDetailResponse struct {
	Category      domain.Category     `json:"category"`
	Equipment     []EquipmentResponse `json:"equipment"`
	AllCategories []domain.Category   `json:"allCategories"`
}

func MapEquipmentToResponse(e *domain.Equipment) EquipmentResponse {
	return EquipmentResponse{Equipment: *e, EmbedURL: domain.YouTubeEmbedURL(e.VideoURL)}
}

func MapEquipmentListToResponse(equipment []domain.Equipment) []EquipmentResponse {
	out := make([]EquipmentResponse, len(equipment))
	for i := range equipment {
		out[i] = MapEquipmentToResponse(&equipment[i])
	}
	return out
}

// --- Categories ---

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve categories")
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory returns the category page: the category, its equipment and
// the full category list for navigation.
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	detail, err := h.catalogService.GetCategoryDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve category")
		return
	}
	c.JSON(http.StatusOK, CategoryDetailResponse{
		Category:      *detail.Category,
		Equipment:     MapEquipmentListToResponse(detail.Equipment),
		AllCategories: detail.AllCategories,
	})
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	category, err := h.catalogService.CreateCategory(c.Request.Context(), service.CategoryInput{Name: req.Name, ImageURL: req.ImageURL})
	if err != nil {
		respondWithServiceError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	category, err := h.catalogService.UpdateCategory(c.Request.Context(), c.Param("id"), service.CategoryInput{Name: req.Name, ImageURL: req.ImageURL})
	if err != nil {
		respondWithServiceError(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.catalogService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondWithServiceError(c, err, "Failed to delete category")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Equipment ---

// ListEquipment godoc
// @Summary List equipment, optionally of one category
// @Param categoryId query string false "Category ID"
// @Router /equipment [get]
func (h *CatalogHandler) ListEquipment(c *gin.Context) {
	equipment, err := h.catalogService.ListEquipment(c.Request.Context(), c.Query("categoryId"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve equipment")
		return
	}
	c.JSON(http.StatusOK, MapEquipmentListToResponse(equipment))
}

func (h *CatalogHandler) GetEquipment(c *gin.Context) {
	equipment, err := h.catalogService.GetEquipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve equipment")
		return
	}
	c.JSON(http.StatusOK, MapEquipmentToResponse(equipment))
}

func (h *CatalogHandler) CreateEquipment(c *gin.Context) {
	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	equipment, err := h.catalogService.CreateEquipment(c.Request.Context(), req.input())
	if err != nil {
		respondWithServiceError(c, err, "Failed to create equipment")
		return
	}
	c.JSON(http.StatusCreated, MapEquipmentToResponse(equipment))
}

func (h *CatalogHandler) UpdateEquipment(c *gin.Context) {
	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	equipment, err := h.catalogService.UpdateEquipment(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		respondWithServiceError(c, err, "Failed to update equipment")
		return
	}
	c.JSON(http.StatusOK, MapEquipmentToResponse(equipment))
}

func (h *CatalogHandler) DeleteEquipment(c *gin.Context) {
	if err := h.catalogService.DeleteEquipment(c.Request.Context(), c.Param("id")); err != nil {
		respondWithServiceError(c, err, "Failed to delete equipment")
		return
	}
	c.Status(http.StatusNoContent)
}
