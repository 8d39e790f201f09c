package api

import (
	"fmt"
	"net/http"

	"musclemania/gym-catalog/internal/service"

	"github.com/gin-gonic/gin"
)

// GenerateHandler exposes the admin content generation tools.
type GenerateHandler struct {
	generationService service.GenerationService
}

func NewGenerateHandler(generationService service.GenerationService) *GenerateHandler {
	return &GenerateHandler{generationService: generationService}
}

type EquipmentInfoRequest struct {
	EquipmentName string `json:"equipmentName" binding:"required"`
}

type ImagePromptRequest struct {
	EquipmentName        string `json:"equipmentName" binding:"required"`
	CharacterDescription string `json:"characterDescription"`
}

type EquipmentImageRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

func (h *GenerateHandler) EquipmentInfo(c *gin.Context) {
	var req EquipmentInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	info, err := h.generationService.GenerateEquipmentInfo(c.Request.Context(), req.EquipmentName)
	if err != nil {
		respondWithServiceError(c, err, "Failed to generate information. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"info": info})
}

func (h *GenerateHandler) ImagePrompt(c *gin.Context) {
	var req ImagePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompt": h.generationService.BuildImagePrompt(req.EquipmentName, req.CharacterDescription)})
}

func (h *GenerateHandler) EquipmentImage(c *gin.Context) {
	var req EquipmentImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	url, err := h.generationService.GenerateEquipmentImage(c.Request.Context(), req.Prompt)
	if err != nil {
		respondWithServiceError(c, err, "Failed to generate image. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}
