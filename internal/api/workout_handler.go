package api

import (
	"fmt"
	"net/http"

	"musclemania/gym-catalog/internal/domain"
	"musclemania/gym-catalog/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves the signed-in user's workout log.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

type SaveWorkoutRequest struct {
	EquipmentID string             `json:"equipmentId" binding:"required"`
	Sets        []service.SetEntry `json:"sets" binding:"required,min=1"`
}

type MachineHistoryResponse struct {
	Sessions    []domain.WorkoutSession `json:"sessions"`
	LastSession *domain.WorkoutSession  `json:"lastSession"`
}

// SaveWorkout stores one session. The user comes from the token, never the body.
func (h *WorkoutHandler) SaveWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	var req SaveWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.workoutService.SaveWorkoutSession(c.Request.Context(), userID, req.EquipmentID, req.Sets)
	if err != nil {
		respondWithServiceError(c, err, "Failed to save workout")
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	sessions, err := h.workoutService.ListWorkoutHistory(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve workout history")
		return
	}
	if sessions == nil {
		sessions = []domain.WorkoutSession{}
	}
	c.JSON(http.StatusOK, sessions)
}

// MachineHistory returns the user's sessions on the equipment in the path.
func (h *WorkoutHandler) MachineHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	history, err := h.workoutService.MachineHistory(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve machine history")
		return
	}
	c.JSON(http.StatusOK, MachineHistoryResponse{Sessions: history.Sessions, LastSession: history.LastSession})
}
