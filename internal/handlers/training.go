package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photo-ai-backend/internal/models"
	"photo-ai-backend/internal/store"
)

type TrainingHandler struct {
	queue GenerationQueue
	store *store.Store
}

func NewTrainingHandler(queue GenerationQueue, st *store.Store) *TrainingHandler {
	return &TrainingHandler{
		queue: queue,
		store: st,
	}
}

// Train validates the request, enqueues a LoRA training job and persists a
// submitted Model row keyed by the returned job id. The row stays submitted
// until the training webhook resolves the weights path.
func (h *TrainingHandler) Train(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.TrainModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondIncorrectInputs(c)
		return
	}

	submission, err := h.queue.SubmitTraining(c.Request.Context(), req.ArchiveURL(), req.Name)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "failed to submit training job",
			Message: err.Error(),
		})
		return
	}

	model := &models.Model{
		Name:         req.Name,
		Type:         req.Type,
		Age:          req.Age,
		Ethnicity:    req.Ethnicity,
		EyeColor:     req.EyeColor,
		Bald:         *req.Bald,
		UserID:       userID,
		ZipURL:       req.ArchiveURL(),
		FalRequestID: submission.RequestID,
		Status:       models.StatusSubmitted,
	}
	if err := h.store.CreateModel(c.Request.Context(), model); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to persist model",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.TrainModelResponse{ModelID: model.ID})
}
