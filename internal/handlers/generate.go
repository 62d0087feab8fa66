package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"photo-ai-backend/internal/falai"
	"photo-ai-backend/internal/models"
	"photo-ai-backend/internal/store"
)

type GenerateHandler struct {
	queue GenerationQueue
	store *store.Store
}

func NewGenerateHandler(queue GenerationQueue, st *store.Store) *GenerateHandler {
	return &GenerateHandler{
		queue: queue,
		store: st,
	}
}

// Generate submits a single image-generation job against a trained model and
// persists a submitted OutputImage row correlated to the job id.
func (h *GenerateHandler) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondIncorrectInputs(c)
		return
	}

	model, err := h.trainedModel(c, req.ModelID, userID)
	if err != nil {
		return
	}

	submission, err := h.queue.SubmitGeneration(c.Request.Context(), req.Prompt, model.TensorPath)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "failed to submit generation job",
			Message: err.Error(),
		})
		return
	}

	image := &models.OutputImage{
		Prompt:       req.Prompt,
		UserID:       userID,
		ModelID:      model.ID,
		FalRequestID: submission.RequestID,
		Status:       models.StatusSubmitted,
	}
	if err := h.store.CreateOutputImage(c.Request.Context(), image); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to persist image",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.GenerateImageResponse{ImageID: image.ID})
}

// GenerateFromPack fans out one generation job per pack prompt. Jobs are
// submitted concurrently; if any submission fails the whole batch is
// rejected and nothing is persisted, so the positional prompt-to-job pairing
// of a successful batch is always trustworthy.
func (h *GenerateHandler) GenerateFromPack(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.GenerateFromPackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondIncorrectInputs(c)
		return
	}

	model, err := h.trainedModel(c, req.ModelID, userID)
	if err != nil {
		return
	}

	prompts, err := h.store.ListPackPrompts(c.Request.Context(), req.PackID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load pack prompts",
			Message: err.Error(),
		})
		return
	}
	if len(prompts) == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "pack not found"})
		return
	}

	submissions := make([]*falai.QueueSubmission, len(prompts))
	g, gctx := errgroup.WithContext(c.Request.Context())
	for i, prompt := range prompts {
		g.Go(func() error {
			submission, err := h.queue.SubmitGeneration(gctx, prompt.Prompt, model.TensorPath)
			if err != nil {
				return err
			}
			submissions[i] = submission
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "failed to submit generation jobs",
			Message: err.Error(),
		})
		return
	}

	images := make([]*models.OutputImage, len(prompts))
	for i, prompt := range prompts {
		images[i] = &models.OutputImage{
			Prompt:       prompt.Prompt,
			UserID:       userID,
			ModelID:      model.ID,
			FalRequestID: submissions[i].RequestID,
			Status:       models.StatusSubmitted,
		}
	}
	if err := h.store.CreateOutputImages(c.Request.Context(), images); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to persist images",
			Message: err.Error(),
		})
		return
	}

	ids := make([]string, len(images))
	for i, image := range images {
		ids[i] = image.ID
	}
	c.JSON(http.StatusOK, models.GenerateFromPackResponse{Images: ids})
}

// trainedModel loads the caller's model and requires a resolved weights
// path. On failure it writes the error response and returns a nil model.
func (h *GenerateHandler) trainedModel(c *gin.Context, modelID, userID string) (*models.Model, error) {
	model, err := h.store.GetModelByIDAndUser(c.Request.Context(), modelID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "model not found"})
			return nil, err
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load model",
			Message: err.Error(),
		})
		return nil, err
	}
	if model.TensorPath == "" {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "model not trained yet"})
		return nil, gorm.ErrRecordNotFound
	}
	return model, nil
}
