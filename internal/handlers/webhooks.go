package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"photo-ai-backend/internal/models"
	"photo-ai-backend/internal/store"
)

// WebhookHandler receives the provider's completion callbacks. Deliveries
// may arrive more than once and in any order; updates correlate on the job's
// request id and only touch rows still in the submitted state, so a
// redelivery (or an unknown id) matches zero rows and is acknowledged as
// success either way.
type WebhookHandler struct {
	store *store.Store
	token string
}

func NewWebhookHandler(st *store.Store, token string) *WebhookHandler {
	return &WebhookHandler{
		store: st,
		token: token,
	}
}

// HandleTrainWebhook resolves a training job: matching submitted models move
// to completed with the delivered weights path, or to failed on an error
// payload.
func (h *WebhookHandler) HandleTrainWebhook(c *gin.Context) {
	if !h.authorized(c) {
		return
	}

	var req models.TrainWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid webhook payload",
			Message: err.Error(),
		})
		return
	}

	// A success payload without a weights path can never serve generation;
	// failing the job beats stranding it as completed-but-unusable.
	var affected int64
	var err error
	if req.Failed() || req.TensorPath == "" {
		affected, err = h.store.FailTrainingByRequestID(c.Request.Context(), req.RequestID)
	} else {
		affected, err = h.store.CompleteTrainingByRequestID(c.Request.Context(), req.RequestID, req.TensorPath)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update model",
			Message: err.Error(),
		})
		return
	}

	log.Printf("train webhook: request_id=%s updated %d row(s)", req.RequestID, affected)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "webhook received"})
}

// HandleImageWebhook resolves a generation job the same way, storing the
// delivered image URL.
func (h *WebhookHandler) HandleImageWebhook(c *gin.Context) {
	if !h.authorized(c) {
		return
	}

	var req models.ImageWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid webhook payload",
			Message: err.Error(),
		})
		return
	}

	var affected int64
	var err error
	if req.Failed() {
		affected, err = h.store.FailImageByRequestID(c.Request.Context(), req.RequestID)
	} else {
		affected, err = h.store.CompleteImageByRequestID(c.Request.Context(), req.RequestID, req.ImageURL)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update image",
			Message: err.Error(),
		})
		return
	}

	log.Printf("image webhook: request_id=%s updated %d row(s)", req.RequestID, affected)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "webhook received"})
}

// authorized checks the shared webhook token when one is configured.
func (h *WebhookHandler) authorized(c *gin.Context) bool {
	if h.token == "" {
		return true
	}

	token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	if token != h.token {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid webhook token"})
		return false
	}
	return true
}
