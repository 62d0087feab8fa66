// Package handlers wires the HTTP surface: request validation, job
// submission to the generation queue, persistence, and the webhook routes
// that resolve pending rows.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"photo-ai-backend/internal/falai"
	"photo-ai-backend/internal/middleware"
	"photo-ai-backend/internal/models"
)

// GenerationQueue submits asynchronous jobs to the inference provider and
// returns the correlation handle rows are keyed by.
type GenerationQueue interface {
	SubmitTraining(ctx context.Context, zipURL, triggerWord string) (*falai.QueueSubmission, error)
	SubmitGeneration(ctx context.Context, prompt, loraPath string) (*falai.QueueSubmission, error)
}

func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return "", false
	}
	userID, ok := v.(string)
	return userID, ok && userID != ""
}

// respondIncorrectInputs answers validation failures with the legacy
// 411/"Incorrect Inputs" contract existing clients depend on.
func respondIncorrectInputs(c *gin.Context) {
	c.JSON(http.StatusLengthRequired, models.MessageResponse{Message: "Incorrect Inputs"})
}
