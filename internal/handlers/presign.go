package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"photo-ai-backend/internal/models"
	"photo-ai-backend/internal/storage"
)

// UploadURLSigner issues pre-signed write URLs for training archives.
type UploadURLSigner interface {
	PresignedUploadURL(ctx context.Context) (*storage.UploadTarget, error)
}

type PresignHandler struct {
	signer UploadURLSigner
}

func NewPresignHandler(signer UploadURLSigner) *PresignHandler {
	return &PresignHandler{signer: signer}
}

// GetPresignedURL returns a time-bounded PUT URL plus the object key the
// client should reference in the subsequent training request.
func (h *PresignHandler) GetPresignedURL(c *gin.Context) {
	target, err := h.signer.PresignedUploadURL(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create upload url",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.PresignedURLResponse{
		URL: target.URL,
		Key: target.Key,
	})
}
