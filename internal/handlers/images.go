package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photo-ai-backend/internal/models"
	"photo-ai-backend/internal/store"
)

type ImagesHandler struct {
	store *store.Store
}

func NewImagesHandler(st *store.Store) *ImagesHandler {
	return &ImagesHandler{store: st}
}

// ListImages returns a page of the caller's output images. Rows belonging to
// other users are never returned; limit and offset are clamped by the store.
func (h *ImagesHandler) ListImages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var query models.ListImagesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondIncorrectInputs(c)
		return
	}

	images, err := h.store.ListImagesByUser(c.Request.Context(), userID, query.Images, query.Limit, query.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list images",
			Message: err.Error(),
		})
		return
	}
	if images == nil {
		images = []models.OutputImage{}
	}

	c.JSON(http.StatusOK, models.ListImagesResponse{Images: images})
}
