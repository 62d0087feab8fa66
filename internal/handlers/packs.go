package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photo-ai-backend/internal/models"
	"photo-ai-backend/internal/store"
)

type PacksHandler struct {
	store *store.Store
}

func NewPacksHandler(st *store.Store) *PacksHandler {
	return &PacksHandler{store: st}
}

// ListPacks returns the global prompt-pack catalog. Packs are read-only and
// shared between users.
func (h *PacksHandler) ListPacks(c *gin.Context) {
	packs, err := h.store.ListPacks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list packs",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.ListPacksResponse{Packs: packs})
}
