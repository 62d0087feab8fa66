package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-ai-backend/internal/handlers"
	"photo-ai-backend/internal/models"
	"photo-ai-backend/internal/store"
)

func setupImagesRouter(t *testing.T) (*gin.Engine, *store.Store) {
	gin.SetMode(gin.TestMode)
	st := store.New(setupTestDB(t))

	router := gin.New()
	router.Use(identityMiddleware(testUserID))
	router.GET("/image/bulk", handlers.NewImagesHandler(st).ListImages)
	return router, st
}

func seedImages(t *testing.T, st *store.Store, userID string, n int) []string {
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		image := &models.OutputImage{
			Prompt:       fmt.Sprintf("prompt %d", i),
			UserID:       userID,
			ModelID:      "model-1",
			FalRequestID: fmt.Sprintf("%s-req-%d", userID, i),
			Status:       models.StatusSubmitted,
		}
		require.NoError(t, st.CreateOutputImage(context.Background(), image))
		ids[i] = image.ID
	}
	return ids
}

func getImages(t *testing.T, router *gin.Engine, query string) models.ListImagesResponse {
	req, _ := http.NewRequest("GET", "/image/bulk"+query, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ListImagesResponse
	decodeBody(t, w, &resp)
	return resp
}

func TestListImages_OnlyCallersRows(t *testing.T) {
	router, st := setupImagesRouter(t)
	seedImages(t, st, testUserID, 3)
	seedImages(t, st, "someone-else", 2)

	resp := getImages(t, router, "")
	assert.Len(t, resp.Images, 3)
	for _, image := range resp.Images {
		assert.Equal(t, testUserID, image.UserID)
	}
}

func TestListImages_LimitAndOffset(t *testing.T) {
	router, st := setupImagesRouter(t)
	seedImages(t, st, testUserID, 25)

	resp := getImages(t, router, "?limit=20&offset=0")
	assert.Len(t, resp.Images, 20)

	resp = getImages(t, router, "?limit=20&offset=20")
	assert.Len(t, resp.Images, 5)

	// Defaults apply when no bounds are given.
	resp = getImages(t, router, "")
	assert.Len(t, resp.Images, store.DefaultPageSize)
}

func TestListImages_FilterByIDs(t *testing.T) {
	router, st := setupImagesRouter(t)
	ids := seedImages(t, st, testUserID, 4)

	resp := getImages(t, router, "?images="+ids[0]+"&images="+ids[2])
	assert.Len(t, resp.Images, 2)
}

func TestListImages_EmptyResultIsAnEmptyArray(t *testing.T) {
	router, _ := setupImagesRouter(t)

	req, _ := http.NewRequest("GET", "/image/bulk", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"images":[]`)
}
