package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"photo-ai-backend/internal/falai"
	"photo-ai-backend/internal/middleware"
	"photo-ai-backend/internal/models"
	"photo-ai-backend/internal/store"
)

const testUserID = "user-123"

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Model{}, &models.OutputImage{}, &models.Pack{}, &models.PackPrompt{})
	require.NoError(t, err)

	return db
}

// identityMiddleware stands in for the JWT middleware in handler tests.
func identityMiddleware(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

// stubQueue is an in-memory GenerationQueue. Request ids are derived from
// the submitted input so tests can assert prompt-to-job correlation.
type stubQueue struct {
	mu          sync.Mutex
	trainings   int
	generations int

	// failPrompt makes SubmitGeneration fail for that prompt.
	failPrompt string
	// err makes every submission fail.
	err error
}

func (q *stubQueue) SubmitTraining(ctx context.Context, zipURL, triggerWord string) (*falai.QueueSubmission, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.trainings++
	return &falai.QueueSubmission{RequestID: fmt.Sprintf("train-req-%d", q.trainings)}, nil
}

func (q *stubQueue) SubmitGeneration(ctx context.Context, prompt, loraPath string) (*falai.QueueSubmission, error) {
	if q.err != nil {
		return nil, q.err
	}
	if q.failPrompt != "" && prompt == q.failPrompt {
		return nil, fmt.Errorf("provider rejected prompt %q", prompt)
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.generations++
	return &falai.QueueSubmission{RequestID: "req-" + prompt}, nil
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	jsonData, err := json.Marshal(body)
	require.NoError(t, err)

	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func createTrainedModel(t *testing.T, st *store.Store, userID string) *models.Model {
	model := &models.Model{
		Name:         "Jane",
		Type:         "Woman",
		Age:          25,
		Ethnicity:    "White",
		EyeColor:     "Blue",
		UserID:       userID,
		ZipURL:       "https://storage.test/models/jane.zip",
		FalRequestID: "train-req-done",
		Status:       models.StatusCompleted,
		TensorPath:   "loras/jane.safetensors",
	}
	require.NoError(t, st.CreateModel(context.Background(), model))
	return model
}
