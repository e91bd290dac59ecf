package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"interview-ai/internal/api/middleware"
	"interview-ai/internal/api/v1/routes"
	"interview-ai/internal/app/testutil"
)

// prefixes are the two mount points the server registers the v1 routes on
var prefixes = []string{"/api/v1", "/ai/v1"}

func setupTestRouter(t *testing.T) (*gin.Engine, *testutil.MockServices) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())

	mockServices := testutil.NewMockServices(t)
	container := &routes.ServiceContainer{
		STTService:      mockServices.STTService,
		FeedbackService: mockServices.FeedbackService,
	}
	for _, prefix := range prefixes {
		routes.RegisterRoutes(router.Group(prefix), container)
	}
	return router, mockServices
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
