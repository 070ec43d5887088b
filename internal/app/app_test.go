package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctr-optimizer/shared/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:  config.ServerConfig{Port: 0, CORSOrigins: []string{"*"}},
		AI:      config.AIConfig{GeminiModel: "gemini-1.5-flash", OpenAIModel: "gpt-5-mini"},
		Storage: config.StorageConfig{Backend: "file", Dir: t.TempDir()},
		Logging: config.LoggingConfig{Level: "info"},
	}
}

func TestNewWithoutCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	h := a.server.Handler()

	w := httptest.NewRecorder()
	body := `{"formData":{"idea":"Uma carta perdida há 30 anos","niche":"Entretenimento","subniche":"História"}}`
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LOCAL", resp["provider"])
	assert.Equal(t, "missing_gemini_key", resp["mode"])

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/snapshot", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/snapshot", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"empty"`)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRefreshOnceRequiresYouTubeKey(t *testing.T) {
	a, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.ErrorIs(t, a.RefreshOnce(context.Background()), ErrYouTubeNotConfigured)
}

func TestRefreshOnceRejectsMemoryStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage = config.StorageConfig{Backend: "memory", MemoryMB: 8}
	cfg.YouTube.APIKey = "test-key"

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.ErrorIs(t, a.RefreshOnce(context.Background()), ErrEphemeralStore)
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Backend = "s3"
	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Port = 0
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("app did not stop")
	}
}
