package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/futig/mock-interview/internal/api/middleware"
	proxyapi "github.com/futig/mock-interview/internal/api/proxy"
	sessionapi "github.com/futig/mock-interview/internal/api/session"
	"github.com/futig/mock-interview/internal/config"
	"github.com/futig/mock-interview/internal/integration/llm"
	engine "github.com/futig/mock-interview/internal/interview"
	"github.com/futig/mock-interview/internal/pkg/formatter"
	"github.com/futig/mock-interview/internal/pkg/validator"
	"github.com/futig/mock-interview/internal/usecase/interview"
	"github.com/futig/mock-interview/internal/usecase/proxy"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	completer := llm.NewMockConnector(zap.NewNop())
	v := validator.New(config.FileUploadConfig{MaxAudioFileSize: 1 << 20, MaxUploadSize: 2 << 20})
	uc := interview.NewUsecase(completer, engine.ClientRecognizer{}, v,
		config.SessionConfig{TTL: time.Hour, CleanupInterval: time.Hour, EvaluationTimeout: time.Second},
		zap.NewNop())
	t.Cleanup(uc.Close)

	return SetupRouter(
		proxyapi.NewHandler(proxy.NewUsecase(completer)),
		sessionapi.NewHandler(uc, v, formatter.NewFactory(), 2<<20),
		middleware.NewRateLimiter(60),
		zap.NewNop(),
	)
}

func TestRouter(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodOptions, "/api/gemini-proxy", http.StatusNoContent},
		{http.MethodGet, "/api/sessions/unknown", http.StatusNotFound},
		{http.MethodGet, "/docs", http.StatusFound},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil).WithContext(context.Background())
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
