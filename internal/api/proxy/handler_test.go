package proxy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsecase struct {
	err error
}

func (s stubUsecase) Complete(_ context.Context, prompt string) (string, error) {
	return "echo: " + prompt, s.err
}

func (s stubUsecase) GenerateQuestion(_ context.Context, topic, difficulty string) (string, error) {
	return topic + "/" + difficulty, s.err
}

func (s stubUsecase) ReviewAnswer(_ context.Context, question, answer string) (string, error) {
	return "7/10", s.err
}

func newRouter(uc ProxyUsecase) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		RegisterRoutes(r, NewHandler(uc))
	})
	return r
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		uc         ProxyUsecase
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "proxy ok",
			uc:         stubUsecase{},
			path:       "/api/gemini-proxy",
			body:       `{"prompt":"hi"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"result":"echo: hi"}`,
		},
		{
			name:       "proxy without prompt",
			uc:         stubUsecase{},
			path:       "/api/gemini-proxy",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Prompt is required"}`,
		},
		{
			name:       "proxy model failure",
			uc:         stubUsecase{err: errors.New("down")},
			path:       "/api/gemini-proxy",
			body:       `{"prompt":"hi"}`,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to process Gemini request"}`,
		},
		{
			name:       "generate question ok",
			uc:         stubUsecase{},
			path:       "/api/generate-question",
			body:       `{"topic":"go","difficulty":"easy"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"question":"go/easy"}`,
		},
		{
			name:       "generate question failure",
			uc:         stubUsecase{err: errors.New("down")},
			path:       "/api/generate-question",
			body:       `{"topic":"go","difficulty":"easy"}`,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to generate question"}`,
		},
		{
			name:       "evaluate answer ok",
			uc:         stubUsecase{},
			path:       "/api/evaluate-answer",
			body:       `{"question":"q","answer":"a"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"evaluation":"7/10"}`,
		},
		{
			name:       "evaluate answer failure",
			uc:         stubUsecase{err: errors.New("down")},
			path:       "/api/evaluate-answer",
			body:       `{"question":"q","answer":"a"}`,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to evaluate answer"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			newRouter(tt.uc).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
