package proxy

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the stateless model routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/gemini-proxy", h.GeminiProxy)
	r.Post("/generate-question", h.GenerateQuestion)
	r.Post("/evaluate-answer", h.EvaluateAnswer)
}
