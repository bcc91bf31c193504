package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers session routes. modelLimit guards the routes
// that may call the model.
func RegisterRoutes(r chi.Router, h *Handler, modelLimit func(http.Handler) http.Handler) {
	r.Route("/sessions", func(r chi.Router) {
		r.With(modelLimit).Post("/", h.StartSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.CancelSession)
			r.Put("/answer", h.SetAnswer)
			r.With(modelLimit).Post("/advance", h.Advance)
			r.Post("/retry", h.Retry)

			r.Post("/transcription", h.SubmitTranscript)
			r.Post("/transcription/start", h.StartTranscription)
			r.Post("/transcription/stop", h.StopTranscription)
			r.With(modelLimit).Post("/transcription/audio", h.SubmitAudio)

			r.Get("/evaluation", h.GetEvaluation)
			r.With(modelLimit).Post("/evaluation/retry", h.RetryEvaluation)
			r.Get("/report", h.GetReport)
		})
	})
}
