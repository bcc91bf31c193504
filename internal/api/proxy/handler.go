package proxy

import (
	"encoding/json"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/mock-interview/internal/entity"
	"github.com/futig/mock-interview/internal/pkg/logger"
	"github.com/futig/mock-interview/internal/pkg/response"
)

// Error bodies of these routes are part of their public contract.
const (
	errPromptRequired   = "Prompt is required"
	errProxyFailed      = "Failed to process Gemini request"
	errGenerateQuestion = "Failed to generate question"
	errEvaluateAnswer   = "Failed to evaluate answer"
	errInvalidBody      = "Invalid request body"
)

type Handler struct {
	usecase ProxyUsecase
}

func NewHandler(usecase ProxyUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// GeminiProxy handles POST /api/gemini-proxy
func (h *Handler) GeminiProxy(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GeminiProxy")

	var req entity.GeminiProxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
		ctxzap.Warn(ctx, "prompt missing from request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, errPromptRequired)
		return
	}

	result, err := h.usecase.Complete(ctx, req.Prompt)
	if err != nil {
		ctxzap.Error(ctx, "gemini proxy request failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, errProxyFailed)
		return
	}

	response.Success(w, entity.GeminiProxyResponse{Result: result})
}

// GenerateQuestion handles POST /api/generate-question
func (h *Handler) GenerateQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateQuestion")

	var req entity.GenerateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Warn(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	question, err := h.usecase.GenerateQuestion(ctx, req.Topic, req.Difficulty)
	if err != nil {
		ctxzap.Error(ctx, "question generation failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, errGenerateQuestion)
		return
	}

	response.Success(w, entity.GenerateQuestionResponse{Question: question})
}

// EvaluateAnswer handles POST /api/evaluate-answer
func (h *Handler) EvaluateAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "EvaluateAnswer")

	var req entity.EvaluateAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Warn(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	evaluation, err := h.usecase.ReviewAnswer(ctx, req.Question, req.Answer)
	if err != nil {
		ctxzap.Error(ctx, "answer review failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, errEvaluateAnswer)
		return
	}

	response.Success(w, entity.EvaluateAnswerResponse{Evaluation: evaluation})
}
