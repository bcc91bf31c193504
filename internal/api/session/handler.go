package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/mock-interview/internal/entity"
	"github.com/futig/mock-interview/internal/pkg/formatter"
	"github.com/futig/mock-interview/internal/pkg/logger"
	"github.com/futig/mock-interview/internal/pkg/response"
	"github.com/futig/mock-interview/internal/pkg/validator"
)

type Handler struct {
	usecase       InterviewUsecase
	validator     *validator.Validator
	formatters    *formatter.Factory
	maxUploadSize int64
}

func NewHandler(
	usecase InterviewUsecase,
	validator *validator.Validator,
	formatters *formatter.Factory,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		usecase:       usecase,
		validator:     validator,
		formatters:    formatters,
		maxUploadSize: maxUploadSize,
	}
}

func sessionContext(r *http.Request, action string) (context.Context, string) {
	id := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", id),
		zap.String("action", action),
	)
	return ctx, id
}

// StartSession handles POST /api/sessions
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartSession")

	var req entity.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateStartSession(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	cfg := toInterviewConfig(&req)
	ctxzap.Info(ctx, "starting interview session",
		zap.String("job_role", cfg.JobRole),
		zap.String("interview_type", string(cfg.InterviewType)),
		zap.Int("num_questions", cfg.NumQuestions),
	)

	s, err := h.usecase.StartSession(ctx, cfg)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, toSessionDTO(s))
}

// GetSession handles GET /api/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, id := sessionContext(r, "GetSession")

	s, err := h.usecase.GetSession(ctx, id)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(s))
}

// SetAnswer handles PUT /api/sessions/{id}/answer
func (h *Handler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	ctx, id := sessionContext(r, "SetAnswer")

	var req entity.SetAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	s, err := h.usecase.SetAnswer(ctx, id, req.Text)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(s))
}

// Advance handles POST /api/sessions/{id}/advance
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	ctx, id := sessionContext(r, "Advance")

	s, err := h.usecase.Advance(ctx, id)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(s))
}

// Retry handles POST /api/sessions/{id}/retry
func (h *Handler) Retry(w http.ResponseWriter, r *http.Request) {
	ctx, id := sessionContext(r, "Retry")

	s, err := h.usecase.Retry(ctx, id)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(s))
}

// CancelSession handles DELETE /api/sessions/{id}
func (h *Handler) CancelSession(w http.ResponseWriter, r *http.Request) {
	ctx, id := sessionContext(r, "CancelSession")

	if err := h.usecase.CancelSession(ctx, id); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// StartTranscription handles POST /api/sessions/{id}/transcription/start
func (h *Handler) StartTranscription(w http.ResponseWriter, r *http.Request) {
	ctx, id := sessionContext(r, "StartTranscription")

	s, err := h.usecase.StartTranscription(ctx, id)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(s))
}

// StopTranscription handles POST /api/sessions/{id}/transcription/stop
func (h *Handler) StopTranscription(w http.ResponseWriter, r *http.Request) {
	ctx, id := sessionContext(r, "StopTranscription")

	s, err := h.usecase.StopTranscription(ctx, id)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(s))
}

// SubmitTranscript handles POST /api/sessions/{id}/transcription
func (h *Handler) SubmitTranscript(w http.ResponseWriter, r *http.Request) {
	ctx, id := sessionContext(r, "SubmitTranscript")

	var req entity.SubmitTranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validator.ValidateSubmitTranscript(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	s, delivered, err := h.usecase.SubmitTranscript(ctx, id, req.Generation, req.Text)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.TranscriptResultDTO{Delivered: delivered, Session: toSessionDTO(s)})
}

// SubmitAudio handles POST /api/sessions/{id}/transcription/audio
func (h *Handler) SubmitAudio(w http.ResponseWriter, r *http.Request) {
	ctx, id := sessionContext(r, "SubmitAudio")

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "failed to parse multipart form", err)
		return
	}

	req, err := parseAudioRequest(r)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := h.validator.ValidateAudioFile(req.AudioFile); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	audio, err := readUpload(req)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "failed to read audio file", err)
		return
	}

	ctxzap.Info(ctx, "transcribing audio answer",
		zap.String("filename", req.AudioFile.Filename),
		zap.Int64("size", req.AudioFile.Size),
	)

	s, delivered, err := h.usecase.SubmitAudio(ctx, id, req.Generation, audio, validator.SanitizeFilename(req.AudioFile.Filename))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.TranscriptResultDTO{Delivered: delivered, Session: toSessionDTO(s)})
}

func parseAudioRequest(r *http.Request) (*entity.SubmitAudioRequest, error) {
	generation, err := strconv.ParseUint(r.FormValue("generation"), 10, 64)
	if err != nil || generation == 0 {
		return nil, fmt.Errorf("%w: generation", entity.ErrInvalidParameter)
	}

	_, header, err := r.FormFile("audio")
	if err != nil {
		return nil, fmt.Errorf("%w: audio", entity.ErrMissingField)
	}

	return &entity.SubmitAudioRequest{Generation: generation, AudioFile: header}, nil
}

func readUpload(req *entity.SubmitAudioRequest) ([]byte, error) {
	f, err := req.AudioFile.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// GetEvaluation handles GET /api/sessions/{id}/evaluation
func (h *Handler) GetEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx, id := sessionContext(r, "GetEvaluation")

	state, err := h.usecase.GetEvaluation(ctx, id)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toEvaluationDTO(id, state))
}

// RetryEvaluation handles POST /api/sessions/{id}/evaluation/retry
func (h *Handler) RetryEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx, id := sessionContext(r, "RetryEvaluation")

	state, err := h.usecase.RetryEvaluation(ctx, id)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toEvaluationDTO(id, state))
}

// GetReport handles GET /api/sessions/{id}/report
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx, id := sessionContext(r, "GetReport")

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatPDF)
	}

	format := entity.ResultFormat(formatParam)
	if !format.IsValid() {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid format parameter",
			fmt.Errorf("format must be one of: pdf, docx, markdown, json"))
		return
	}

	ctx = logger.AddFields(ctx, zap.String("format", string(format)))

	report, err := h.usecase.GetReport(ctx, id)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	fmtr, err := h.formatters.Create(format)
	if err != nil {
		h.respondError(ctx, w, http.StatusNotImplemented, "format not implemented", err)
		return
	}

	body, err := fmtr.Format(report)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to format report", err)
		return
	}

	ctxzap.Info(ctx, "report rendered", zap.Int("size", len(body)))
	response.Attachment(w, fmtr.ContentType(), formatter.Filename(fmtr), body)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Error(err))
	}
	response.ErrorWithCode(w, status, http.StatusText(status), "", message+": "+err.Error())
}

func (h *Handler) respondCode(ctx context.Context, w http.ResponseWriter, status int, code string, err error) {
	ctxzap.Warn(ctx, "request failed", zap.String("code", code), zap.Error(err))
	response.ErrorWithCode(w, status, http.StatusText(status), code, err.Error())
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		h.respondCode(ctx, w, http.StatusNotFound, "session_not_found", err)
	case errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrInvalidFormat) || errors.Is(err, entity.ErrMissingField):
		h.respondCode(ctx, w, http.StatusBadRequest, "invalid_parameter", err)
	case errors.Is(err, entity.ErrInvalidExtension) || errors.Is(err, entity.ErrFileTooLarge) || errors.Is(err, entity.ErrInvalidFile):
		h.respondCode(ctx, w, http.StatusBadRequest, "invalid_file", err)
	case errors.Is(err, entity.ErrAnswerRequired):
		h.respondCode(ctx, w, http.StatusUnprocessableEntity, "answer_required", err)
	case errors.Is(err, entity.ErrStalePosition):
		h.respondCode(ctx, w, http.StatusConflict, "stale_position", err)
	case errors.Is(err, entity.ErrSessionNotActive) || errors.Is(err, entity.ErrSessionClosed) || errors.Is(err, entity.ErrSessionNotFinished):
		h.respondCode(ctx, w, http.StatusConflict, "invalid_session_state", err)
	case errors.Is(err, entity.ErrEvaluationNotReady) || errors.Is(err, entity.ErrEvaluationRunning) || errors.Is(err, entity.ErrEvaluationCompleted):
		h.respondCode(ctx, w, http.StatusConflict, "invalid_evaluation_state", err)
	case errors.Is(err, entity.ErrTranscriptionUnavailable) || errors.Is(err, entity.ErrTranscriptionInactive):
		h.respondCode(ctx, w, http.StatusConflict, "transcription_unavailable", err)
	case errors.Is(err, entity.ErrMalformedModelOutput):
		h.respondCode(ctx, w, http.StatusBadGateway, "malformed_model_output", err)
	case errors.Is(err, entity.ErrModelCallFailed) || errors.Is(err, entity.ErrMissingAPIKey):
		h.respondCode(ctx, w, http.StatusBadGateway, "model_call_failed", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
