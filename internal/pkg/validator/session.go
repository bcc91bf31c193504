package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/futig/mock-interview/internal/entity"
)

var AllowedAudioExtensions = map[string]bool{
	".wav":  true,
	".webm": true,
	".ogg":  true,
	".mp3":  true,
}

var allowedAudioContentTypes = map[string]bool{
	"audio/wav":                true,
	"audio/x-wav":              true,
	"audio/webm":               true,
	"audio/ogg":                true,
	"audio/mpeg":               true,
	"application/octet-stream": true,
}

// ValidateStartSession validates StartSessionRequest
func (v *Validator) ValidateStartSession(req *entity.StartSessionRequest) error {
	if strings.TrimSpace(req.JobRole) == "" {
		return fmt.Errorf("%w: jobRole", entity.ErrMissingField)
	}
	return v.ValidateStruct(req)
}

// ValidateInterviewConfig validates the resolved session configuration
func (v *Validator) ValidateInterviewConfig(cfg entity.InterviewConfig) error {
	if strings.TrimSpace(cfg.JobRole) == "" {
		return fmt.Errorf("%w: jobRole", entity.ErrMissingField)
	}
	return v.ValidateStruct(cfg)
}

func (v *Validator) ValidateSubmitTranscript(req *entity.SubmitTranscriptRequest) error {
	return v.ValidateStruct(req)
}

// ValidateAudioFile validates recorded answer uploads
func (v *Validator) ValidateAudioFile(file *multipart.FileHeader) error {
	if file == nil {
		return fmt.Errorf("%w: audio", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !AllowedAudioExtensions[ext] {
		return fmt.Errorf("%w: %s (allowed: wav, webm, ogg, mp3)", entity.ErrInvalidExtension, ext)
	}

	if file.Size > v.cfg.MaxAudioFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxAudioFileSize)
	}

	contentType := file.Header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if contentType != "" && !allowedAudioContentTypes[contentType] {
		return fmt.Errorf("%w: content type '%s'", entity.ErrInvalidExtension, contentType)
	}

	return nil
}

// SanitizeFilename sanitizes a filename before it is forwarded
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		" ", "_",
		"(", "",
		")", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
	)
	return replacer.Replace(filename)
}
