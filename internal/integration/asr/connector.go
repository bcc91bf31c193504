package asr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/mock-interview/internal/config"
	"github.com/futig/mock-interview/internal/entity"
	"github.com/futig/mock-interview/internal/integration/common"
	pkgRetry "github.com/futig/mock-interview/internal/pkg/retry"
	pkghttp "github.com/futig/mock-interview/pkg/http"
)

type Connector struct {
	config    config.ASRConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.ASRConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// TranscribeBytes uploads a recorded answer and returns its transcription.
// Network failures and 429/5xx replies are retried.
func (c *Connector) TranscribeBytes(ctx context.Context, audioData []byte, filename string) (string, error) {
	if len(audioData) == 0 {
		return "", fmt.Errorf("%w: empty audio data provided", entity.ErrInvalidFile)
	}

	hash := sha256.Sum256(audioData)
	checksum := hex.EncodeToString(hash[:])

	ctxzap.Info(ctx, "transcribing audio via ASR service",
		zap.String("filename", filename),
		zap.String("checksum", checksum),
		zap.Int("size", len(audioData)),
	)

	prepareBody := func(writer *multipart.Writer) error {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}

		if _, err := part.Write(audioData); err != nil {
			return fmt.Errorf("write file content: %w", err)
		}

		if err := writer.WriteField("checksum", checksum); err != nil {
			return fmt.Errorf("write checksum field: %w", err)
		}

		return nil
	}

	transcribe := func() (string, error) {
		var resp entity.ASRTranscribeResponse
		err := c.connector.DoMultipartRequest(ctx, http.MethodPost, c.config.TranscribeEndpoint, prepareBody, &resp)
		if err != nil {
			if !pkghttp.IsTemporary(err) {
				return "", pkgRetry.Unrecoverable(err)
			}
			return "", err
		}
		return strings.TrimSpace(resp.Transcription), nil
	}

	text, err := pkgRetry.Do(ctx, c.config.Retry, transcribe, func(n uint, err error) {
		ctxzap.Warn(ctx, "ASR request failed, retrying", zap.Uint("attempt", n+1), zap.Error(err))
	})
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}

	ctxzap.Info(ctx, "audio transcribed successfully", zap.Int("transcription_length", len(text)))

	return text, nil
}
