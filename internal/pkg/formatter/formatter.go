package formatter

import (
	"fmt"
	"strings"

	"github.com/futig/mock-interview/internal/entity"
)

const (
	baseTitle    = "Interview Report"
	baseFilename = "interview-report"
	noAnswer     = "(no answer)"
)

type Formatter interface {
	Format(report *entity.Report) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatJSON:
		return NewJSONFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format: %s", entity.ErrInvalidFormat, format)
	}
}

// Filename is the download name for a report rendered by f.
func Filename(f Formatter) string {
	return baseFilename + f.FileExtension()
}

func subtitle(r *entity.Report) string {
	return fmt.Sprintf("%s interview for %s", r.InterviewType, r.JobRole)
}

func answerText(s string) string {
	if strings.TrimSpace(s) == "" {
		return noAnswer
	}
	return s
}

func scoreText(score float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", score), "0"), ".") + "/10"
}

func evaluationNote(r *entity.Report) string {
	switch r.EvaluationStatus {
	case entity.EvaluationDone:
		return ""
	case entity.EvaluationFailed:
		return "Answer evaluation failed. Scores are not available."
	default:
		return "Answer evaluation is not finished yet."
	}
}
