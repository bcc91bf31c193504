package formatter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/futig/mock-interview/internal/entity"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// In Docker runtime fonts are copied next to the binary.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source-relative path (useful when running from repo root with `go run`).
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath tries to find the DejaVuSans font in
// runtime layout (next to the binary) or source layout.
func resolveFontPath() string {
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}
	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}
	return ""
}

type pdfWriter struct {
	pdf  *gofpdf.Fpdf
	font string
	tr   func(string) string
}

func (w *pdfWriter) line(style string, size float64, s string) {
	w.pdf.SetFont(w.font, style, size)
	_, h := w.pdf.GetFontSize()
	w.pdf.MultiCell(0, h*1.5, w.tr(s), "", "", false)
}

func (w *pdfWriter) labeled(label, value string) {
	w.line("B", 11, label)
	w.line("", 11, value)
	w.pdf.Ln(1)
}

func (w *pdfWriter) list(title string, items []string) {
	if len(items) == 0 {
		return
	}
	w.line("B", 11, title)
	for _, s := range items {
		w.line("", 11, "- "+s)
	}
	w.pdf.Ln(1)
}

func (mf *PDFFormatter) Format(r *entity.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(baseTitle, true)
	pdf.AddPage()

	w := &pdfWriter{pdf: pdf, font: "Arial", tr: func(s string) string { return s }}
	if fontPath := resolveFontPath(); fontPath != "" {
		// Register regular and bold styles under the same family name
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		w.font = pdfFontName
	} else {
		w.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}

	w.line("B", 20, baseTitle)
	w.line("", 12, subtitle(r))
	pdf.Ln(4)

	if r.AverageScore != nil {
		w.labeled("Overall score", scoreText(*r.AverageScore))
	}
	if note := evaluationNote(r); note != "" {
		w.line("", 11, note)
		pdf.Ln(2)
	}

	for _, item := range r.Items {
		w.line("B", 14, fmt.Sprintf("Question %d", item.Number))
		w.line("", 12, item.Question)
		pdf.Ln(2)
		w.labeled("Your answer", answerText(item.Answer))
		if item.FollowUp != "" {
			w.labeled("Follow-up", item.FollowUp)
			w.labeled("Your follow-up answer", answerText(item.FollowUpAnswer))
		}

		if e := item.Evaluation; e != nil {
			w.labeled("Sentiment", string(e.Sentiment))
			w.labeled("Score", scoreText(e.Score))
			w.list("Strengths", e.Strengths)
			w.list("Suggestions", e.Suggestions)
			w.labeled("Sample answer", e.SampleAnswer)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
