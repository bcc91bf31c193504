package formatter

import (
	"bytes"
	"fmt"

	"github.com/unidoc/unioffice/document"

	"github.com/futig/mock-interview/internal/entity"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(r *entity.Report) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	heading(doc, "Heading1", baseTitle)
	text(doc, subtitle(r), false)

	if r.AverageScore != nil {
		labeled(doc, "Overall score", scoreText(*r.AverageScore))
	}
	if note := evaluationNote(r); note != "" {
		text(doc, note, false)
	}

	for _, item := range r.Items {
		heading(doc, "Heading2", fmt.Sprintf("Question %d", item.Number))
		text(doc, item.Question, false)
		labeled(doc, "Your answer", answerText(item.Answer))
		if item.FollowUp != "" {
			labeled(doc, "Follow-up", item.FollowUp)
			labeled(doc, "Your follow-up answer", answerText(item.FollowUpAnswer))
		}

		e := item.Evaluation
		if e == nil {
			continue
		}
		labeled(doc, "Sentiment", string(e.Sentiment))
		labeled(doc, "Score", scoreText(e.Score))
		bullets(doc, "Strengths", e.Strengths)
		bullets(doc, "Suggestions", e.Suggestions)
		labeled(doc, "Sample answer", e.SampleAnswer)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func heading(doc *document.Document, style, s string) {
	p := doc.AddParagraph()
	p.SetStyle(style)
	p.AddRun().AddText(s)
}

func text(doc *document.Document, s string, bold bool) {
	run := doc.AddParagraph().AddRun()
	run.Properties().SetBold(bold)
	run.AddText(s)
}

func labeled(doc *document.Document, label, value string) {
	p := doc.AddParagraph()
	l := p.AddRun()
	l.Properties().SetBold(true)
	l.AddText(label + ": ")
	p.AddRun().AddText(value)
}

func bullets(doc *document.Document, title string, items []string) {
	if len(items) == 0 {
		return
	}
	text(doc, title+":", true)
	for _, s := range items {
		doc.AddParagraph().AddRun().AddText("• " + s)
	}
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
