package formatter

import (
	"bytes"
	"fmt"

	"github.com/futig/mock-interview/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(r *entity.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n_%s_\n\n", baseTitle, subtitle(r))

	if r.AverageScore != nil {
		fmt.Fprintf(&buf, "**Overall score:** %s\n\n", scoreText(*r.AverageScore))
	}
	if note := evaluationNote(r); note != "" {
		fmt.Fprintf(&buf, "> %s\n\n", note)
	}

	for _, item := range r.Items {
		fmt.Fprintf(&buf, "## Question %d\n\n%s\n\n", item.Number, item.Question)
		fmt.Fprintf(&buf, "**Your answer:** %s\n\n", answerText(item.Answer))
		if item.FollowUp != "" {
			fmt.Fprintf(&buf, "**Follow-up:** %s\n\n", item.FollowUp)
			fmt.Fprintf(&buf, "**Your follow-up answer:** %s\n\n", answerText(item.FollowUpAnswer))
		}

		e := item.Evaluation
		if e == nil {
			continue
		}
		fmt.Fprintf(&buf, "**Sentiment:** %s  \n**Score:** %s\n\n", e.Sentiment, scoreText(e.Score))
		writeMarkdownList(&buf, "Strengths", e.Strengths)
		writeMarkdownList(&buf, "Suggestions", e.Suggestions)
		fmt.Fprintf(&buf, "**Sample answer:** %s\n\n", e.SampleAnswer)
	}

	return buf.Bytes(), nil
}

func writeMarkdownList(buf *bytes.Buffer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(buf, "**%s:**\n\n", title)
	for _, s := range items {
		fmt.Fprintf(buf, "- %s\n", s)
	}
	buf.WriteString("\n")
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
