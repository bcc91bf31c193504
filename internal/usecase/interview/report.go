package interview

import (
	"context"
	"time"

	"github.com/futig/mock-interview/internal/entity"
)

// GetReport assembles the printable outcome of a finished session. The
// report is available before evaluation completes and says so.
func (uc *InterviewUsecase) GetReport(ctx context.Context, id string) (*entity.Report, error) {
	s, err := uc.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Phase != entity.PhaseFinished {
		return nil, entity.ErrSessionNotFinished
	}
	return BuildReport(s, time.Now().UTC()), nil
}

// BuildReport pairs every question with its answers and, once evaluation is
// done, its evaluation.
func BuildReport(s *entity.Session, now time.Time) *entity.Report {
	report := &entity.Report{
		SessionID:        s.ID,
		JobRole:          s.Config.JobRole,
		InterviewType:    s.Config.InterviewType,
		EvaluationStatus: s.Evaluation.Status,
		Items:            make([]entity.ReportItem, 0, len(s.Questions)),
		GeneratedAt:      now,
	}

	evaluated := s.Evaluation.Status == entity.EvaluationDone && len(s.Evaluation.Evaluations) == len(s.Questions)
	var total float64

	for i, q := range s.Questions {
		item := entity.ReportItem{
			Number:   i + 1,
			Question: q.Text,
			FollowUp: q.FollowUp,
		}
		if i < len(s.Answers) {
			item.Answer = s.Answers[i]
		}
		if i < len(s.FollowUpAnswers) {
			item.FollowUpAnswer = s.FollowUpAnswers[i]
		}
		if evaluated {
			e := s.Evaluation.Evaluations[i]
			item.Evaluation = &e
			total += e.Score
		}
		report.Items = append(report.Items, item)
	}

	if evaluated && len(s.Questions) > 0 {
		avg := total / float64(len(s.Questions))
		report.AverageScore = &avg
	}
	return report
}
