package session

import "github.com/futig/mock-interview/internal/entity"

// toInterviewConfig applies the landing form defaults
func toInterviewConfig(req *entity.StartSessionRequest) entity.InterviewConfig {
	cfg := entity.InterviewConfig{
		JobRole:         req.JobRole,
		InterviewType:   req.InterviewType,
		NumQuestions:    entity.DefaultQuestions,
		TimePerQuestion: entity.DefaultTimeLimit,
	}
	if cfg.InterviewType == "" {
		cfg.InterviewType = entity.InterviewTypeTechnical
	}
	if req.NumQuestions != nil {
		cfg.NumQuestions = *req.NumQuestions
	}
	if req.Minutes != nil || req.Seconds != nil {
		var minutes, seconds int
		if req.Minutes != nil {
			minutes = *req.Minutes
		}
		if req.Seconds != nil {
			seconds = *req.Seconds
		}
		cfg.TimePerQuestion = minutes*60 + seconds
	}
	return cfg
}

// toSessionDTO converts Session entity to SessionDTO
func toSessionDTO(s *entity.Session) *entity.SessionDTO {
	questions := make([]entity.QuestionDTO, 0, len(s.Questions))
	for i, q := range s.Questions {
		dto := entity.QuestionDTO{
			Number:   i + 1,
			Text:     q.Text,
			FollowUp: q.FollowUp,
		}
		if i < len(s.Answers) {
			dto.Answer = s.Answers[i]
		}
		if i < len(s.FollowUpAnswers) {
			dto.FollowUpAnswer = s.FollowUpAnswers[i]
		}
		questions = append(questions, dto)
	}

	return &entity.SessionDTO{
		ID:             s.ID,
		Status:         s.Phase,
		Step:           s.Step,
		Config:         s.Config,
		Questions:      questions,
		CurrentIndex:   s.CurrentIndex,
		CurrentPrompt:  s.CurrentPrompt(),
		FollowUpActive: s.FollowUpActive,
		FollowUpAnswer: s.FollowUpAnswer,
		TimeLeft:       s.TimeLeft,
		TimesUp:        s.TimesUp,
		Transcription:  s.Transcription,
		Evaluation:     s.Evaluation.Status,
		CreatedAt:      s.CreatedAt,
	}
}

func toEvaluationDTO(id string, state *entity.EvaluationState) *entity.EvaluationDTO {
	return &entity.EvaluationDTO{
		SessionID:   id,
		Status:      state.Status,
		Evaluations: state.Evaluations,
		Error:       state.Error,
	}
}
