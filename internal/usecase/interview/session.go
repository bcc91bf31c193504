package interview

import (
	"sync"
	"time"

	"github.com/futig/mock-interview/internal/entity"
	engine "github.com/futig/mock-interview/internal/interview"
)

// SessionRecord is what the session store keeps for one interview.
type SessionRecord struct {
	ID        string
	Config    entity.InterviewConfig
	CreatedAt time.Time

	runner *engine.Runner

	mu         sync.Mutex
	evaluation entity.EvaluationState
	final      *entity.Session
}

func (r *SessionRecord) evaluationState() entity.EvaluationState {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.evaluation
	state.Evaluations = append([]entity.Evaluation(nil), r.evaluation.Evaluations...)
	return state
}

func (r *SessionRecord) setFinal(s entity.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.final = &s
}

// beginEvaluation marks the evaluation running and returns the finished
// session it is computed from.
func (r *SessionRecord) beginEvaluation() (entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.evaluation.Status {
	case entity.EvaluationRunning:
		return entity.Session{}, entity.ErrEvaluationRunning
	case entity.EvaluationDone:
		return entity.Session{}, entity.ErrEvaluationCompleted
	}
	if r.final == nil {
		return entity.Session{}, entity.ErrEvaluationNotReady
	}

	r.evaluation.Status = entity.EvaluationRunning
	r.evaluation.Error = ""
	r.evaluation.UpdatedAt = time.Now()
	return *r.final, nil
}

func (r *SessionRecord) finishEvaluation(evaluations []entity.Evaluation, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evaluation.UpdatedAt = time.Now()
	if err != nil {
		r.evaluation.Status = entity.EvaluationFailed
		r.evaluation.Error = err.Error()
		r.evaluation.Evaluations = nil
		return
	}
	r.evaluation.Status = entity.EvaluationDone
	r.evaluation.Evaluations = evaluations
}
