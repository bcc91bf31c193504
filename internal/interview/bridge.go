package interview

import (
	"github.com/futig/mock-interview/internal/entity"
)

// Bridge relays recognized speech into the live answer buffer. Every start
// or restart opens a new generation; text tagged with an older generation
// belongs to a superseded recognition run and is dropped.
type Bridge struct {
	recognizer Recognizer
	active     bool
	generation uint64
}

func NewBridge(r Recognizer) *Bridge {
	if r == nil {
		r = UnavailableRecognizer{}
	}
	return &Bridge{recognizer: r}
}

// Start begins listening and returns the generation to tag updates with.
func (b *Bridge) Start() (uint64, error) {
	if !b.recognizer.Available() {
		return 0, entity.ErrTranscriptionUnavailable
	}
	b.generation++
	b.active = true
	return b.generation, nil
}

func (b *Bridge) Stop() {
	if !b.active {
		return
	}
	b.active = false
	b.generation++
}

// Restart opens a new generation if the bridge is listening.
func (b *Bridge) Restart() {
	if b.active {
		b.generation++
	}
}

// Deliver routes text to whichever answer buffer is live. It reports false
// when the update was discarded.
func (b *Bridge) Deliver(m *Machine, generation uint64, text string) (bool, error) {
	if !b.active || generation != b.generation {
		return false, nil
	}
	if err := m.SetAnswer(text); err != nil {
		return false, err
	}
	return true, nil
}

func (b *Bridge) Recognizer() Recognizer {
	return b.recognizer
}

func (b *Bridge) State() entity.TranscriptionState {
	return entity.TranscriptionState{
		Mode:       b.recognizer.Mode(),
		Available:  b.recognizer.Available(),
		Active:     b.active,
		Generation: b.generation,
	}
}
