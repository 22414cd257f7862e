// internal/transcript/store.go
// The append-only conversation log. The store is the single source of truth
// for what has been said; turns are never edited, reordered, or removed
// individually.
package transcript

import (
	"sync"
	"time"

	"htmljudge/internal/judge"
)

// Role attributes a turn to its author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"

	// RoleNotice marks UI-local system notices. Notice turns are shown in the
	// conversation but never sent to the evaluator.
	RoleNotice Role = "system-notice"
)

// Turn is one immutable entry in the conversation. User and notice turns
// carry Text; assistant turns carry exactly one of Result or Failure.
type Turn struct {
	Role      Role
	Text      string
	Result    *judge.Result
	Failure   *judge.Failure
	Timestamp time.Time
}

// UserTurn builds a user turn from plain text (which may embed markup verbatim).
func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Text: text, Timestamp: time.Now()}
}

// ResultTurn builds an assistant turn carrying a structured result.
func ResultTurn(res *judge.Result) Turn {
	return Turn{Role: RoleAssistant, Result: res, Timestamp: time.Now()}
}

// FailureTurn builds an assistant turn recording a failed evaluation call.
func FailureTurn(f *judge.Failure) Turn {
	return Turn{Role: RoleAssistant, Failure: f, Timestamp: time.Now()}
}

// NoticeTurn builds a system-notice turn.
func NoticeTurn(text string) Turn {
	return Turn{Role: RoleNotice, Text: text, Timestamp: time.Now()}
}

// Content returns the turn's content coerced to text. Structured assistant
// content is serialized to its canonical JSON encoding.
func (t Turn) Content() string {
	switch {
	case t.Result != nil:
		return judge.CanonicalText(t.Result)
	case t.Failure != nil:
		return judge.CanonicalText(t.Failure)
	default:
		return t.Text
	}
}

// Store is an ordered, append-only log of turns. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	turns []Turn
}

func NewStore() *Store {
	return &Store{}
}

// Append adds a turn to the end of the log.
func (s *Store) Append(t Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}
	s.turns = append(s.turns, t)
}

// Reset clears all turns. There is deliberately no way to remove a single turn.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}

// Len returns the number of turns.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// Turns returns a copy of the log in submission order.
func (s *Store) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// WireFormat produces the transcript sent to the evaluator: user and
// assistant turns only, in order, with every content coerced to text. The
// evaluator is text-oriented, so it sees its own prior structured answers as
// JSON text in the history.
func (s *Store) WireFormat() []judge.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := make([]judge.Message, 0, len(s.turns))
	for _, t := range s.turns {
		switch t.Role {
		case RoleUser:
			msgs = append(msgs, judge.Message{Role: "user", Content: t.Content()})
		case RoleAssistant:
			msgs = append(msgs, judge.Message{Role: "assistant", Content: t.Content()})
		}
	}
	return msgs
}
