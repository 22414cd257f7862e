// internal/session/session.go
// The conversation state machine. A Session owns one evaluation conversation:
// the message store, the current editor document, the latest analysis, and
// the active view mode. Sessions are plain constructible values so parallel
// sessions (and parallel tests) never share state.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"htmljudge/internal/judge"
	"htmljudge/internal/reconcile"
	"htmljudge/internal/transcript"
)

var (
	ErrBusy          = errors.New("an evaluation is already in flight")
	ErrEmptyDocument = errors.New("editor document is empty")
	ErrEmptyMessage  = errors.New("chat message is empty")
)

// State is the conversation state. There are only two real states: the busy
// flag exists to serialize requests, not to parallelize them.
type State int

const (
	StateIdle State = iota
	StateEvaluating
)

func (s State) String() string {
	if s == StateEvaluating {
		return "evaluating"
	}
	return "idle"
}

// ViewMode selects the active tab. It is orthogonal UI state, not a blocking
// state; any mode is valid in any State.
type ViewMode int

const (
	ModeAnalysis ViewMode = iota
	ModeChat
	ModePreview
	ModeLogs
)

func (m ViewMode) String() string {
	switch m {
	case ModeChat:
		return "chat"
	case ModePreview:
		return "preview"
	case ModeLogs:
		return "logs"
	default:
		return "analysis"
	}
}

// ParseViewMode maps a tab name to its mode.
func ParseViewMode(name string) (ViewMode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "analysis":
		return ModeAnalysis, true
	case "chat":
		return ModeChat, true
	case "preview":
		return ModePreview, true
	case "logs":
		return ModeLogs, true
	}
	return ModeAnalysis, false
}

type submitKind int

const (
	kindEvaluation submitKind = iota
	kindChat
)

// Analysis is the currently displayed evaluation outcome: exactly one of
// Result or Failure is set.
type Analysis struct {
	Result  *judge.Result
	Failure *judge.Failure
}

// Session is the in-memory, non-persisted state bundle for one evaluation
// conversation. Created on first use, reset on every fresh evaluation,
// discarded when the program exits.
//
// There is no cancel operation: success or failure of the in-flight call is
// the only way out of StateEvaluating. If the transport never resolves, the
// session is stuck there; the transport timeout is the only bound. Known
// limitation.
type Session struct {
	id        string
	evaluator judge.Evaluator
	store     *transcript.Store
	tiers     reconcile.TierPolicy

	mu        sync.Mutex
	state     State
	mode      ViewMode
	editorDoc string
	analysis  *Analysis
	lastKind  submitKind
}

// New creates an idle session bound to an evaluator.
func New(evaluator judge.Evaluator, tiers reconcile.TierPolicy) *Session {
	return &Session{
		id:        uuid.NewString(),
		evaluator: evaluator,
		store:     transcript.NewStore(),
		tiers:     tiers,
	}
}

func (s *Session) ID() string { return s.id }

// Tiers returns the score tier policy every scoring surface must share.
func (s *Session) Tiers() reconcile.TierPolicy { return s.tiers }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Busy reports whether a request is in flight.
func (s *Session) Busy() bool {
	return s.State() == StateEvaluating
}

func (s *Session) ViewMode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetViewMode switches the active tab. View code must route tab changes
// through here rather than holding its own mode field.
func (s *Session) SetViewMode(m ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

func (s *Session) EditorDocument() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editorDoc
}

// ApplyFix sets the editor document to the given markup. Callable in any
// state; it does not touch the conversation.
func (s *Session) ApplyFix(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editorDoc = text
}

// CurrentAnalysis returns the displayed analysis, or nil before the first
// completed evaluation.
func (s *Session) CurrentAnalysis() *Analysis {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analysis
}

// History returns a copy of the conversation turns.
func (s *Session) History() []transcript.Turn {
	return s.store.Turns()
}

// TranscriptLen returns the number of recorded turns.
func (s *Session) TranscriptLen() int {
	return s.store.Len()
}

// AddNotice records a system notice. Notices appear in the conversation but
// are never sent to the evaluator.
func (s *Session) AddNotice(text string) {
	s.store.Append(transcript.NoticeTurn(text))
}

// PreviewDocument resolves the markup currently worth previewing. The scan is
// recomputed from the full history on every call; the most recent candidate
// wins, and with no candidate the editor document stands.
func (s *Session) PreviewDocument() string {
	s.mu.Lock()
	editorDoc := s.editorDoc
	s.mu.Unlock()
	return reconcile.PreviewDocument(s.store.Turns(), editorDoc)
}

// Reset clears the conversation and the displayed analysis. The editor
// document is kept. Rejected while a call is in flight.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return ErrBusy
	}
	s.store.Reset()
	s.analysis = nil
	return nil
}

// SubmitEvaluation starts a fresh evaluation of the editor document. The
// conversation history is cleared first: a fresh evaluation is a new
// conversation, not a follow-up. The view mode jumps to the analysis tab.
//
// Rejected outright (not queued) with ErrBusy while a call is in flight.
func (s *Session) SubmitEvaluation(ctx context.Context, doc string) error {
	wire, err := s.begin(kindEvaluation, doc)
	if err != nil {
		return err
	}
	s.finish(s.evaluator.Evaluate(ctx, wire))
	return nil
}

// SubmitChat sends a follow-up message on top of the existing history,
// enabling iterative refinement. Guarded like SubmitEvaluation but the
// history is kept.
func (s *Session) SubmitChat(ctx context.Context, text string) error {
	wire, err := s.begin(kindChat, text)
	if err != nil {
		return err
	}
	s.finish(s.evaluator.Evaluate(ctx, wire))
	return nil
}

// begin performs the guarded Idle -> Evaluating transition and returns the
// wire transcript to dispatch.
func (s *Session) begin(kind submitKind, text string) ([]judge.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return nil, ErrBusy
	}
	if strings.TrimSpace(text) == "" {
		if kind == kindEvaluation {
			return nil, ErrEmptyDocument
		}
		return nil, ErrEmptyMessage
	}

	s.state = StateEvaluating
	s.lastKind = kind

	if kind == kindEvaluation {
		s.editorDoc = text
		s.mode = ModeAnalysis
		s.store.Reset()
	}
	s.store.Append(transcript.UserTurn(text))

	return s.store.WireFormat(), nil
}

// finish performs the Evaluating -> Idle transition. The outcome is recorded
// in the store either way; a failed follow-up chat leaves the last good
// analysis visible so one bad turn doesn't wipe prior results.
func (s *Session) finish(res *judge.Result, f *judge.Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f != nil {
		s.store.Append(transcript.FailureTurn(f))
		if s.lastKind == kindEvaluation {
			s.analysis = &Analysis{Failure: f}
		}
	} else {
		reconcile.Normalize(res)
		s.store.Append(transcript.ResultTurn(res))
		s.analysis = &Analysis{Result: res}
	}
	s.state = StateIdle
}
