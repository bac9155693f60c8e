// Package editor owns one author's editing session: the draft, the baseline it
// is diffed against, and the round trips to the survey store.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/vnkhanh/eval-survey-server/logger"
	"github.com/vnkhanh/eval-survey-server/surveydef"
)

var (
	ErrSaveInProgress = errors.New("editor: save already in progress")
	ErrStaleLoad      = errors.New("editor: load superseded by a newer request")
	ErrNoDraft        = errors.New("editor: no draft loaded")
)

// Store is the persistence collaborator. Implementations return the persisted
// snapshot after every call.
type Store interface {
	FetchSurvey(ctx context.Context, id string) (surveydef.Survey, error)
	CreateSurvey(ctx context.Context, dto surveydef.CreateSurveyDTO) (surveydef.Survey, error)
	UpdateSurvey(ctx context.Context, id string, dto surveydef.UpdateSurveyDTO) (surveydef.Survey, error)
}

// ValidationError is returned by Submit when the draft is not accepted.
type ValidationError struct {
	Violations []surveydef.Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return "editor: draft is invalid: " + strings.Join(parts, "; ")
}

type Session struct {
	store Store

	mu       sync.Mutex
	draft    *surveydef.Draft
	baseline *surveydef.Survey

	loadSeq atomic.Uint64
	saving  atomic.Bool
}

func NewSession(store Store) *Session {
	return &Session{store: store}
}

// New bắt đầu một bản nháp trống; lần Submit đầu tiên sẽ tạo survey mới.
func (s *Session) New() *surveydef.Draft {
	s.loadSeq.Add(1)
	d := surveydef.NewDraft()

	s.mu.Lock()
	s.draft, s.baseline = d, nil
	s.mu.Unlock()
	return d
}

// Load fetches survey id and makes it the draft and baseline. When a newer Load,
// New or Import starts before this one returns, the fetched result is discarded and
// ErrStaleLoad is returned.
func (s *Session) Load(ctx context.Context, id string) (*surveydef.Draft, error) {
	seq := s.loadSeq.Add(1)

	snapshot, err := s.store.FetchSurvey(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("editor: fetch survey %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadSeq.Load() != seq {
		logger.Debugf("editor.load: dropping stale result for survey %s", id)
		return nil, ErrStaleLoad
	}
	s.adopt(snapshot)
	return s.draft, nil
}

// Draft returns the current draft, nil before New or Load.
func (s *Session) Draft() *surveydef.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Baseline returns a copy of the last persisted snapshot.
func (s *Session) Baseline() (surveydef.Survey, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.baseline == nil {
		return surveydef.Survey{}, false
	}
	return s.baseline.Clone(), true
}

// Import replaces the draft with doc (hydrated) while keeping the baseline, so
// the next Submit diffs an externally edited document against what is stored.
// Like New, it supersedes any Load still in flight.
func (s *Session) Import(doc surveydef.Survey) *surveydef.Draft {
	s.loadSeq.Add(1)
	d := surveydef.Hydrate(doc)
	s.mu.Lock()
	s.draft = d
	s.mu.Unlock()
	return d
}

// Reset bỏ mọi chỉnh sửa, nạp lại bản nháp từ baseline.
func (s *Session) Reset() (*surveydef.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.baseline == nil {
		if s.draft == nil {
			return nil, ErrNoDraft
		}
		s.draft = surveydef.NewDraft()
		return s.draft, nil
	}
	s.draft = surveydef.Hydrate(*s.baseline)
	return s.draft, nil
}

// Validate runs the validation engine on the current draft.
func (s *Session) Validate() (surveydef.Result, error) {
	s.mu.Lock()
	d := s.draft
	s.mu.Unlock()
	if d == nil {
		return surveydef.Result{}, ErrNoDraft
	}
	return surveydef.Validate(d.Survey()), nil
}

// Submit validates the draft, builds the whole payload, then saves it.
// Only one Submit runs at a time; a concurrent call gets ErrSaveInProgress.
// On failure the draft is left as it was.
func (s *Session) Submit(ctx context.Context) (surveydef.Survey, error) {
	if !s.saving.CompareAndSwap(false, true) {
		return surveydef.Survey{}, ErrSaveInProgress
	}
	defer s.saving.Store(false)

	s.mu.Lock()
	d, baseline := s.draft, s.baseline
	s.mu.Unlock()
	if d == nil {
		return surveydef.Survey{}, ErrNoDraft
	}

	current := d.Survey()
	if r := surveydef.Validate(current); !r.Valid {
		return surveydef.Survey{}, &ValidationError{Violations: r.Violations}
	}

	var (
		saved surveydef.Survey
		err   error
	)
	if baseline == nil {
		dto := surveydef.BuildCreationPayload(current)
		saved, err = s.store.CreateSurvey(ctx, dto)
		if err != nil {
			return surveydef.Survey{}, fmt.Errorf("editor: create survey: %w", err)
		}
	} else {
		if err := surveydef.CheckConsistency(*baseline, current); err != nil {
			return surveydef.Survey{}, err
		}
		dto := surveydef.BuildUpdatePayload(*baseline, current)
		id := baseline.ID.Remote()
		saved, err = s.store.UpdateSurvey(ctx, id, dto)
		if err != nil {
			return surveydef.Survey{}, fmt.Errorf("editor: update survey %s: %w", id, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// người dùng đã chuyển sang survey khác trong lúc lưu: giữ nguyên phiên mới
	if s.draft != d {
		logger.Debugf("editor.submit: session moved on, survey %s saved without adopting", saved.ID.Remote())
		return saved, nil
	}
	s.adopt(saved)
	return saved, nil
}

func (s *Session) adopt(snapshot surveydef.Survey) {
	b := snapshot.Clone()
	s.baseline = &b
	s.draft = surveydef.Hydrate(b)
}
