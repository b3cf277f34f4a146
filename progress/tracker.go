package progress

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// CanAccess reports whether the item at position requested may be opened by a user
// whose completed positions are completed. The completions must form the unbroken
// prefix 1..n and requested must be n+1.
func CanAccess(completed []int, requested int) bool {
	if !IsPrefix(completed) {
		return false
	}
	return requested == len(completed)+1
}

// IsPrefix reports whether positions, once sorted, are exactly 1..len(positions).
func IsPrefix(positions []int) bool {
	sorted := append([]int(nil), positions...)
	sort.Ints(sorted)
	for i, p := range sorted {
		if p != i+1 {
			return false
		}
	}
	return true
}

func positions(done []Completion) []int {
	out := make([]int, len(done))
	for i, c := range done {
		out[i] = c.Position
	}
	return out
}

func names(done []Completion) []string {
	out := make([]string, len(done))
	for i, c := range done {
		out[i] = c.Name
	}
	return out
}

// checkAccess resolves name to its position in seq and verifies the user may take it next.
func checkAccess(ctx context.Context, s Store, seq Sequence, userID uint, name string) (int, error) {
	pos, err := s.Position(ctx, seq, name)
	if errors.Is(err, ErrNotFound) {
		return 0, fmt.Errorf("%s %q: %w", seq, name, ErrNotFound)
	}
	if err != nil {
		return 0, persistence("resolve "+seq.String()+" position", err)
	}
	done, err := s.Completions(ctx, seq, userID)
	if err != nil {
		return 0, persistence("load completed "+seq.String(), err)
	}
	if !CanAccess(positions(done), pos) {
		return 0, fmt.Errorf("%s %q: %w", seq, name, ErrSequenceViolation)
	}
	return pos, nil
}

// CheckAccess returns the position of the named chapter or test when the user may
// open it next.
func (e *Engine) CheckAccess(ctx context.Context, id Identity, seq Sequence, name string) (int, error) {
	if err := id.authorize(PermTakeCourse); err != nil {
		return 0, err
	}
	return checkAccess(ctx, e.store, seq, id.UserID, name)
}

// CompleteChapter records the named chapter as done when it is the user's next one.
func (e *Engine) CompleteChapter(ctx context.Context, id Identity, chapter string) error {
	if err := id.authorize(PermTakeCourse); err != nil {
		return err
	}
	if chapter == "" {
		return &ValidationError{Fields: map[string]string{"chapter": "Chapter is required."}}
	}
	err := e.store.Transaction(ctx, func(tx Store) error {
		pos, err := checkAccess(ctx, tx, Chapters, id.UserID, chapter)
		if err != nil {
			return err
		}
		return persistence("insert completed chapter", tx.InsertCompletion(ctx, Chapters, id.UserID, Completion{Position: pos, Name: chapter}))
	})
	return persistence("complete chapter", err)
}

// Snapshot is the user's position in both sequences plus the full catalogs.
type Snapshot struct {
	NeedsPlacement bool
	Chapters       []string
	Tests          []string
	AllChapters    []string
	AllTests       []string
}

// Snapshot reads the current progress of the user from storage.
func (e *Engine) Snapshot(ctx context.Context, id Identity) (Snapshot, error) {
	if err := id.authorize(PermTakeCourse); err != nil {
		return Snapshot{}, err
	}
	return e.snapshot(ctx, id.UserID)
}

func (e *Engine) snapshot(ctx context.Context, userID uint) (Snapshot, error) {
	var snap Snapshot
	leveled, err := e.store.HasLevelRecord(ctx, userID)
	if err != nil {
		return snap, persistence("load level record", err)
	}
	snap.NeedsPlacement = !leveled

	chapters, err := e.store.Completions(ctx, Chapters, userID)
	if err != nil {
		return snap, persistence("load completed chapters", err)
	}
	tests, err := e.store.Completions(ctx, Tests, userID)
	if err != nil {
		return snap, persistence("load completed tests", err)
	}
	if snap.AllChapters, err = e.store.Catalog(ctx, Chapters); err != nil {
		return snap, persistence("load chapter catalog", err)
	}
	if snap.AllTests, err = e.store.Catalog(ctx, Tests); err != nil {
		return snap, persistence("load test catalog", err)
	}
	snap.Chapters = names(chapters)
	snap.Tests = names(tests)
	return snap, nil
}

// Profile is the learner-facing summary of completed work and scores.
type Profile struct {
	Chapters    []Completion
	Tests       []Completion
	AllChapters []string
	AllTests    []string
	Sum         float64
	// Average is nil when no test has been completed.
	Average *float64
}

func (e *Engine) Profile(ctx context.Context, id Identity) (Profile, error) {
	var p Profile
	if err := id.authorize(PermViewProfile); err != nil {
		return p, err
	}
	var err error
	if p.Chapters, err = e.store.Completions(ctx, Chapters, id.UserID); err != nil {
		return p, persistence("load completed chapters", err)
	}
	if p.Tests, err = e.store.Completions(ctx, Tests, id.UserID); err != nil {
		return p, persistence("load completed tests", err)
	}
	if p.AllChapters, err = e.store.Catalog(ctx, Chapters); err != nil {
		return p, persistence("load chapter catalog", err)
	}
	if p.AllTests, err = e.store.Catalog(ctx, Tests); err != nil {
		return p, persistence("load test catalog", err)
	}
	p.Sum, p.Average = ScoreSummary(p.Tests)
	return p, nil
}

// ScoreSummary returns the sum of the test scores and their mean, or a nil mean
// for an empty list.
func ScoreSummary(tests []Completion) (float64, *float64) {
	if len(tests) == 0 {
		return 0, nil
	}
	var sum float64
	for _, t := range tests {
		sum += t.Score
	}
	avg := sum / float64(len(tests))
	return sum, &avg
}
