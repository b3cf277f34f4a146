package progress

import (
	"context"
	"fmt"
	"math"
)

type Tier string

const (
	Beginner     Tier = "beginner"
	Intermediate Tier = "intermediate"
	Expert       Tier = "expert"
)

// TestSuffix turns a chapter name into the name of its chapter test.
const TestSuffix = "_test"

// Level is the outcome of a placement score: the tier and the chapters and tests
// granted as completed.
type Level struct {
	Tier     Tier
	Chapters []string
	Tests    []string
}

var (
	intermediateChapters = []string{"Quickstart", "Chapter1", "Chapter2", "Chapter3", "BasicsTest"}
	expertChapters       = append(append([]string(nil), intermediateChapters...), "Chapter4", "Chapter5", "Chapter6", "AdvancedTest")
)

// tierFloors are the lowest scores of each tier, highest first.
var tierFloors = []struct {
	floor    float64
	tier     Tier
	chapters []string
}{
	{70, Expert, expertChapters},
	{40, Intermediate, intermediateChapters},
	{0, Beginner, nil},
}

// ResolveLevel maps a placement score in [0, 100] to its tier and backfill set.
// Boundaries are half-open and compared without rounding.
func ResolveLevel(score float64) Level {
	for _, t := range tierFloors {
		if score >= t.floor {
			return newLevel(t.tier, t.chapters)
		}
	}
	return newLevel(Beginner, nil)
}

func newLevel(tier Tier, chapters []string) Level {
	lvl := Level{Tier: tier, Chapters: append([]string(nil), chapters...)}
	for _, c := range chapters {
		lvl.Tests = append(lvl.Tests, c+TestSuffix)
	}
	return lvl
}

func validateScore(score float64) error {
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 || score > 100 {
		return &ValidationError{Fields: map[string]string{"score": "Invalid score"}}
	}
	return nil
}

// ApplyPlacement records a finished placement test for the user and backfills the
// chapters and tests of the resulting tier, all in one transaction.
func (e *Engine) ApplyPlacement(ctx context.Context, id Identity, score float64) (Level, error) {
	if err := id.authorize(PermTakeCourse); err != nil {
		return Level{}, err
	}
	if err := validateScore(score); err != nil {
		return Level{}, err
	}
	lvl := ResolveLevel(score)
	err := e.store.Transaction(ctx, func(tx Store) error {
		if err := tx.InsertLevelRecord(ctx, id.UserID, LevelFinished); err != nil {
			return persistence("insert level record", err)
		}
		if err := backfill(ctx, tx, Chapters, id.UserID, lvl.Chapters, 0); err != nil {
			return err
		}
		return backfill(ctx, tx, Tests, id.UserID, lvl.Tests, 100)
	})
	if err != nil {
		return Level{}, persistence("apply placement", err)
	}
	return lvl, nil
}

// backfill inserts every item of items the user does not hold yet and checks the
// result is still an unbroken prefix.
func backfill(ctx context.Context, tx Store, seq Sequence, userID uint, items []string, score float64) error {
	if len(items) == 0 {
		return nil
	}
	done, err := tx.Completions(ctx, seq, userID)
	if err != nil {
		return persistence("load completed "+seq.String(), err)
	}
	held := make(map[int]bool, len(done))
	for _, c := range done {
		held[c.Position] = true
	}
	for _, name := range items {
		pos, err := tx.Position(ctx, seq, name)
		if err != nil {
			return persistence(fmt.Sprintf("resolve %s %q", seq, name), err)
		}
		if held[pos] {
			continue
		}
		if err := tx.InsertCompletion(ctx, seq, userID, Completion{Position: pos, Name: name, Score: score}); err != nil {
			return persistence("backfill "+seq.String(), err)
		}
		held[pos] = true
	}
	all := make([]int, 0, len(held))
	for p := range held {
		all = append(all, p)
	}
	if !IsPrefix(all) {
		return fmt.Errorf("backfill %s: %w", seq, ErrSequenceViolation)
	}
	return nil
}

// CancelPlacement records that the user declined the placement test. Nothing is
// backfilled; the returned snapshot is read after the write.
func (e *Engine) CancelPlacement(ctx context.Context, id Identity) (Snapshot, error) {
	if err := id.authorize(PermTakeCourse); err != nil {
		return Snapshot{}, err
	}
	if err := e.store.InsertLevelRecord(ctx, id.UserID, LevelCancel); err != nil {
		return Snapshot{}, persistence("insert level record", err)
	}
	return e.snapshot(ctx, id.UserID)
}
