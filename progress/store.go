package progress

import "context"

// Sequence selects one of the two ordered curricula a user progresses through.
type Sequence int

const (
	Chapters Sequence = iota
	Tests
)

func (s Sequence) String() string {
	if s == Tests {
		return "tests"
	}
	return "chapters"
}

// Bank selects the question table a test draws from.
type Bank int

const (
	ChapterBank Bank = iota
	PlacementBank
)

// LevelStatus is the outcome recorded when a user resolves the placement flow.
type LevelStatus string

const (
	LevelFinished LevelStatus = "finished"
	LevelCancel   LevelStatus = "cancel"
)

// Completion is one finished item of a sequence. Score is only meaningful for tests.
type Completion struct {
	Position int
	Name     string
	Score    float64
}

type Question struct {
	ID         uint
	Type       string
	Prompt     string
	Options    []string
	Chapter    string
	Subchapter string
	TestName   string
}

// AnswerKey is what grading needs to know about a stored question.
type AnswerKey struct {
	RightAnswer string
	Chapter     string
	Subchapter  string
}

// Store is the persistence gateway the engine runs against. Lookups that match
// nothing return ErrNotFound; inserting a completion at a position the user already
// holds returns ErrDuplicate.
type Store interface {
	Position(ctx context.Context, seq Sequence, name string) (int, error)
	Catalog(ctx context.Context, seq Sequence) ([]string, error)
	Completions(ctx context.Context, seq Sequence, userID uint) ([]Completion, error)
	InsertCompletion(ctx context.Context, seq Sequence, userID uint, c Completion) error

	HasLevelRecord(ctx context.Context, userID uint) (bool, error)
	InsertLevelRecord(ctx context.Context, userID uint, status LevelStatus) error

	Questions(ctx context.Context, bank Bank, testName string) ([]Question, error)
	AnswerKey(ctx context.Context, bank Bank, questionID uint) (AnswerKey, error)

	// Transaction runs fn against a store bound to a single transaction. The
	// transaction commits only when fn returns nil.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
