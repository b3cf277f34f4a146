package progress

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SamplePolicy decides how many questions a chapter test serves.
type SamplePolicy interface {
	SampleSize(testName string) int
}

// PrefixPolicy serves QuickSize questions for tests whose name starts with one of
// QuickPrefixes (short quick-checks) and FullSize questions otherwise.
type PrefixPolicy struct {
	QuickPrefixes []string
	QuickSize     int
	FullSize      int
}

func DefaultPolicy() PrefixPolicy {
	return PrefixPolicy{QuickPrefixes: []string{"C", "Q"}, QuickSize: 3, FullSize: 6}
}

// SampleSize falls back to the default sizes when a configured size is not positive.
func (p PrefixPolicy) SampleSize(testName string) int {
	def := DefaultPolicy()
	for _, prefix := range p.QuickPrefixes {
		if prefix != "" && strings.HasPrefix(testName, prefix) {
			return positiveOr(p.QuickSize, def.QuickSize)
		}
	}
	return positiveOr(p.FullSize, def.FullSize)
}

func positiveOr(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return n
}

// SelectQuestions returns the questions to serve for testName. The placement test
// serves its whole bank in stored order; a chapter test is only served to a user
// for whom it is the next test, as a random sample sized by the policy.
func (e *Engine) SelectQuestions(ctx context.Context, id Identity, testName string) ([]Question, error) {
	if err := id.authorize(PermTakeCourse); err != nil {
		return nil, err
	}
	if testName == "" {
		return nil, &ValidationError{Fields: map[string]string{"test": "Please select a test from the chapters."}}
	}
	if testName == PlacementTest {
		qs, err := e.store.Questions(ctx, PlacementBank, "")
		if err != nil {
			return nil, persistence("load placement questions", err)
		}
		return qs, nil
	}
	if _, err := checkAccess(ctx, e.store, Tests, id.UserID, testName); err != nil {
		return nil, err
	}
	qs, err := e.store.Questions(ctx, ChapterBank, testName)
	if err != nil {
		return nil, persistence("load test questions", err)
	}
	return e.sample(testName, qs)
}

// sample draws policy-many distinct questions uniformly at random.
func (e *Engine) sample(testName string, qs []Question) ([]Question, error) {
	n := e.policy.SampleSize(testName)
	if len(qs) < n {
		return nil, fmt.Errorf("test %q has %d questions, needs %d: %w", testName, len(qs), n, ErrNotEnoughQuestions)
	}
	pool := append([]Question(nil), qs...)
	e.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:n], nil
}

// Feedback is the grading result of a single answer.
type Feedback struct {
	Correct bool
	Message string
}

// NormalizeAnswer trims surrounding whitespace and lowercases an answer.
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Grade checks answer against the stored right answer of the question.
func (e *Engine) Grade(ctx context.Context, id Identity, bank Bank, questionID uint, answer string) (Feedback, error) {
	if err := id.authorize(PermAnswer); err != nil {
		return Feedback{}, err
	}
	fields := map[string]string{}
	if questionID == 0 {
		fields["question"] = "Question is required."
	}
	if strings.TrimSpace(answer) == "" {
		fields["answer"] = "Answer is required."
	}
	if len(fields) > 0 {
		return Feedback{}, &ValidationError{Fields: fields}
	}

	key, err := e.store.AnswerKey(ctx, bank, questionID)
	if err != nil {
		return Feedback{}, persistence("load answer key", err)
	}
	correct := NormalizeAnswer(answer) == NormalizeAnswer(key.RightAnswer)
	return Feedback{Correct: correct, Message: feedbackMessage(correct, key)}, nil
}

func feedbackMessage(correct bool, key AnswerKey) string {
	sameSub := key.Chapter == key.Subchapter
	switch {
	case correct && sameSub:
		return fmt.Sprintf("Right answer, great job! This question was from chapter: %s.", key.Chapter)
	case correct:
		return fmt.Sprintf("Right answer, great job! This question was from chapter: %s and sub-chapter: %s.", key.Chapter, key.Subchapter)
	case sameSub:
		return fmt.Sprintf("Wrong answer! Please re-study the chapter: %s.", key.Chapter)
	default:
		return fmt.Sprintf("Wrong answer! Please re-study the chapter: %s and especially the sub-chapter: %s.", key.Chapter, key.Subchapter)
	}
}

// Outcome is the result of a submitted test score.
type Outcome struct {
	TestName  string
	Score     float64
	Passed    bool
	Placement bool
	// Level is set for the placement test only.
	Level   Level
	Message string
}

// SubmitTestResult applies a finished test. The placement test goes through the
// leveling rules; a chapter test persists a completion when the score reaches the
// pass threshold and nothing otherwise.
func (e *Engine) SubmitTestResult(ctx context.Context, id Identity, testName string, score float64) (Outcome, error) {
	if err := id.authorize(PermTakeCourse); err != nil {
		return Outcome{}, err
	}
	fields := map[string]string{}
	if testName == "" {
		fields["test"] = "Test is required."
	}
	if err := validateScore(score); err != nil {
		fields["score"] = "Invalid score"
	}
	if len(fields) > 0 {
		return Outcome{}, &ValidationError{Fields: fields}
	}

	out := Outcome{TestName: testName, Score: score}
	if testName == PlacementTest {
		lvl, err := e.ApplyPlacement(ctx, id, score)
		if err != nil {
			return Outcome{}, err
		}
		out.Placement, out.Passed, out.Level = true, true, lvl
		out.Message = fmt.Sprintf("You were set to be a %s because you scored %s%%.", lvl.Tier, FormatScore(score))
		return out, nil
	}

	// a failing score writes nothing, so only the name has to resolve
	if score < e.passThreshold {
		if _, err := e.store.Position(ctx, Tests, testName); err != nil {
			if errors.Is(err, ErrNotFound) {
				return Outcome{}, fmt.Errorf("%s %q: %w", Tests, testName, ErrNotFound)
			}
			return Outcome{}, persistence("resolve tests position", err)
		}
		out.Message = fmt.Sprintf("You failed the %s with a score of %s%%. You must score at least %s%% to pass. Try again later.",
			FormatTestName(testName), FormatScore(score), FormatScore(e.passThreshold))
		return out, nil
	}

	err := e.store.Transaction(ctx, func(tx Store) error {
		pos, err := checkAccess(ctx, tx, Tests, id.UserID, testName)
		if err != nil {
			return err
		}
		return persistence("insert completed test", tx.InsertCompletion(ctx, Tests, id.UserID, Completion{Position: pos, Name: testName, Score: score}))
	})
	if err != nil {
		return Outcome{}, persistence("submit test result", err)
	}
	out.Passed = true
	out.Message = fmt.Sprintf("You passed the %s with a score of %s%%.", FormatTestName(testName), FormatScore(score))
	return out, nil
}

var testNameReplacer = strings.NewReplacer("Test_test", " test", "_", " ", "Chapter", "Chapter ")

// FormatTestName renders a test name for messages: "Chapter1_test" becomes
// "Chapter 1 test" and "BasicsTest_test" becomes "Basics test".
func FormatTestName(name string) string {
	return testNameReplacer.Replace(name)
}

func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
