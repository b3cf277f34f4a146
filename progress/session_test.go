package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 3, p.SampleSize("Chapter1_test"))
	assert.Equal(t, 3, p.SampleSize("Quickstart_test"))
	assert.Equal(t, 6, p.SampleSize("BasicsTest_test"))
	assert.Equal(t, 6, p.SampleSize("AdvancedTest_test"))

	custom := PrefixPolicy{QuickPrefixes: []string{"Quiz"}, QuickSize: 2, FullSize: 4}
	assert.Equal(t, 4, custom.SampleSize("Quickstart_test"))
	assert.Equal(t, 2, custom.SampleSize("Quiz1"))

	broken := PrefixPolicy{QuickPrefixes: []string{"C"}, QuickSize: 0, FullSize: -1}
	assert.Equal(t, 3, broken.SampleSize("Chapter1_test"))
	assert.Equal(t, 6, broken.SampleSize("BasicsTest_test"))
}

func TestSelectQuestionsPlacementReturnsWholeBank(t *testing.T) {
	store := newMemStore()
	store.addQuestions(PlacementBank, PlacementTest, 15)
	eng := NewEngine(store)

	qs, err := eng.SelectQuestions(context.Background(), learner, PlacementTest)
	require.NoError(t, err)
	require.Len(t, qs, 15)
	for i, q := range qs {
		assert.Equal(t, uint(i+1), q.ID)
	}
}

func TestSelectQuestionsSamplesDistinct(t *testing.T) {
	store := newMemStore()
	store.data.completions[Tests][learner.UserID] = []Completion{
		{Position: 1}, {Position: 2}, {Position: 3}, {Position: 4},
	}
	store.addQuestions(ChapterBank, "BasicsTest_test", 10)
	eng := NewEngine(store)

	for i := 0; i < 20; i++ {
		qs, err := eng.SelectQuestions(context.Background(), learner, "BasicsTest_test")
		require.NoError(t, err)
		require.Len(t, qs, 6)
		seen := map[uint]bool{}
		for _, q := range qs {
			assert.False(t, seen[q.ID], "duplicate question %d", q.ID)
			seen[q.ID] = true
			assert.Equal(t, "BasicsTest_test", q.TestName)
		}
	}
}

func TestSelectQuestionsQuickCheckSize(t *testing.T) {
	store := newMemStore()
	store.addQuestions(ChapterBank, "Quickstart_test", 8)
	eng := NewEngine(store)

	qs, err := eng.SelectQuestions(context.Background(), learner, "Quickstart_test")
	require.NoError(t, err)
	assert.Len(t, qs, 3)
}

func TestSelectQuestionsShortBankFails(t *testing.T) {
	store := newMemStore()
	store.addQuestions(ChapterBank, "Quickstart_test", 2)
	eng := NewEngine(store)

	qs, err := eng.SelectQuestions(context.Background(), learner, "Quickstart_test")
	require.ErrorIs(t, err, ErrNotEnoughQuestions)
	assert.Nil(t, qs)
}

func TestSelectQuestionsFailsClosed(t *testing.T) {
	store := newMemStore()
	store.addQuestions(ChapterBank, "Chapter1_test", 5)
	eng := NewEngine(store)
	ctx := context.Background()

	_, err := eng.SelectQuestions(ctx, learner, "Chapter1_test")
	require.ErrorIs(t, err, ErrSequenceViolation)

	_, err = eng.SelectQuestions(ctx, learner, "Nope_test")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = eng.SelectQuestions(ctx, learner, "")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestSelectQuestionsUsesShuffle(t *testing.T) {
	store := newMemStore()
	store.addQuestions(ChapterBank, "Quickstart_test", 4)
	reverse := func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}
	eng := NewEngine(store, WithShuffle(reverse))

	qs, err := eng.SelectQuestions(context.Background(), learner, "Quickstart_test")
	require.NoError(t, err)
	assert.Equal(t, []uint{4, 3, 2}, []uint{qs[0].ID, qs[1].ID, qs[2].ID})
	// the stored bank keeps its order
	assert.Equal(t, uint(1), store.questions[ChapterBank][0].ID)
}

func TestGrade(t *testing.T) {
	store := newMemStore()
	store.answers[ChapterBank][1] = AnswerKey{RightAnswer: "paris", Chapter: "Chapter1", Subchapter: "Chapter1"}
	store.answers[ChapterBank][2] = AnswerKey{RightAnswer: "List", Chapter: "Chapter2", Subchapter: "Slicing"}
	store.answers[PlacementBank][1] = AnswerKey{RightAnswer: "print", Chapter: "Quickstart", Subchapter: "Output"}
	eng := NewEngine(store)
	ctx := context.Background()

	fb, err := eng.Grade(ctx, learner, ChapterBank, 1, " Paris ")
	require.NoError(t, err)
	assert.True(t, fb.Correct)
	assert.Equal(t, "Right answer, great job! This question was from chapter: Chapter1.", fb.Message)

	fb, err = eng.Grade(ctx, learner, ChapterBank, 2, "tuple")
	require.NoError(t, err)
	assert.False(t, fb.Correct)
	assert.Equal(t, "Wrong answer! Please re-study the chapter: Chapter2 and especially the sub-chapter: Slicing.", fb.Message)

	fb, err = eng.Grade(ctx, learner, ChapterBank, 2, "LIST\n")
	require.NoError(t, err)
	assert.Equal(t, "Right answer, great job! This question was from chapter: Chapter2 and sub-chapter: Slicing.", fb.Message)

	fb, err = eng.Grade(ctx, learner, PlacementBank, 1, "Print")
	require.NoError(t, err)
	assert.True(t, fb.Correct)

	_, err = eng.Grade(ctx, learner, ChapterBank, 99, "x")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = eng.Grade(ctx, learner, ChapterBank, 0, "  ")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 2)
}

func TestSubmitTestResultPassAndFail(t *testing.T) {
	store := newMemStore()
	store.data.completions[Tests][learner.UserID] = []Completion{{Position: 1, Name: "Quickstart_test", Score: 90}}
	eng := NewEngine(store)
	ctx := context.Background()

	out, err := eng.SubmitTestResult(ctx, learner, "Chapter1_test", 59.999)
	require.NoError(t, err)
	assert.False(t, out.Passed)
	assert.Equal(t, "You failed the Chapter 1 test with a score of 59.999%. You must score at least 60% to pass. Try again later.", out.Message)
	assert.Len(t, store.data.completions[Tests][learner.UserID], 1)

	out, err = eng.SubmitTestResult(ctx, learner, "Chapter1_test", 60)
	require.NoError(t, err)
	assert.True(t, out.Passed)
	assert.Equal(t, "You passed the Chapter 1 test with a score of 60%.", out.Message)
	stored := store.data.completions[Tests][learner.UserID]
	require.Len(t, stored, 2)
	assert.Equal(t, Completion{Position: 2, Name: "Chapter1_test", Score: 60}, stored[1])

	_, err = eng.SubmitTestResult(ctx, learner, "Chapter1_test", 75)
	assert.ErrorIs(t, err, ErrSequenceViolation)
}

func TestSubmitTestResultFailIgnoresSequence(t *testing.T) {
	store := newMemStore()
	eng := NewEngine(store)
	ctx := context.Background()

	out, err := eng.SubmitTestResult(ctx, learner, "Chapter1_test", 59.999)
	require.NoError(t, err)
	assert.False(t, out.Passed)
	assert.Equal(t, "You failed the Chapter 1 test with a score of 59.999%. You must score at least 60% to pass. Try again later.", out.Message)
	assert.Empty(t, store.data.completions[Tests][learner.UserID])

	_, err = eng.SubmitTestResult(ctx, learner, "Chapter1_test", 60)
	assert.ErrorIs(t, err, ErrSequenceViolation)

	_, err = eng.SubmitTestResult(ctx, learner, "Nope_test", 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitTestResultPlacement(t *testing.T) {
	store := newMemStore()
	eng := NewEngine(store)

	out, err := eng.SubmitTestResult(context.Background(), learner, PlacementTest, 72.5)
	require.NoError(t, err)
	assert.True(t, out.Placement)
	assert.Equal(t, Expert, out.Level.Tier)
	assert.Equal(t, "You were set to be a expert because you scored 72.5%.", out.Message)
	assert.Len(t, store.data.completions[Tests][learner.UserID], 9)
}

func TestSubmitTestResultValidation(t *testing.T) {
	eng := NewEngine(newMemStore())
	_, err := eng.SubmitTestResult(context.Background(), learner, "Chapter1_test", 101)
	assert.ErrorIs(t, err, ErrInvalidScore)

	_, err = eng.SubmitTestResult(context.Background(), learner, "", 50)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "test")
}

func TestFormatTestName(t *testing.T) {
	assert.Equal(t, "Chapter 1 test", FormatTestName("Chapter1_test"))
	assert.Equal(t, "Quickstart test", FormatTestName("Quickstart_test"))
	assert.Equal(t, "Basics test", FormatTestName("BasicsTest_test"))
	assert.Equal(t, "Advanced test", FormatTestName("AdvancedTest_test"))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindPersistence, KindOf(errInjected))
	assert.Equal(t, KindSequence, KindOf(ErrDuplicate))
	assert.Equal(t, KindNotFound, KindOf(ErrNotEnoughQuestions))
	assert.Equal(t, KindAuthorization, KindOf(&AuthorizationError{Reason: "x"}))
	assert.Equal(t, "validation failed: a: 1; b: 2", (&ValidationError{Fields: map[string]string{"b": "2", "a": "1"}}).Error())
}
