package progress

import (
	"context"
	"errors"
	"sort"
)

var errInjected = errors.New("injected failure")

type memData struct {
	completions map[Sequence]map[uint][]Completion
	levels      map[uint][]LevelStatus
}

func (d memData) clone() memData {
	out := memData{
		completions: map[Sequence]map[uint][]Completion{Chapters: {}, Tests: {}},
		levels:      map[uint][]LevelStatus{},
	}
	for seq, byUser := range d.completions {
		for uid, cs := range byUser {
			out.completions[seq][uid] = append([]Completion(nil), cs...)
		}
	}
	for uid, ls := range d.levels {
		out.levels[uid] = append([]LevelStatus(nil), ls...)
	}
	return out
}

// memStore is an in-memory Store. Transactions run against a copy that replaces
// the committed data only when the callback succeeds.
type memStore struct {
	catalog   map[Sequence][]string
	questions map[Bank][]Question
	answers   map[Bank]map[uint]AnswerKey
	data      memData

	// failInsertAfter makes the n-th InsertCompletion call (1-based) fail.
	failInsertAfter int
	inserts         int
	failLevel       bool
}

func newMemStore() *memStore {
	chapters := []string{"Quickstart", "Chapter1", "Chapter2", "Chapter3", "BasicsTest",
		"Chapter4", "Chapter5", "Chapter6", "AdvancedTest", "Chapter7"}
	tests := make([]string, len(chapters))
	for i, c := range chapters {
		tests[i] = c + TestSuffix
	}
	return &memStore{
		catalog:   map[Sequence][]string{Chapters: chapters, Tests: tests},
		questions: map[Bank][]Question{},
		answers:   map[Bank]map[uint]AnswerKey{ChapterBank: {}, PlacementBank: {}},
		data:      memData{}.clone(),
	}
}

func (m *memStore) addQuestions(bank Bank, testName string, n int) {
	base := uint(len(m.questions[bank]))
	for i := 0; i < n; i++ {
		id := base + uint(i) + 1
		m.questions[bank] = append(m.questions[bank], Question{ID: id, TestName: testName, Prompt: "q"})
	}
}

func (m *memStore) Position(_ context.Context, seq Sequence, name string) (int, error) {
	for i, n := range m.catalog[seq] {
		if n == name {
			return i + 1, nil
		}
	}
	return 0, ErrNotFound
}

func (m *memStore) Catalog(_ context.Context, seq Sequence) ([]string, error) {
	return append([]string(nil), m.catalog[seq]...), nil
}

func (m *memStore) Completions(_ context.Context, seq Sequence, userID uint) ([]Completion, error) {
	cs := append([]Completion(nil), m.data.completions[seq][userID]...)
	sort.Slice(cs, func(i, j int) bool { return cs[i].Position < cs[j].Position })
	return cs, nil
}

func (m *memStore) InsertCompletion(_ context.Context, seq Sequence, userID uint, c Completion) error {
	m.inserts++
	if m.failInsertAfter > 0 && m.inserts >= m.failInsertAfter {
		return errInjected
	}
	for _, existing := range m.data.completions[seq][userID] {
		if existing.Position == c.Position {
			return ErrDuplicate
		}
	}
	m.data.completions[seq][userID] = append(m.data.completions[seq][userID], c)
	return nil
}

func (m *memStore) HasLevelRecord(_ context.Context, userID uint) (bool, error) {
	return len(m.data.levels[userID]) > 0, nil
}

func (m *memStore) InsertLevelRecord(_ context.Context, userID uint, status LevelStatus) error {
	if m.failLevel {
		return errInjected
	}
	m.data.levels[userID] = append(m.data.levels[userID], status)
	return nil
}

func (m *memStore) Questions(_ context.Context, bank Bank, testName string) ([]Question, error) {
	var out []Question
	for _, q := range m.questions[bank] {
		if bank == PlacementBank || q.TestName == testName {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memStore) AnswerKey(_ context.Context, bank Bank, questionID uint) (AnswerKey, error) {
	key, ok := m.answers[bank][questionID]
	if !ok {
		return AnswerKey{}, ErrNotFound
	}
	return key, nil
}

func (m *memStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	committed := m.data
	m.data = committed.clone()
	if err := fn(m); err != nil {
		m.data = committed
		return err
	}
	return nil
}

func (m *memStore) positions(seq Sequence, userID uint) []int {
	cs, _ := m.Completions(context.Background(), seq, userID)
	return positions(cs)
}
