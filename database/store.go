package database

import (
	"context"
	"errors"

	courseModels "pythonista/models/course"
	"pythonista/progress"

	"gorm.io/gorm"
)

// GormStore is the gorm backed progress.Store. All values reach the database as
// bound parameters.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return progress.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return progress.ErrDuplicate
	default:
		return err
	}
}

func catalogModel(seq progress.Sequence) interface{} {
	if seq == progress.Tests {
		return &courseModels.Test{}
	}
	return &courseModels.Chapter{}
}

func (s *GormStore) Position(ctx context.Context, seq progress.Sequence, name string) (int, error) {
	var row struct{ Position int }
	err := s.db.WithContext(ctx).Model(catalogModel(seq)).
		Select("position").
		Where("name = ?", name).
		Take(&row).Error
	if err != nil {
		return 0, translate(err)
	}
	return row.Position, nil
}

func (s *GormStore) Catalog(ctx context.Context, seq progress.Sequence) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(catalogModel(seq)).
		Order("position").
		Pluck("name", &names).Error
	return names, translate(err)
}

func (s *GormStore) Completions(ctx context.Context, seq progress.Sequence, userID uint) ([]progress.Completion, error) {
	db := s.db.WithContext(ctx)
	var out []progress.Completion
	if seq == progress.Tests {
		var rows []courseModels.CompletedTest
		if err := db.Where("user_id = ?", userID).Order("position").Find(&rows).Error; err != nil {
			return nil, translate(err)
		}
		for _, r := range rows {
			out = append(out, progress.Completion{Position: r.Position, Name: r.TestName, Score: r.Score})
		}
		return out, nil
	}
	var rows []courseModels.CompletedChapter
	if err := db.Where("user_id = ?", userID).Order("position").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	for _, r := range rows {
		out = append(out, progress.Completion{Position: r.Position, Name: r.ChapterName})
	}
	return out, nil
}

func (s *GormStore) InsertCompletion(ctx context.Context, seq progress.Sequence, userID uint, c progress.Completion) error {
	var row interface{}
	if seq == progress.Tests {
		row = &courseModels.CompletedTest{UserID: userID, Position: c.Position, TestName: c.Name, Score: c.Score}
	} else {
		row = &courseModels.CompletedChapter{UserID: userID, Position: c.Position, ChapterName: c.Name}
	}
	return translate(s.db.WithContext(ctx).Create(row).Error)
}

func (s *GormStore) HasLevelRecord(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&courseModels.LevelRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, translate(err)
}

func (s *GormStore) InsertLevelRecord(ctx context.Context, userID uint, status progress.LevelStatus) error {
	rec := courseModels.LevelRecord{UserID: userID, Status: string(status)}
	return translate(s.db.WithContext(ctx).Create(&rec).Error)
}

func toQuestion(id uint, testName string, f courseModels.QuestionFields) progress.Question {
	return progress.Question{
		ID:         id,
		Type:       f.QuestionType,
		Prompt:     f.Question,
		Options:    f.Options(),
		Chapter:    f.ChapterName,
		Subchapter: f.Subchapter,
		TestName:   testName,
	}
}

// Questions returns the questions of testName, or the whole placement bank, in
// stored order.
func (s *GormStore) Questions(ctx context.Context, bank progress.Bank, testName string) ([]progress.Question, error) {
	db := s.db.WithContext(ctx)
	var out []progress.Question
	if bank == progress.PlacementBank {
		var rows []courseModels.LevelQuestion
		if err := db.Order("id").Find(&rows).Error; err != nil {
			return nil, translate(err)
		}
		for _, r := range rows {
			out = append(out, toQuestion(r.ID, progress.PlacementTest, r.QuestionFields))
		}
		return out, nil
	}
	var rows []courseModels.TestQuestion
	if err := db.Where("test_name = ?", testName).Order("id").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	for _, r := range rows {
		out = append(out, toQuestion(r.ID, r.TestName, r.QuestionFields))
	}
	return out, nil
}

func (s *GormStore) AnswerKey(ctx context.Context, bank progress.Bank, questionID uint) (progress.AnswerKey, error) {
	var f courseModels.QuestionFields
	var err error
	if bank == progress.PlacementBank {
		var q courseModels.LevelQuestion
		err = s.db.WithContext(ctx).Where("id = ?", questionID).First(&q).Error
		f = q.QuestionFields
	} else {
		var q courseModels.TestQuestion
		err = s.db.WithContext(ctx).Where("id = ?", questionID).First(&q).Error
		f = q.QuestionFields
	}
	if err != nil {
		return progress.AnswerKey{}, translate(err)
	}
	return progress.AnswerKey{RightAnswer: f.RightAnswer, Chapter: f.ChapterName, Subchapter: f.Subchapter}, nil
}

// Transaction runs fn inside a database transaction; any error rolls it back.
func (s *GormStore) Transaction(ctx context.Context, fn func(tx progress.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// CreateQuestion stores a chapter-test question authored by a teacher.
func (s *GormStore) CreateQuestion(ctx context.Context, q *courseModels.TestQuestion) error {
	return translate(s.db.WithContext(ctx).Create(q).Error)
}
