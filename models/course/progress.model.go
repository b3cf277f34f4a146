package course

import "gorm.io/gorm"

// CompletedChapter marks a chapter as done by a user. At most one row per
// (user, position).
type CompletedChapter struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_completed_chapter_user_position,priority:1"`
	Position    int    `json:"position" gorm:"not null;uniqueIndex:idx_completed_chapter_user_position,priority:2"`
	ChapterName string `json:"chapter_name" gorm:"size:100;not null"`
}

// CompletedTest is a passed chapter test with its score.
type CompletedTest struct {
	gorm.Model
	UserID   uint    `json:"user_id" gorm:"not null;uniqueIndex:idx_completed_test_user_position,priority:1"`
	Position int     `json:"position" gorm:"not null;uniqueIndex:idx_completed_test_user_position,priority:2"`
	TestName string  `json:"test_name" gorm:"size:100;not null"`
	Score    float64 `json:"score"`
}

// LevelRecord is written when a user finishes or declines the placement test.
type LevelRecord struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"index;not null"`
	Status string `json:"status" gorm:"size:20;not null"` // finished, cancel
}
