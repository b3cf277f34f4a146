package course

import "gorm.io/gorm"

// QuestionFields are the columns shared by both question banks.
type QuestionFields struct {
	QuestionType string `json:"question_type" gorm:"size:50"` // MULTIPLE, TEXT
	Question     string `json:"question" gorm:"type:text;not null"`
	Multiple1    string `json:"multiple1"`
	Multiple2    string `json:"multiple2"`
	Multiple3    string `json:"multiple3"`
	Multiple4    string `json:"multiple4"`
	RightAnswer  string `json:"-" gorm:"not null"`
	ChapterName  string `json:"chapter_name" gorm:"size:100"`
	Subchapter   string `json:"subchapter" gorm:"size:100"`
}

// Options returns the non-empty multiple choice options in order.
func (q QuestionFields) Options() []string {
	var out []string
	for _, o := range []string{q.Multiple1, q.Multiple2, q.Multiple3, q.Multiple4} {
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

// TestQuestion belongs to a chapter test.
type TestQuestion struct {
	gorm.Model
	TestName string `json:"test_name" gorm:"index;size:100;not null"`
	QuestionFields
}

// LevelQuestion belongs to the placement test bank.
type LevelQuestion struct {
	gorm.Model
	QuestionFields
}
