package course

import "gorm.io/gorm"

// Chapter is one item of the ordered chapter sequence. Position starts at 1.
type Chapter struct {
	gorm.Model
	Position int    `json:"position" gorm:"uniqueIndex;not null"`
	Name     string `json:"name" gorm:"uniqueIndex;size:100;not null"`
}

// Test is one item of the ordered chapter-test sequence. Position starts at 1.
type Test struct {
	gorm.Model
	Position int    `json:"position" gorm:"uniqueIndex;not null"`
	Name     string `json:"name" gorm:"uniqueIndex;size:100;not null"`
}
