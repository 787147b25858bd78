package models

import "time"

// Subject is the master subject record. Code is the human-meaningful natural
// key; historical migrations left duplicate codes across rows, which the
// resolution pipeline treats as a data-quality defect rather than a feature.
type Subject struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Code           string    `db:"code" json:"code"`
	AcademicYearID *string   `db:"academic_year_id" json:"academic_year_id,omitempty"`
	Semester       *string   `db:"semester" json:"semester,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
