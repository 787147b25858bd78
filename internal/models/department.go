package models

import "time"

// Department represents an academic department of the institution.
type Department struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Abbreviation string    `db:"abbreviation" json:"abbreviation"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
