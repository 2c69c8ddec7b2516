package entity

import "time"

// Project representa una obra (proyecto de construcción).
type Project struct {
	ID        string
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
