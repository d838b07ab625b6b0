package model

import "time"

type Student struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Notes     string    `json:"notes"` // freeform, last-write-wins
	CreatedAt time.Time `json:"created_at"`
}
