package entity

import (
	"time"
)

type Movie struct {
	Base
	Title           string    `db:"title"`
	Description     *string   `db:"description"`
	DurationMinutes int       `db:"duration_minutes"`
	ReleaseDate     time.Time `db:"release_date"`
	PosterURL       *string   `db:"poster_url"`
	TrailerURL      *string   `db:"trailer_url"`
	Rating          float64   `db:"rating"`
	IsActive        bool      `db:"is_active"`
}
