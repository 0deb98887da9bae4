package request

type CreateMovieRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=255"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes int      `json:"duration_minutes" validate:"required,gt=0"`
	ReleaseDate     string   `json:"release_date" validate:"required"` // YYYY-MM-DD
	PosterURL       *string  `json:"poster_url,omitempty" validate:"omitempty,url"`
	TrailerURL      *string  `json:"trailer_url,omitempty" validate:"omitempty,url"`
	Rating          float64  `json:"rating" validate:"min=0,max=10"`
	GenreIDs        []string `json:"genre_ids,omitempty" validate:"omitempty,dive,uuid4"`
}

type UpdateMovieRequest struct {
	Title           *string  `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
	ReleaseDate     *string  `json:"release_date,omitempty"`
	PosterURL       *string  `json:"poster_url,omitempty" validate:"omitempty,url"`
	TrailerURL      *string  `json:"trailer_url,omitempty" validate:"omitempty,url"`
	Rating          *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
	IsActive        *bool    `json:"is_active,omitempty"`
	GenreIDs        []string `json:"genre_ids,omitempty" validate:"omitempty,dive,uuid4"`
}

type CreateGenreRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
