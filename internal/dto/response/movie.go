package response

import (
	"time"

	"cinema-tickets/internal/data/entity"
)

type GenreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MovieResponse struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     *string         `json:"description,omitempty"`
	DurationMinutes int             `json:"duration_minutes"`
	ReleaseDate     string          `json:"release_date"`
	PosterURL       *string         `json:"poster_url,omitempty"`
	TrailerURL      *string         `json:"trailer_url,omitempty"`
	Rating          float64         `json:"rating"`
	IsActive        bool            `json:"is_active"`
	Genres          []GenreResponse `json:"genres"`
	CreatedAt       time.Time       `json:"created_at"`
}

func GenreToResponse(genre *entity.Genre) GenreResponse {
	return GenreResponse{
		ID:   genre.ID.String(),
		Name: genre.Name,
	}
}

func MovieToResponse(movie *entity.Movie, genres []*entity.Genre) MovieResponse {
	genreResponses := make([]GenreResponse, len(genres))
	for i, genre := range genres {
		genreResponses[i] = GenreToResponse(genre)
	}

	return MovieResponse{
		ID:              movie.ID.String(),
		Title:           movie.Title,
		Description:     movie.Description,
		DurationMinutes: movie.DurationMinutes,
		ReleaseDate:     movie.ReleaseDate.Format("2006-01-02"),
		PosterURL:       movie.PosterURL,
		TrailerURL:      movie.TrailerURL,
		Rating:          movie.Rating,
		IsActive:        movie.IsActive,
		Genres:          genreResponses,
		CreatedAt:       movie.CreatedAt,
	}
}
