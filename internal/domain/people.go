package domain

import "time"

// Actor represents a cast member referenced by movies.
type Actor struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Biography string    `json:"biography"`
	MovieID   string    `json:"movie_id,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Producer represents a production credit referenced by movies.
type Producer struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Biography string    `json:"biography"`
	MovieID   string    `json:"movie_id,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cinema represents a venue where a movie is shown.
type Cinema struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MovieID   string    `json:"movie_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
