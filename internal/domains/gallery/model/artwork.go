package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Artwork references exactly one Artist and one Category by id.
type Artwork struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	DatePosted  time.Time `json:"date_posted" db:"date_posted"`
	Description *string   `json:"description,omitempty" db:"description"`
	ArtistID    int64     `json:"artist_id" db:"artist_id"`
	CategoryID  int64     `json:"category_id" db:"category_id"`
	Version     int       `json:"version" db:"version"`
}

func (a Artwork) Validate() error {
	return NewValidationError(validation.ValidateStruct(&a,
		validation.Field(&a.Title, validation.Required.Error("title is required"), validation.Length(1, MaxTitleLength)),
		validation.Field(&a.DatePosted, validation.Required.Error("date_posted is required")),
		validation.Field(&a.Description, validation.Length(0, MaxDescLength)),
		validation.Field(&a.ArtistID, validation.Required.Error("artist_id is required"), validation.Min(int64(1))),
		validation.Field(&a.CategoryID, validation.Required.Error("category_id is required"), validation.Min(int64(1))),
	))
}

// ArtworkView joins the artwork with the names of its artist and category.
// A name is empty when the referenced row has since been deleted.
type ArtworkView struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	DatePosted   time.Time `json:"date_posted"`
	Description  *string   `json:"description,omitempty"`
	ArtistID     int64     `json:"artist_id"`
	ArtistName   string    `json:"artist_name"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Version      int       `json:"version"`
}
