package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Category groups artworks. Every artwork belongs to exactly one category.
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	DateCreated time.Time `json:"date_created" db:"date_created"`
	Version     int       `json:"version" db:"version"`
}

func (c Category) Validate() error {
	return NewValidationError(validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required.Error("name is required"), validation.Length(1, MaxNameLength)),
		validation.Field(&c.DateCreated, validation.Required.Error("date_created is required")),
	))
}

type CategoryView struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	DateCreated   time.Time `json:"date_created"`
	Version       int       `json:"version"`
	TotalArtworks int       `json:"total_artworks"`
	ArtworkTitles []string  `json:"artwork_titles"`
}
