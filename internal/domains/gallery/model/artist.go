package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Constants for validation
const (
	MaxNameLength  = 255
	MaxTitleLength = 255
	MaxBioLength   = 5000
	MaxDescLength  = 5000
)

// Artist is the persisted artist row. Artworks point at it through
// Artwork.ArtistID; the artist holds no back-reference.
type Artist struct {
	ID    int64   `json:"id" db:"id"`
	Name  string  `json:"name" db:"name"`
	Bio   *string `json:"bio,omitempty" db:"bio"`
	Email *string `json:"email,omitempty" db:"email"`

	// Incremented on each update, used for optimistic locking
	Version int `json:"version" db:"version"`
}

// Validate checks the fields the store requires before insert or replace.
func (a Artist) Validate() error {
	return NewValidationError(validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.Required.Error("name is required"), validation.Length(1, MaxNameLength)),
		validation.Field(&a.Bio, validation.Length(0, MaxBioLength)),
		validation.Field(&a.Email, is.EmailFormat.Error("invalid email format")),
	))
}

// ArtistView is the read projection: the artist plus the titles of the
// artworks that reference it.
type ArtistView struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Bio           *string  `json:"bio,omitempty"`
	Email         *string  `json:"email,omitempty"`
	Version       int      `json:"version"`
	TotalArtworks int      `json:"total_artworks"`
	ArtworkTitles []string `json:"artwork_titles"`
}
