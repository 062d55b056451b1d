package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ========================================
// ARTIST DTOs
// ========================================

// CreateArtistRequest - POST /v1/artists
type CreateArtistRequest struct {
	Name  string  `json:"name"`
	Bio   *string `json:"bio,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (r CreateArtistRequest) Validate() error {
	return NewValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.By(notBlank("name")),
			validation.Length(1, MaxNameLength),
		),
		validation.Field(&r.Bio, validation.Length(0, MaxBioLength)),
		validation.Field(&r.Email, is.EmailFormat.Error("invalid email format")),
	))
}

func (r CreateArtistRequest) ToEntity() *Artist {
	return &Artist{
		Name:  strings.TrimSpace(r.Name),
		Bio:   r.Bio,
		Email: r.Email,
	}
}

// UpdateArtistRequest - PUT /v1/artists/:id
// Carries the full set of mutable fields. ID must match the path id.
// Version is optional; when present it must equal the stored version.
type UpdateArtistRequest struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Bio     *string `json:"bio,omitempty"`
	Email   *string `json:"email,omitempty"`
	Version *int    `json:"version,omitempty"`
}

func (r UpdateArtistRequest) Validate() error {
	return CreateArtistRequest{Name: r.Name, Bio: r.Bio, Email: r.Email}.Validate()
}

// ApplyToEntity replaces every mutable field of a.
func (r UpdateArtistRequest) ApplyToEntity(a *Artist) {
	a.Name = strings.TrimSpace(r.Name)
	a.Bio = r.Bio
	a.Email = r.Email
}

// ========================================
// CATEGORY DTOs
// ========================================

// CreateCategoryRequest - POST /v1/categories
// DateCreated defaults to the current time.
type CreateCategoryRequest struct {
	Name        string     `json:"name"`
	DateCreated *time.Time `json:"date_created,omitempty"`
}

func (r CreateCategoryRequest) Validate() error {
	return NewValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.By(notBlank("name")),
			validation.Length(1, MaxNameLength),
		),
	))
}

func (r CreateCategoryRequest) ToEntity(now time.Time) *Category {
	created := now
	if r.DateCreated != nil && !r.DateCreated.IsZero() {
		created = *r.DateCreated
	}
	return &Category{
		Name:        strings.TrimSpace(r.Name),
		DateCreated: created.UTC(),
	}
}

// UpdateCategoryRequest - PUT /v1/categories/:id
// The payload replaces every mutable field; an omitted DateCreated becomes now,
// as on create.
type UpdateCategoryRequest struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	DateCreated *time.Time `json:"date_created,omitempty"`
	Version     *int       `json:"version,omitempty"`
}

func (r UpdateCategoryRequest) Validate() error {
	return CreateCategoryRequest{Name: r.Name}.Validate()
}

func (r UpdateCategoryRequest) ApplyToEntity(c *Category, now time.Time) {
	created := now
	if r.DateCreated != nil && !r.DateCreated.IsZero() {
		created = *r.DateCreated
	}
	c.Name = strings.TrimSpace(r.Name)
	c.DateCreated = created.UTC()
}

// ========================================
// ARTWORK DTOs
// ========================================

// CreateArtworkRequest - POST /v1/artworks
type CreateArtworkRequest struct {
	Title       string     `json:"title"`
	DatePosted  *time.Time `json:"date_posted,omitempty"`
	Description *string    `json:"description,omitempty"`
	ArtistID    int64      `json:"artist_id"`
	CategoryID  int64      `json:"category_id"`
}

func (r CreateArtworkRequest) Validate() error {
	return NewValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.By(notBlank("title")),
			validation.Length(1, MaxTitleLength),
		),
		validation.Field(&r.Description, validation.Length(0, MaxDescLength)),
		validation.Field(&r.ArtistID, validation.Required.Error("artist_id is required"), validation.Min(int64(1))),
		validation.Field(&r.CategoryID, validation.Required.Error("category_id is required"), validation.Min(int64(1))),
	))
}

func (r CreateArtworkRequest) ToEntity(now time.Time) *Artwork {
	posted := now
	if r.DatePosted != nil && !r.DatePosted.IsZero() {
		posted = *r.DatePosted
	}
	return &Artwork{
		Title:       strings.TrimSpace(r.Title),
		DatePosted:  posted.UTC(),
		Description: r.Description,
		ArtistID:    r.ArtistID,
		CategoryID:  r.CategoryID,
	}
}

// UpdateArtworkRequest - PUT /v1/artworks/:id
// Like UpdateCategoryRequest, an omitted DatePosted becomes now.
type UpdateArtworkRequest struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	DatePosted  *time.Time `json:"date_posted,omitempty"`
	Description *string    `json:"description,omitempty"`
	ArtistID    int64      `json:"artist_id"`
	CategoryID  int64      `json:"category_id"`
	Version     *int       `json:"version,omitempty"`
}

func (r UpdateArtworkRequest) Validate() error {
	return CreateArtworkRequest{
		Title:       r.Title,
		Description: r.Description,
		ArtistID:    r.ArtistID,
		CategoryID:  r.CategoryID,
	}.Validate()
}

func (r UpdateArtworkRequest) ApplyToEntity(a *Artwork, now time.Time) {
	posted := now
	if r.DatePosted != nil && !r.DatePosted.IsZero() {
		posted = *r.DatePosted
	}
	a.Title = strings.TrimSpace(r.Title)
	a.DatePosted = posted.UTC()
	a.Description = r.Description
	a.ArtistID = r.ArtistID
	a.CategoryID = r.CategoryID
}

// ========================================
// LINK / UNLINK
// ========================================

// LinkResponse is the body of link/unlink answers.
type LinkResponse struct {
	Message string `json:"message"`
}

// notBlank rejects values made only of whitespace.
func notBlank(field string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError("validation_blank", field+" must not be blank")
		}
		return nil
	}
}
