package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateArtistRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateArtistRequest
		wantErr bool
	}{
		{"name only", CreateArtistRequest{Name: "Alice Smith"}, false},
		{"all fields", CreateArtistRequest{Name: "Alice", Bio: strPtr("Painter"), Email: strPtr("alice@example.com")}, false},
		{"empty name", CreateArtistRequest{}, true},
		{"blank name", CreateArtistRequest{Name: "   "}, true},
		{"name too long", CreateArtistRequest{Name: strings.Repeat("a", MaxNameLength+1)}, true},
		{"bad email", CreateArtistRequest{Name: "Alice", Email: strPtr("not-an-email")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCreateArtistRequest_ToEntityTrims(t *testing.T) {
	a := CreateArtistRequest{Name: "  Alice Smith "}.ToEntity()
	assert.Equal(t, "Alice Smith", a.Name)
	assert.Zero(t, a.ID)
}

func TestCreateCategoryRequest_ToEntity(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	t.Run("defaults to now in UTC", func(t *testing.T) {
		c := CreateCategoryRequest{Name: "Portrait"}.ToEntity(now)
		assert.Equal(t, now.UTC(), c.DateCreated)
		assert.Equal(t, time.UTC, c.DateCreated.Location())
	})

	t.Run("keeps supplied date", func(t *testing.T) {
		created := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
		c := CreateCategoryRequest{Name: "Portrait", DateCreated: &created}.ToEntity(now)
		assert.Equal(t, created, c.DateCreated)
	})
}

func TestUpdateCategoryRequest_ApplyToEntity(t *testing.T) {
	created := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	t.Run("omitted date becomes now", func(t *testing.T) {
		c := &Category{ID: 7, Name: "Old", DateCreated: created, Version: 3}

		UpdateCategoryRequest{ID: 7, Name: " New "}.ApplyToEntity(c, now)

		assert.Equal(t, "New", c.Name)
		assert.Equal(t, now.UTC(), c.DateCreated)
		assert.Equal(t, 3, c.Version)
	})

	t.Run("supplied date replaces stored one", func(t *testing.T) {
		c := &Category{ID: 7, Name: "Old", DateCreated: now}
		local := created.In(time.FixedZone("EST", -5*3600))

		UpdateCategoryRequest{ID: 7, Name: "New", DateCreated: &local}.ApplyToEntity(c, now)

		assert.Equal(t, created, c.DateCreated)
	})
}

func TestCreateArtworkRequest_Validate(t *testing.T) {
	valid := CreateArtworkRequest{Title: "Elegant Script", ArtistID: 1, CategoryID: 1}
	require.NoError(t, valid.Validate())

	missingTitle := valid
	missingTitle.Title = ""
	assert.True(t, IsValidation(missingTitle.Validate()))

	missingArtist := valid
	missingArtist.ArtistID = 0
	assert.True(t, IsValidation(missingArtist.Validate()))

	negativeCategory := valid
	negativeCategory.CategoryID = -2
	assert.True(t, IsValidation(negativeCategory.Validate()))
}

func TestUpdateArtworkRequest_ApplyToEntity(t *testing.T) {
	posted := time.Date(2021, 5, 5, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a := &Artwork{ID: 4, Title: "Old", DatePosted: posted, ArtistID: 1, CategoryID: 1, Version: 2}

	UpdateArtworkRequest{
		ID:          4,
		Title:       "New",
		Description: strPtr("ink"),
		ArtistID:    2,
		CategoryID:  3,
	}.ApplyToEntity(a, now)

	assert.Equal(t, "New", a.Title)
	assert.Equal(t, now, a.DatePosted)
	assert.Equal(t, int64(2), a.ArtistID)
	assert.Equal(t, int64(3), a.CategoryID)
	require.NotNil(t, a.Description)
	assert.Equal(t, "ink", *a.Description)
	assert.Equal(t, int64(4), a.ID)
}

func TestEntityValidate(t *testing.T) {
	assert.True(t, IsValidation(Artist{}.Validate()))
	assert.True(t, IsValidation(Category{Name: "x"}.Validate()), "zero date_created is rejected")
	assert.NoError(t, Category{Name: "x", DateCreated: time.Now()}.Validate())
	assert.True(t, IsValidation(Artwork{Title: "t", DatePosted: time.Now(), ArtistID: 1}.Validate()))
}
