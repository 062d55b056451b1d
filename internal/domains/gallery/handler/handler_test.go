package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-backend/internal/domains/gallery/handler"
	"gallery-backend/internal/domains/gallery/repository/repotest"
	"gallery-backend/internal/domains/gallery/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repotest.NewSQLiteStore(t)
	coordinator := service.NewCoordinator(store, repotest.DefaultCategoryID)
	query := service.NewQueryService(store)

	router := gin.New()
	v1 := router.Group("/api/v1")
	handler.NewArtistHandler(coordinator, query).RegisterRoutes(v1)
	handler.NewCategoryHandler(coordinator, query).RegisterRoutes(v1)
	handler.NewArtworkHandler(coordinator, query).RegisterRoutes(v1)
	return router
}

func do(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

// create posts body and returns the id from the echoed entity.
func create(t *testing.T, router *gin.Engine, path string, body interface{}) int64 {
	t.Helper()

	w, env := do(t, router, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, path+"/"+strconv.FormatInt(created.ID, 10), w.Header().Get("Location"))
	return created.ID
}

func TestCreateAndProjectArtwork(t *testing.T) {
	router := setupRouter(t)

	artistID := create(t, router, "/api/v1/artists", gin.H{"name": "Alice Smith"})
	categoryID := create(t, router, "/api/v1/categories", gin.H{"name": "Portrait"})
	artworkID := create(t, router, "/api/v1/artworks", gin.H{
		"title":       "Elegant Script",
		"description": "ink",
		"artist_id":   artistID,
		"category_id": categoryID,
	})

	w, env := do(t, router, http.MethodGet, "/api/v1/artworks", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var artworks []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &artworks))
	require.Len(t, artworks, 1)
	assert.EqualValues(t, artworkID, artworks[0]["id"])
	assert.Equal(t, "Alice Smith", artworks[0]["artist_name"])
	assert.Equal(t, "Portrait", artworks[0]["category_name"])

	w, env = do(t, router, http.MethodGet, "/api/v1/artists/"+strconv.FormatInt(artistID, 10), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var artist map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &artist))
	assert.EqualValues(t, 1, artist["total_artworks"])
	assert.Equal(t, []interface{}{"Elegant Script"}, artist["artwork_titles"])

	w, env = do(t, router, http.MethodGet, "/api/v1/artists/"+strconv.FormatInt(artistID, 10)+"/artworks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &artworks))
	assert.Len(t, artworks, 1)
}

func TestCreate_Errors(t *testing.T) {
	router := setupRouter(t)

	t.Run("missing name", func(t *testing.T) {
		w, env := do(t, router, http.MethodPost, "/api/v1/artists", gin.H{"bio": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Contains(t, string(env.Error.Details), "name")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unresolved reference", func(t *testing.T) {
		w, env := do(t, router, http.MethodPost, "/api/v1/artworks", gin.H{
			"title": "Orphan", "artist_id": 999, "category_id": 1,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "ARTIST_REFERENCE_NOT_FOUND", env.Error.Code)
	})
}

func TestUpdateAndDelete(t *testing.T) {
	router := setupRouter(t)
	id := create(t, router, "/api/v1/artists", gin.H{"name": "Alice"})
	path := "/api/v1/artists/" + strconv.FormatInt(id, 10)

	t.Run("mismatch", func(t *testing.T) {
		w, env := do(t, router, http.MethodPut, "/api/v1/artists/999", gin.H{"id": id, "name": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ID_MISMATCH", env.Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		w, env := do(t, router, http.MethodPut, "/api/v1/artists/abc", gin.H{"id": id, "name": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_ID", env.Error.Code)
	})

	t.Run("update", func(t *testing.T) {
		w, _ := do(t, router, http.MethodPut, path, gin.H{"id": id, "name": "Alice Smith", "version": 1})
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Zero(t, w.Body.Len())
	})

	t.Run("stale version", func(t *testing.T) {
		w, env := do(t, router, http.MethodPut, path, gin.H{"id": id, "name": "Lost", "version": 1})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "VERSION_CONFLICT", env.Error.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w, _ := do(t, router, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, env := do(t, router, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "ARTIST_NOT_FOUND", env.Error.Code)

		w, _ = do(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLinkAndUnlink(t *testing.T) {
	router := setupRouter(t)

	artistID := create(t, router, "/api/v1/artists", gin.H{"name": "Alice"})
	portraitID := create(t, router, "/api/v1/categories", gin.H{"name": "Portrait"})
	abstractID := create(t, router, "/api/v1/categories", gin.H{"name": "Abstract"})
	artworkID := create(t, router, "/api/v1/artworks", gin.H{
		"title": "Elegant Script", "artist_id": artistID, "category_id": portraitID,
	})

	query := func(a, c int64) string {
		return "?artworkId=" + strconv.FormatInt(a, 10) + "&categoryId=" + strconv.FormatInt(c, 10)
	}

	w, env := do(t, router, http.MethodPost, "/api/v1/artworks/link"+query(artworkID, abstractID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Artwork successfully linked to category."}`, string(env.Data))

	w, _ = do(t, router, http.MethodPost, "/api/v1/artworks/link"+query(artworkID, abstractID), nil)
	assert.Equal(t, http.StatusOK, w.Code, "linking twice is idempotent")

	w, env = do(t, router, http.MethodPost, "/api/v1/artworks/link"+query(999, abstractID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "artwork not found", env.Error.Message)

	w, _ = do(t, router, http.MethodPost, "/api/v1/artworks/link?artworkId=x&categoryId=1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = do(t, router, http.MethodDelete, "/api/v1/artworks/unlink"+query(artworkID, portraitID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ARTWORK_NOT_LINKED", env.Error.Code)

	w, env = do(t, router, http.MethodDelete, "/api/v1/artworks/unlink"+query(artworkID, abstractID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var msg struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &msg))
	assert.Contains(t, msg.Message, "unlinked from Category "+strconv.FormatInt(abstractID, 10))

	w, env = do(t, router, http.MethodGet, "/api/v1/artworks/category/"+strconv.FormatInt(repotest.DefaultCategoryID, 10), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["Elegant Script"]`, string(env.Data))

	w, env = do(t, router, http.MethodGet, "/api/v1/artworks/category/"+strconv.FormatInt(portraitID, 10), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "no artworks found for this category", env.Error.Message)
}

func TestNonPositiveIDsAreNotFound(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		code   string
	}{
		{"delete artist zero", http.MethodDelete, "/api/v1/artists/0", "ARTIST_NOT_FOUND"},
		{"get artist zero", http.MethodGet, "/api/v1/artists/0", "ARTIST_NOT_FOUND"},
		{"delete category negative", http.MethodDelete, "/api/v1/categories/-3", "CATEGORY_NOT_FOUND"},
		{"get category negative", http.MethodGet, "/api/v1/categories/-3", "CATEGORY_NOT_FOUND"},
		{"get artwork zero", http.MethodGet, "/api/v1/artworks/0", "ARTWORK_NOT_FOUND"},
		{"delete artwork zero", http.MethodDelete, "/api/v1/artworks/0", "ARTWORK_NOT_FOUND"},
		{"link artwork zero", http.MethodPost, "/api/v1/artworks/link?artworkId=0&categoryId=1", "ARTWORK_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, router, tt.method, tt.path, nil)
			assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}
