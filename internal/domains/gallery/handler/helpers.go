package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gallery-backend/internal/domains/gallery/model"
	"gallery-backend/internal/shared/response"
)

// parseID reads an integer id from the path or, when fromQuery is set, from
// the query string. Zero and negative ids parse; they name no entity and the
// service answers not-found for them.
func parseID(c *gin.Context, name string, fromQuery bool) (int64, error) {
	raw := c.Param(name)
	if fromQuery {
		raw = c.Query(name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, model.ErrInvalidID
	}
	return id, nil
}

// location builds the find-by-id URL of a resource created by a POST on the
// collection path.
func location(c *gin.Context, id int64) string {
	return strings.TrimSuffix(c.Request.URL.Path, "/") + "/" + strconv.FormatInt(id, 10)
}

// handleError writes the error envelope for err.
func handleError(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)
	code := model.ToErrorCode(err)

	var ve *model.ValidationError
	if errors.As(err, &ve) {
		response.ErrorWithDetails(c, status, code, "validation failed", ve.Err)
		return
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("[HANDLER] Request failed")
	}
	response.ErrorResponse(c, status, code, err.Error())
}

// bindJSON decodes the body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}
