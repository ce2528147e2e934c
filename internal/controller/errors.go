package controller

import (
	"errors"
	"loki-mcp/internal/apperror"
	"loki-mcp/internal/model"
	"loki-mcp/internal/tools"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// statusForError maps an operation error to the HTTP status returned to callers.
func statusForError(err error) int {
	if errors.Is(err, tools.ErrUnknownTool) {
		return http.StatusNotFound
	}
	switch apperror.KindOf(err) {
	case apperror.KindInvalidInput:
		return http.StatusBadRequest
	case apperror.KindBackendUnreachable, apperror.KindBackendError, apperror.KindParseError:
		return http.StatusBadGateway
	case apperror.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondError(ctx *gin.Context, err error) {
	status := statusForError(err)
	kind := string(apperror.KindOf(err))
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Str("kind", kind).Msg("Request failed")
	} else {
		log.Warn().Err(err).Str("path", ctx.FullPath()).Str("kind", kind).Msg("Request rejected")
	}
	ctx.JSON(status, model.NewErrorResponse(kind, err.Error()))
}
