package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"vowboard.io/planner-gateway/app/domain/auth"
	"vowboard.io/planner-gateway/app/domain/board"
	"vowboard.io/planner-gateway/app/domain/client"
	"vowboard.io/planner-gateway/app/domain/document"
	"vowboard.io/planner-gateway/app/domain/optimistic"
	"vowboard.io/planner-gateway/app/domain/ordering"
	"vowboard.io/planner-gateway/app/domain/preference"
	"vowboard.io/planner-gateway/app/domain/presentation"
	"vowboard.io/planner-gateway/app/domain/profile"
	"vowboard.io/planner-gateway/app/domain/task"
	"vowboard.io/planner-gateway/app/domain/taskgroup"
	"vowboard.io/planner-gateway/app/domain/viewstate"
	"vowboard.io/planner-gateway/app/domain/wedding"
	"vowboard.io/planner-gateway/app/infrastructure/supabase"
	"vowboard.io/planner-gateway/app/interfaces/http/responses"
)

var notFound = []error{
	client.ErrClientNotFound,
	wedding.ErrWeddingNotFound,
	task.ErrTaskNotFound,
	taskgroup.ErrTaskGroupNotFound,
	document.ErrDocumentNotFound,
	profile.ErrProfileNotFound,
	presentation.ErrSessionNotFound,
	board.ErrItemNotFound,
}

var badRequest = []error{
	client.ErrNameEmpty,
	client.ErrInvalidEmail,
	wedding.ErrTitleEmpty,
	wedding.ErrClientRequired,
	wedding.ErrInvalidDate,
	wedding.ErrNegativeGuests,
	task.ErrTitleEmpty,
	taskgroup.ErrNameEmpty,
	document.ErrNameEmpty,
	document.ErrInvalidURL,
	ordering.ErrInvalidDrop,
	preference.ErrUnsupportedLanguage,
	presentation.ErrIndexOutOfRange,
	presentation.ErrEmptyDeck,
	presentation.ErrUnknownTrigger,
	presentation.ErrUnknownEvent,
	viewstate.ErrSessionRequired,
	viewstate.ErrInvalidPosition,
	viewstate.ErrUnknownReason,
}

var conflict = []error{
	ordering.ErrAlreadyDragging,
	ordering.ErrNotDragging,
}

// StatusOf maps a service error to the HTTP status it is reported with.
// Anything unrecognised is treated as a failure of the remote backend.
func StatusOf(err error) int {
	switch {
	case matches(err, notFound):
		return http.StatusNotFound
	case matches(err, badRequest):
		return http.StatusBadRequest
	case matches(err, conflict):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case supabase.IsUnauthorized(err):
		return http.StatusForbidden
	case supabase.IsNotFound(err), errors.Is(err, supabase.ErrEmptyResult), errors.Is(err, optimistic.ErrEmptyResult):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func AbortWithError(reqCtx *gin.Context, code string, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusBadGateway {
		msg = "remote backend unavailable"
	}
	reqCtx.AbortWithStatusJSON(status, responses.ErrorResponse{
		Code:  code,
		Error: msg,
	})
}

func AbortWithBindError(reqCtx *gin.Context, code string, err error) {
	reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.NewValidationErrorResponse(code, err))
}

func matches(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
