package supabase

import (
	"fmt"

	"github.com/pkg/errors"
)

// PostgREST / Postgres error codes the gateway reacts to.
const (
	CodeUndefinedColumn   = "42703"
	CodeSchemaCacheColumn = "PGRST204"
	CodeNoRows            = "PGRST116"
)

var ErrEmptyResult = errors.New("remote call returned no record")

// Error is the error body returned by the REST, RPC and auth endpoints.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`

	// auth endpoint shape
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.ErrorDescription
	}
	if msg == "" {
		msg = e.Msg
	}
	code := e.Code
	if code == "" {
		code = e.ErrorCode
	}
	return fmt.Sprintf("supabase: status %d code %q: %s", e.Status, code, msg)
}

// IsMissingColumn reports whether err was caused by a column the remote
// schema does not have.
func IsMissingColumn(err error) bool {
	var remoteErr *Error
	if !errors.As(err, &remoteErr) {
		return false
	}
	return remoteErr.Code == CodeUndefinedColumn || remoteErr.Code == CodeSchemaCacheColumn
}

func IsNotFound(err error) bool {
	var remoteErr *Error
	if !errors.As(err, &remoteErr) {
		return false
	}
	return remoteErr.Code == CodeNoRows || remoteErr.Status == 404
}

func IsUnauthorized(err error) bool {
	var remoteErr *Error
	if !errors.As(err, &remoteErr) {
		return false
	}
	return remoteErr.Status == 401 || remoteErr.Status == 403
}
