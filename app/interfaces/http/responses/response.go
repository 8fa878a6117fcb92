package responses

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

type ValidationErrorResponse struct {
	Code   string       `json:"code"`
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// NewValidationErrorResponse lists the failing fields when err comes from
// request binding.
func NewValidationErrorResponse(code string, err error) ValidationErrorResponse {
	resp := ValidationErrorResponse{Code: code, Error: err.Error()}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Error = "invalid request body"
		for _, fe := range verrs {
			resp.Fields = append(resp.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
	}
	return resp
}

type GeneralResponse[T any] struct {
	Status string `json:"status"`
	Result T      `json:"result"`
}

type ListResponse[T any] struct {
	Status  string `json:"status"`
	Total   int    `json:"total"`
	Results []T    `json:"results"`
}

const ResponseCodeOk = "000000"

func NewGeneralResponse[T any](result T) GeneralResponse[T] {
	return GeneralResponse[T]{Status: ResponseCodeOk, Result: result}
}

func NewListResponse[T any](results []T) ListResponse[T] {
	if results == nil {
		results = []T{}
	}
	return ListResponse[T]{Status: ResponseCodeOk, Total: len(results), Results: results}
}
