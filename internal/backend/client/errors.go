package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// GenericErrorMessage is shown when the backend gives no usable message.
const GenericErrorMessage = "Something went wrong. Please try again."

var (
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput matches client side validation failures, where no request
	// is sent, and backend rejections with a 4xx status other than 404.
	ErrInvalidInput = errors.New("invalid input")
)

// APIError is a non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
	Method     string
	Path       string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrInvalidInput:
		return e.StatusCode >= http.StatusBadRequest &&
			e.StatusCode < http.StatusInternalServerError &&
			e.StatusCode != http.StatusNotFound
	}
	return false
}

// newAPIError builds an APIError whose message comes from a {"message": ...}
// body, or GenericErrorMessage when there is none.
func newAPIError(method, path string, status int, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Message:    messageFromBody(body),
		Method:     method,
		Path:       path,
	}
}

func messageFromBody(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return GenericErrorMessage
	}
	if msg := strings.TrimSpace(payload.Message); msg != "" {
		return msg
	}
	return GenericErrorMessage
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Message returns the text to show a user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrInvalidInput) {
		return err.Error()
	}
	return GenericErrorMessage
}
