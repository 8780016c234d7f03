package jokeapi

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation возвращается (через errors.Is) для любых ошибок входных параметров.
	// Такие ошибки всегда возникают до сетевого запроса.
	ErrValidation = errors.New("jokeapi: invalid options")

	// ErrAPI возвращается (через errors.Is), когда JokeAPI ответил телом с "error": true.
	ErrAPI = errors.New("jokeapi: api error")
)

// ValidationError описывает неверное поле Options
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "jokeapi: " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// APIError ошибка, которую вернул сам JokeAPI
type APIError struct {
	Code           int      `json:"code"`
	Message        string   `json:"message"`
	Causes         []string `json:"causes"`
	AdditionalInfo string   `json:"additionalInfo"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("jokeapi: api error %d: %s", e.Code, e.Message)
	if len(e.Causes) > 0 {
		msg += " (" + strings.Join(e.Causes, "; ") + ")"
	}
	return msg
}

func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}
