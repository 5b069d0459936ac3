package translator

import (
	"errors"
	"fmt"
)

// ErrValidation marks failures caused by the request rather than the
// model or its backend. Callers classify with errors.Is; the API layer
// maps it to HTTP 400.
var ErrValidation = errors.New("validation")

type langError struct {
	param string
	code  string
}

func (e langError) Error() string {
	if e.param == "src_lang" {
		return fmt.Sprintf("Unsupported source language: %s", e.code)
	}
	return fmt.Sprintf("Unsupported target language: %s", e.code)
}

func (e langError) Unwrap() error { return ErrValidation }

func (e langError) validationParam() string { return e.param }

type maskCountError struct {
	found int
}

func (e maskCountError) Error() string {
	return fmt.Sprintf("text must contain exactly one %s token, found %d", maskPlaceholder, e.found)
}

func (e maskCountError) Unwrap() error { return ErrValidation }

func (e maskCountError) validationParam() string { return "text" }

type emptyInputError struct{}

func (emptyInputError) Error() string { return "text must not be empty" }

func (emptyInputError) Unwrap() error { return ErrValidation }

func (emptyInputError) validationParam() string { return "text" }

type topkError struct {
	value int
}

func (e topkError) Error() string {
	return fmt.Sprintf("topk must be at least 1, got %d", e.value)
}

func (e topkError) Unwrap() error { return ErrValidation }

func (e topkError) validationParam() string { return "topk" }

// ValidationParam names the request field a validation error refers to.
// It returns "" for errors without one.
func ValidationParam(err error) string {
	var p interface{ validationParam() string }
	if errors.As(err, &p) {
		return p.validationParam()
	}
	return ""
}
