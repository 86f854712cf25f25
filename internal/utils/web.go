package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	internal_errors "github.com/itchan-dev/musicthread-rss/internal/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// WriteErrorAndStatusCode writes err as a plain text response. Only
// ErrorWithStatusCode messages reach the client, anything else becomes a
// generic 500.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	var e *internal_errors.ErrorWithStatusCode
	if errors.As(err, &e) {
		http.Error(w, e.Message, e.StatusCode)
		return
	}
	// default error is 500
	http.Error(w, internal_errors.MsgInternal, http.StatusInternalServerError)
}

// Decode reads a single JSON value from r into body.
func Decode(r io.Reader, body any) error {
	return json.NewDecoder(r).Decode(body)
}

// Validate checks validator struct tags on body.
func Validate(body any) error {
	return validatorInstance().Struct(body)
}
