package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"
)

var ErrInvalidRequest = errors.New("invalid_request")

// fieldError is a request validation failure on one body field.
type fieldError struct {
	param string
	msg   string
}

func (e fieldError) Error() string {
	return e.param + ": " + e.msg
}

func (e fieldError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(param, msg string) error {
	return fieldError{param: param, msg: msg}
}

// writeInvalid reports err as a 400, naming the offending field when known.
func writeInvalid(c *echo.Context, err error) error {
	var fe fieldError
	if errors.As(err, &fe) {
		return writeError(c, http.StatusBadRequest, "invalid_request_error", fe.msg, fe.param, "")
	}
	return writeBadRequest(c, err.Error())
}
