package httpErrors

import (
	"errors"
	"fmt"
	"net/http"
)

// RestErr is the error shape every usecase returns to the delivery layer.
// Precondition and bad-request failures are 4xx and create no job; conflicts
// are 409; everything unexpected is 500.
type RestErr interface {
	Status() int
	Error() string
	Causes() interface{}
}

type restErr struct {
	ErrStatus int         `json:"status"`
	ErrError  string      `json:"error"`
	ErrCauses interface{} `json:"-"`
}

func (e restErr) Status() int         { return e.ErrStatus }
func (e restErr) Error() string       { return e.ErrError }
func (e restErr) Causes() interface{} { return e.ErrCauses }

func NewRestError(status int, err string, causes interface{}) RestErr {
	return restErr{ErrStatus: status, ErrError: err, ErrCauses: causes}
}

// NewPreconditionError covers a referenced entity that is missing or not in a
// ready state at creation time.
func NewPreconditionError(msg string, causes interface{}) RestErr {
	return restErr{ErrStatus: http.StatusUnprocessableEntity, ErrError: msg, ErrCauses: causes}
}

func NewNotFoundError(msg string) RestErr {
	return restErr{ErrStatus: http.StatusNotFound, ErrError: msg}
}

func NewConflictError(msg string) RestErr {
	return restErr{ErrStatus: http.StatusConflict, ErrError: msg}
}

func NewBadRequestError(msg string) RestErr {
	return restErr{ErrStatus: http.StatusBadRequest, ErrError: msg}
}

func NewTooManyRequestsError(msg string) RestErr {
	return restErr{ErrStatus: http.StatusTooManyRequests, ErrError: msg}
}

func NewInternalServerError(causes interface{}) RestErr {
	return restErr{
		ErrStatus: http.StatusInternalServerError,
		ErrError:  "internal server error",
		ErrCauses: causes,
	}
}

// ParseError maps an arbitrary error onto a RestErr, passing typed ones
// through unchanged.
func ParseError(err error) RestErr {
	var rest restErr
	if errors.As(err, &rest) {
		return rest
	}
	return NewInternalServerError(err.Error())
}

// ErrorResponse returns the status code and JSON body for an error.
func ErrorResponse(err error) (int, interface{}) {
	rest := ParseError(err)
	return rest.Status(), rest
}

func IsStatus(err error, status int) bool {
	var rest restErr
	if errors.As(err, &rest) {
		return rest.ErrStatus == status
	}
	return false
}

func IsNotFound(err error) bool { return IsStatus(err, http.StatusNotFound) }

func Errorf(status int, format string, args ...interface{}) RestErr {
	return NewRestError(status, fmt.Sprintf(format, args...), nil)
}
