package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// CustomizedError carries a trace chain, an i18n message key and the http status
// the handler layer should answer with.
type CustomizedError struct {
	cause   error
	message string
	trace   []string
	wrap    error
	code    int
	data    any
}

func (e *CustomizedError) WithData(data any) *CustomizedError {
	e.data = data
	return e
}

func (e *CustomizedError) Data() any {
	return e.data
}

func (e *CustomizedError) Code(c int) *CustomizedError {
	e.code = c
	return e
}

func (e *CustomizedError) GetCode() int {
	if e.code == 0 {
		return http.StatusInternalServerError
	}
	return e.code
}

func New(trace, message string, err error) *CustomizedError {
	return &CustomizedError{
		cause:   err,
		message: message,
		trace:   []string{trace},
		code:    http.StatusInternalServerError,
	}
}

func (e *CustomizedError) Trace(trace string) *CustomizedError {
	e.trace = append(e.trace, trace)
	return e
}

func Wrap(err error, trace, message string) *CustomizedError {
	ce := &CustomizedError{
		cause:   err,
		message: message,
		trace:   []string{trace},
		wrap:    err,
	}
	if income, ok := err.(*CustomizedError); ok {
		ce.code = income.code
		ce.data = income.data
	}
	return ce
}

func Trace(trace string, err error) *CustomizedError {
	if ce, ok := err.(*CustomizedError); ok {
		ce.trace = append(ce.trace, trace)
		return ce
	}
	return Wrap(err, trace, err.Error())
}

func (e *CustomizedError) Message() string {
	if e.message == "" && e.cause != nil {
		return e.cause.Error()
	}
	return e.message
}

func (e *CustomizedError) Unwrap() error {
	if e.wrap != nil {
		return e.wrap
	}
	return e.cause
}

func (e *CustomizedError) Error() string {
	otherDetails := `""`
	if ce, ok := e.wrap.(*CustomizedError); ok {
		otherDetails = ce.Error()
	} else if e.wrap != nil {
		otherDetails = fmt.Sprint("\"", e.wrap.Error(), "\"")
	}
	return fmt.Sprintf(`{"trace":"%s","code":%d,"msg":"%s","error":"%v","wrapd":%s}`, strings.Join(e.trace, "->"), e.code, e.message, e.cause, otherDetails)
}

// As reports whether err is, or wraps, a *CustomizedError.
func As(err error) (*CustomizedError, bool) {
	var ce *CustomizedError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
