// Package apperr carries the coded errors services hand to controllers.
package apperr

import "errors"

type ErrCode string

const (
	ErrBadInput     ErrCode = "BAD_INPUT"
	ErrUnauthorized ErrCode = "UNAUTHORIZED"
	ErrForbidden    ErrCode = "FORBIDDEN"
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrConflict     ErrCode = "CONFLICT"
)

type codedError struct {
	code ErrCode
	msg  string
	err  error
}

func (e codedError) Error() string {
	switch {
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return string(e.code) + ": " + e.err.Error()
	}
	return string(e.code)
}

func (e codedError) Code() ErrCode { return e.code }
func (e codedError) Unwrap() error { return e.err }

// New returns an error carrying code and a client-facing message.
func New(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// Wrap attaches code to err.
func Wrap(c ErrCode, err error) error { return codedError{code: c, err: err} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Message returns the client-facing part of a coded error.
func Message(err error) string {
	var ce codedError
	if errors.As(err, &ce) && ce.msg != "" {
		return ce.msg
	}
	return err.Error()
}
