package insights

import (
	"errors"
	"fmt"
)

// Kind — машиночитаемый тип ошибки, который видит клиент.
type Kind string

const (
	KindSourceUnavailable Kind = "source_unavailable"
	KindSourceMalformed   Kind = "source_malformed"
	KindInternalFailure   Kind = "internal_failure"
	KindNotFound          Kind = "not_found"
	KindBadRequest        Kind = "bad_request"
)

// Error связывает исходную ошибку с её типом.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf создаёт Error заданного типа с форматированным сообщением.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap помечает err типом kind, если он ещё не помечен.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf возвращает тип ошибки; непомеченные ошибки считаются internal_failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternalFailure
}
