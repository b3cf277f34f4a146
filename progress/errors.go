package progress

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrSequenceViolation  = errors.New("previous items must be completed first")
	ErrInvalidScore       = errors.New("invalid score")
	ErrNotEnoughQuestions = errors.New("not enough questions in the bank")
	// ErrDuplicate is returned by a Store when a (user, position) completion already exists.
	ErrDuplicate = errors.New("duplicate completion")
)

// ValidationError aggregates every field problem of one request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrInvalidScore) match a score validation failure.
func (e *ValidationError) Is(target error) bool {
	if target != ErrInvalidScore {
		return false
	}
	_, ok := e.Fields["score"]
	return ok
}

type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string { return "unauthorized: " + e.Reason }

// PersistenceError wraps a storage failure with the operation that failed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrDuplicate) && !errors.Is(err, ErrSequenceViolation) {
		return fmt.Errorf("%s: %w: %w", op, ErrSequenceViolation, err)
	}
	var pe *PersistenceError
	if errors.As(err, &pe) || KindOf(err) != KindPersistence {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// Kind classifies an engine error for the transport layer.
type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindAuthorization
	KindNotFound
	KindSequence
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindSequence:
		return "sequence"
	default:
		return "persistence"
	}
}

// KindOf returns the Kind of err. Unknown errors count as persistence failures.
func KindOf(err error) Kind {
	var (
		ve *ValidationError
		ae *AuthorizationError
	)
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &ve), errors.Is(err, ErrInvalidScore):
		return KindValidation
	case errors.As(err, &ae):
		return KindAuthorization
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotEnoughQuestions):
		return KindNotFound
	case errors.Is(err, ErrSequenceViolation), errors.Is(err, ErrDuplicate):
		return KindSequence
	default:
		return KindPersistence
	}
}
