package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/objectid"
)

// Error kinds. Every error returned by this package (and by the capability and
// editor packages built on it) matches one of these with errors.Is.
var (
	ErrDuplicateID         = errors.New("duplicate object id")
	ErrIDNotFound          = errors.New("object id not found")
	ErrIDInUse             = objectid.ErrInUse
	ErrReferencedElsewhere = errors.New("object is referenced elsewhere")
	ErrTypeNotAllowed      = errors.New("reference type not allowed")
	ErrCycleDetected       = errors.New("reference would create a cycle")
	ErrValidationFailed    = errors.New("validation failed")
	ErrIntegrity           = errors.New("object pool integrity violated")
)

// DuplicateIDError reports an id that is already present.
type DuplicateIDError struct {
	ID objectid.ObjectID
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("object %s already exists", e.ID)
}

func (e *DuplicateIDError) Unwrap() error { return ErrDuplicateID }

// IDNotFoundError reports a missing object.
type IDNotFoundError struct {
	ID objectid.ObjectID
}

func (e *IDNotFoundError) Error() string {
	return fmt.Sprintf("object %s not found", e.ID)
}

func (e *IDNotFoundError) Unwrap() error { return ErrIDNotFound }

// ReferencedElsewhereError lists the objects still referring to ID.
type ReferencedElsewhereError struct {
	ID        objectid.ObjectID
	Referrers []objectid.ObjectID // Ascending
}

func (e *ReferencedElsewhereError) Error() string {
	return fmt.Sprintf("object %s is referenced by %v", e.ID, e.Referrers)
}

func (e *ReferencedElsewhereError) Unwrap() error { return ErrReferencedElsewhere }

// TypeNotAllowedError reports a reference the legality tables reject.
type TypeNotAllowedError struct {
	From     objectid.ObjectID
	FromType model.ObjectType
	Role     model.Role
	To       objectid.ObjectID
	ToType   model.ObjectType
}

func (e *TypeNotAllowedError) Error() string {
	return fmt.Sprintf("%s %s may not reference %s %s as %s", e.FromType, e.From, e.ToType, e.To, e.Role)
}

func (e *TypeNotAllowedError) Unwrap() error { return ErrTypeNotAllowed }

// CycleDetectedError reports a renderable reference from From to To where To
// already contains From.
type CycleDetectedError struct {
	From objectid.ObjectID
	To   objectid.ObjectID
}

func (e *CycleDetectedError) Error() string {
	if e.From == e.To {
		return fmt.Sprintf("object %s cannot contain itself", e.From)
	}
	return fmt.Sprintf("object %s already contains %s", e.To, e.From)
}

func (e *CycleDetectedError) Unwrap() error { return ErrCycleDetected }

// ValidationError reports a rejected attribute value.
type ValidationError struct {
	ID     objectid.ObjectID
	Attr   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Attr == "" {
		return fmt.Sprintf("object %s: %s", e.ID, e.Reason)
	}
	return fmt.Sprintf("object %s: %s: %s", e.ID, e.Attr, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// Invalid builds a ValidationError.
func Invalid(id objectid.ObjectID, attr, format string, args ...any) error {
	return &ValidationError{ID: id, Attr: attr, Reason: fmt.Sprintf(format, args...)}
}

// IntegrityError aggregates every problem found while checking a whole pool.
type IntegrityError struct {
	Problems []error
}

func (e *IntegrityError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d integrity problem(s)", len(e.Problems))
	for i, p := range e.Problems {
		if i == 5 {
			fmt.Fprintf(&b, "; and %d more", len(e.Problems)-i)
			break
		}
		b.WriteString("; ")
		b.WriteString(p.Error())
	}
	return b.String()
}

func (e *IntegrityError) Unwrap() []error {
	return append([]error{ErrIntegrity}, e.Problems...)
}
