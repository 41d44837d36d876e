package meshseg

import "github.com/pkg/errors"

// Kind classifies a MeshError without requiring callers to match on
// error strings.
type Kind int

const (
	// InputFormat indicates a malformed mesh file header or body.
	InputFormat Kind = iota
	// NonManifold indicates a face with other than three neighbors.
	NonManifold
	// DegenerateFace indicates a face with a zero-length normal.
	DegenerateFace
	// Disconnected indicates the distance matrix contains +Inf.
	Disconnected
	// OutputIO indicates a write failure.
	OutputIO
)

func (k Kind) String() string {
	switch k {
	case InputFormat:
		return "InputFormat"
	case NonManifold:
		return "NonManifold"
	case DegenerateFace:
		return "DegenerateFace"
	case Disconnected:
		return "Disconnected"
	case OutputIO:
		return "OutputIO"
	default:
		return "Unknown"
	}
}

// MeshError wraps an underlying error with a Kind so that callers
// (in particular the CLI) can decide on an exit path without
// parsing messages.
type MeshError struct {
	Kind Kind
	err  error
}

func (e *MeshError) Error() string {
	return e.Kind.String() + ": " + e.err.Error()
}

// Unwrap allows errors.Is/errors.As to see through to the wrapped
// cause. MeshError has no Cause method, so pkg/errors.Cause stops at
// the MeshError itself.
func (e *MeshError) Unwrap() error {
	return e.err
}

// wrapErr builds a MeshError, wrapping msg onto err via pkg/errors
// so the chain keeps a stack trace for the CLI's final log line.
func wrapErr(kind Kind, err error, msg string) error {
	return &MeshError{Kind: kind, err: errors.Wrap(err, msg)}
}

// newErr builds a MeshError from a plain message.
func newErr(kind Kind, msg string) error {
	return &MeshError{Kind: kind, err: errors.New(msg)}
}

// WrapError and NewError are the exported forms of wrapErr/newErr,
// for collaborator packages (plyio, cmd/meshseg) that need to surface
// a Kind-tagged error without duplicating the MeshError type.
func WrapError(kind Kind, err error, msg string) error {
	return wrapErr(kind, err, msg)
}

func NewError(kind Kind, msg string) error {
	return newErr(kind, msg)
}
