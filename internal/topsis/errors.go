package topsis

import "errors"

var (
	ErrUsage             = errors.New("usage error")
	ErrFileNotFound      = errors.New("file not found")
	ErrMalformedInput    = errors.New("malformed input")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrInvalidImpact     = errors.New("invalid impact")
	ErrDegenerateColumn  = errors.New("degenerate column")
	ErrUnexpected        = errors.New("unexpected error")
)

var errorKinds = []struct {
	err  error
	name string
}{
	{ErrUsage, "UsageError"},
	{ErrFileNotFound, "FileNotFound"},
	{ErrMalformedInput, "MalformedInput"},
	{ErrDimensionMismatch, "DimensionMismatch"},
	{ErrInvalidImpact, "InvalidImpact"},
	{ErrDegenerateColumn, "DegenerateColumn"},
	{ErrUnexpected, "UnexpectedError"},
}

// Kind names the taxonomy member err belongs to. Errors outside the
// taxonomy are reported as "UnexpectedError"; nil yields "".
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "UnexpectedError"
}

// IsInputError reports whether err was caused by the caller's data rather
// than by the environment.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrDimensionMismatch) ||
		errors.Is(err, ErrInvalidImpact) ||
		errors.Is(err, ErrDegenerateColumn)
}
