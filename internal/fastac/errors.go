package fastac

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure classes the compiler can produce. Callers
// classify with errors.Is; the typed errors below carry context.
var (
	// ErrUsage indicates malformed macro arguments.
	ErrUsage = errors.New("usage error")
	// ErrLookup indicates an unknown block title, library path or table name.
	ErrLookup = errors.New("lookup error")
	// ErrFormat indicates structurally bad fastac input.
	ErrFormat = errors.New("format error")
)

// UsageError reports malformed arguments to a macro invocation.
type UsageError struct {
	Macro   string
	Message string
}

func (e *UsageError) Error() string {
	if e.Macro != "" {
		return fmt.Sprintf("macro %s: %s", e.Macro, e.Message)
	}
	return e.Message
}

func (e *UsageError) Unwrap() error { return ErrUsage }

// LookupError reports a failed lookup of a named resource. Available, when
// set, lists the names that would have resolved.
type LookupError struct {
	Resource  string // "block", "library", "codon table"
	Name      string
	Available []string
	Err       error
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("no %s named %q", e.Resource, e.Name)
	if len(e.Available) > 0 {
		msg += fmt.Sprintf(" (available: %s)", strings.Join(e.Available, ", "))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LookupError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrLookup
}

// Is lets errors.Is(err, ErrLookup) match even when a filesystem error is
// wrapped underneath.
func (e *LookupError) Is(target error) bool { return target == ErrLookup }

// FormatError reports structurally invalid input within one block.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string { return e.Message }

func (e *FormatError) Unwrap() error { return ErrFormat }

// CompileError wraps any failure with enough context to locate the offending
// block in its source.
type CompileError struct {
	Source string // path or "<input>"
	Block  int    // 1-based block index within the source
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: block %d: %v", e.Source, e.Block, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }
