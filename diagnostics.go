package psxstr

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// WarningKind classifies a non-fatal decode problem.
type WarningKind int

const (
	// WarnPaddingMismatch: the bits after the last block are not the
	// format's padding pattern.
	WarnPaddingMismatch WarningKind = iota + 1
	// WarnCodeCountMismatch: the header's code count does not match the
	// number of codes decoded.
	WarnCodeCountMismatch
)

func (k WarningKind) String() string {
	switch k {
	case WarnPaddingMismatch:
		return "padding-mismatch"
	case WarnCodeCountMismatch:
		return "code-count-mismatch"
	}
	return fmt.Sprintf("warning(%d)", int(k))
}

// Warning is a non-fatal problem found while decoding a frame. The frame is
// still usable.
type Warning struct {
	Kind    WarningKind
	Message string
	Fields  map[string]any
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s %v", w.Kind, w.Message, w.Fields)
}

// Diagnostics receives warnings as they are found.
type Diagnostics interface {
	Warn(w Warning)
}

// DiagnosticsFunc adapts a function to Diagnostics.
type DiagnosticsFunc func(w Warning)

// Warn implements Diagnostics.
func (f DiagnosticsFunc) Warn(w Warning) {
	f(w)
}

// LogrusDiagnostics returns a Diagnostics that logs each warning as a
// structured warn-level entry.
func LogrusDiagnostics(l logrus.FieldLogger) Diagnostics {
	return logrusDiagnostics{l}
}

type logrusDiagnostics struct {
	log logrus.FieldLogger
}

func (d logrusDiagnostics) Warn(w Warning) {
	d.log.WithFields(logrus.Fields(w.Fields)).
		WithField("kind", w.Kind.String()).
		Warn(w.Message)
}
