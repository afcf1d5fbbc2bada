package psxstr

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/go-psxstr/internal/syntax"
)

// Option configures an Uncompressor or a Compressor.
type Option func(*options)

type options struct {
	diagnostics   Diagnostics
	logger        logrus.FieldLogger
	strictPadding bool
	maxQscale     int
}

func newOptions(opts []Option) options {
	o := options{maxQscale: syntax.MaxQscale}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = discardLogger
	}
	return o
}

var discardLogger = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// WithDiagnostics sends decode warnings to d in addition to collecting them.
func WithDiagnostics(d Diagnostics) Option {
	return func(o *options) {
		o.diagnostics = d
	}
}

// WithLogger logs the compressor's quantization search at debug level.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithStrictPadding makes a padding mismatch fail with ErrReadCorruption
// instead of producing a warning.
func WithStrictPadding(strict bool) Option {
	return func(o *options) {
		o.strictPadding = strict
	}
}

// WithMaxQscale caps the quantization scales tried by the compressor search.
// Values outside 1-63 are clamped.
func WithMaxQscale(q int) Option {
	return func(o *options) {
		o.maxQscale = min(max(q, syntax.MinQscale), syntax.MaxQscale)
	}
}
