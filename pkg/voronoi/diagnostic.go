package voronoi

import (
	"fmt"

	"github.com/0x0FACED/go-gauge/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type DiagnosticKind int

const (
	// NumericDegeneracy: an intersection, overlap or cone join that should
	// exist did not materialise.
	NumericDegeneracy DiagnosticKind = iota + 1
	// InvariantViolation: the case analysis reached a state it rules out.
	InvariantViolation
	// Configuration: a solver was called with input Compute would have
	// rejected with a ConfigurationError. No geometry was attempted.
	Configuration
)

func (k DiagnosticKind) String() string {
	switch k {
	case NumericDegeneracy:
		return "numeric degeneracy"
	case InvariantViolation:
		return "invariant violation"
	case Configuration:
		return "configuration"
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic is attached to the pair or triple it was raised for. The pair or
// triple stops contributing output but the computation goes on.
type Diagnostic struct {
	Kind    DiagnosticKind
	Sites   []Vertex
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %v: %s", d.Kind, d.Sites, d.Message)
}

// ConfigurationError aborts a computation before any geometry is attempted.
type ConfigurationError struct {
	err error
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.err
}

func configErrorf(format string, args ...interface{}) error {
	return &ConfigurationError{err: errors.Errorf(format, args...)}
}

// IsConfigurationError reports whether err carries a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// diagnostics collects the findings of one solver call and mirrors them to
// the log.
type diagnostics struct {
	log   *logger.ZapLogger
	tag   string
	sites []Vertex
	list  []Diagnostic
}

func newDiagnostics(log *logger.ZapLogger, tag string, sites ...Vertex) *diagnostics {
	if log == nil {
		log = logger.NewNop()
	}
	return &diagnostics{log: log, tag: tag, sites: sites}
}

func (d *diagnostics) degenerate(msg string, fields ...zap.Field) {
	d.log.Warn(d.tag+" "+msg, append(fields, zap.Stringer("sites", vertices(d.sites)))...)
	d.list = append(d.list, Diagnostic{Kind: NumericDegeneracy, Sites: d.sites, Message: msg})
}

func (d *diagnostics) violation(msg string, fields ...zap.Field) {
	d.log.Error(d.tag+" "+msg, append(fields, zap.Stringer("sites", vertices(d.sites)))...)
	d.list = append(d.list, Diagnostic{Kind: InvariantViolation, Sites: d.sites, Message: msg})
}

// misconfigured rejects the call before any geometry.
func (d *diagnostics) misconfigured(msg string) {
	d.log.Error(d.tag+" "+msg, zap.Stringer("sites", vertices(d.sites)))
	d.list = append(d.list, Diagnostic{Kind: Configuration, Sites: d.sites, Message: msg})
}

// distinct checks the gauge and that no two sites coincide.
func (d *diagnostics) distinct(q Quad) bool {
	if !q.Valid() {
		d.misconfigured("gauge was not built with NewQuad")
		return false
	}
	for i := range d.sites {
		for j := i + 1; j < len(d.sites); j++ {
			if d.sites[i].Equal(d.sites[j]) {
				d.misconfigured("coincident sites")
				return false
			}
		}
	}
	return true
}

func (d *diagnostics) debug(msg string, fields ...zap.Field) {
	d.log.Debug(d.tag+" "+msg, fields...)
}

func (s vertices) String() string {
	return fmt.Sprint([]Vertex(s))
}
