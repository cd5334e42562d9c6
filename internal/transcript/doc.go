// Package transcript defines the data model for rendered compiler
// diagnostic output and the parser that reads golden fixtures into it.
//
// # Data model
//
// Diagnostic is the central record. It captures one rendered block: the
// header (severity, optional code, message), the "-->" location line,
// the snippet body lines (Annotations, kept verbatim so comparisons stay
// faithful to the rendered output), and trailing "= note:" lines.
//
// Transcript is the full output of one compiler invocation: the ordered
// diagnostics, the "aborting due to N previous errors" summary, and the
// optional "--explain" footer. Order is significant throughout; a
// compiler's emission order is deterministic for a given input and the
// golden comparison relies on that.
//
// # Normalization
//
// Golden files must be portable across checkout locations, so Normalizer
// replaces filesystem-dependent path prefixes with a placeholder token
// and optionally trims trailing whitespace. Normalization is idempotent.
//
// Package transcript performs no I/O and no comparison; loading fixture
// bytes lives in internal/harness and the comparison in internal/compare.
package transcript
