// SPDX-License-Identifier: MIT

// Package sparse: functional configuration for every storage backend.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors (panic only on nonsensical values),
//   - gatherOptions helper (internal) that applies setters in order.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag changes observable behavior and is covered by tests.
//   - Options fields are unexported; constructors consume ...Option.
//
// Notes:
//   - Pattern policy: a dynamic store stages writes to positions outside its
//     structure and merges them on Apply; a strict store rejects them with
//     ErrInvalidIndex. Ident and SetDiagonal may insert diagonal positions in
//     both modes.
//   - Numeric policy: validateNaNInf rejects NaN/±Inf values in Set/Add/SetRow,
//     SetDiagonal, Scale and AXPY factors.
package sparse

import "log/slog"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultStrictPattern keeps dynamic insertion enabled.
	DefaultStrictPattern = false

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion.
	DefaultValidateNaNInf = true
)

// ---------- Internal panic messages (no magic strings) ----------

const panicNilLogger = "sparse: WithLogger: logger must be non-nil"

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; stores copy the struct so later changes never leak
// between instances.
type Options struct {
	strictPattern  bool         // DefaultStrictPattern
	validateNaNInf bool         // DefaultValidateNaNInf
	logger         *slog.Logger // slog.Default() unless WithLogger is given
}

// WithStrictPattern makes Set/Add/SetRow/AXPY reject positions outside the
// current structure instead of staging them.
func WithStrictPattern() Option {
	return func(o *Options) { o.strictPattern = true }
}

// WithDynamicPattern restores the default: positions outside the structure are
// staged and merged by Apply.
func WithDynamicPattern() Option {
	return func(o *Options) { o.strictPattern = false }
}

// WithValidateNaNInf enables finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables finite-value validation.
// Use only when the producer already guarantees finite contributions; it
// removes one comparison per entry from the assembly hot path.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithLogger routes lifecycle diagnostics (Init, Resize, Apply, Ident) to l at
// Debug level.
//
// Panics when l is nil (programmer error).
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *Options) { o.logger = l }
}

// NewOptions resolves opts against the defaults. Exposed so callers can inspect
// the effective policy.
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// StrictPattern reports whether out-of-structure writes are rejected.
func (o Options) StrictPattern() bool { return o.strictPattern }

// ValidateNaNInf reports whether non-finite values are rejected.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// gatherOptions applies user setters in order on top of the defaults; the last
// writer wins.
func gatherOptions(user ...Option) Options {
	o := Options{
		strictPattern:  DefaultStrictPattern,
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, set := range user {
		set(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o
}
