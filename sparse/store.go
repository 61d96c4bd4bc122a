// SPDX-License-Identifier: MIT

// Package sparse - shared store: lifecycle, block assembly and finalization.
//
// Purpose:
//   - Implement the backend-independent half of Matrix once: validation,
//     staging, the two-phase Apply commit, options and logging.
//   - Delegate canonical storage to an engine (compressed or dense).
//
// Two-phase commit:
//   - A write to a position already in the structure goes straight into the
//     engine's value buffer.
//   - A write to any other position lands in the staging map (set overwrites,
//     add accumulates). Staged keys never overlap stored positions.
//   - Apply merges the staging map into the engine in one sorted pass.
//
// Behavior highlights:
//   - Block operations are all-or-nothing: every index and value is checked
//     before the first write.
//   - Get observes staged values, so assembly code may read back before Apply.
package sparse

import (
	"fmt"
	"log/slog"
	"maps"

	"gonum.org/v1/gonum/mat"
)

// method tags used in error wrappers and log records
const (
	opInit          = "Init"
	opResize        = "Resize"
	opSize          = "Size"
	opLocalRange    = "LocalRange"
	opNewVector     = "NewVector"
	opGet           = "Get"
	opSet           = "Set"
	opAdd           = "Add"
	opApply         = "Apply"
	opZeroRows      = "ZeroRows"
	opIdent         = "Ident"
	opGetRow        = "GetRow"
	opSetRow        = "SetRow"
	opScale         = "Scale"
	opDivide        = "Divide"
	opAXPY          = "AXPY"
	opSetDiagonal   = "SetDiagonal"
	opNorm          = "Norm"
	opMult          = "Mult"
	opTransposeMult = "TransposeMult"
	opDo            = "Do"
	opMat           = "Mat"
)

// store carries everything a backend shares. Backends embed it by value.
type store struct {
	eng    engine
	staged map[index]float64 // positions outside the structure, pending Apply
	opts   Options
	views  int // outstanding Views from Mat
}

func newStore(eng engine, opts []Option) store {
	return store{
		eng:    eng,
		staged: make(map[index]float64),
		opts:   gatherOptions(opts...),
	}
}

// storage exposes the shared store to in-package fast paths (AXPY). Types
// outside the package cannot provide it, so foreign Matrix implementations
// always take the generic path.
func (s *store) storage() *store { return s }

// clone deep-copies engine, staging and options; views are not inherited.
func (s *store) clone() store {
	return store{
		eng:    s.eng.clone(),
		staged: maps.Clone(s.staged),
		opts:   s.opts,
	}
}

func (s *store) log() *slog.Logger { return s.opts.logger }

// ---------- Lifecycle & layout ----------

// Kind names the storage engine.
func (s *store) Kind() string { return s.eng.kind() }

// Rows returns the row count. Complexity: O(1).
func (s *store) Rows() int {
	r, _ := s.eng.dims()

	return r
}

// Cols returns the column count. Complexity: O(1).
func (s *store) Cols() int {
	_, c := s.eng.dims()

	return c
}

// Empty reports Rows() == 0.
func (s *store) Empty() bool { return s.Rows() == 0 }

// NNZ returns the number of stored positions plus staged ones.
func (s *store) NNZ() int { return s.eng.nnz() + len(s.staged) }

// Size returns rows for dim 0 and cols for dim 1.
//
// Errors:
//   - ErrInvalidArgument for dim ∉ {0,1}.
func (s *store) Size(dim int) (int, error) {
	if err := validateDim(dim); err != nil {
		return 0, storeErrorf(s.Kind(), opSize, err)
	}
	if dim == 0 {
		return s.Rows(), nil
	}

	return s.Cols(), nil
}

// LocalRange returns the owned range along dim. A single process owns
// everything, so the range is [0, Size(dim)).
func (s *store) LocalRange(dim int) (lo, hi int, err error) {
	n, err := s.Size(dim)
	if err != nil {
		return 0, 0, storeErrorf(s.Kind(), opLocalRange, err)
	}

	return 0, n, nil
}

// NewVector returns a zero vector of length Size(dim).
// Zero-length vectors are the zero value of mat.VecDense, because
// mat.NewVecDense rejects n == 0.
func (s *store) NewVector(dim int) (*mat.VecDense, error) {
	n, err := s.Size(dim)
	if err != nil {
		return nil, storeErrorf(s.Kind(), opNewVector, err)
	}
	if n == 0 {
		return &mat.VecDense{}, nil
	}

	return mat.NewVecDense(n, nil), nil
}

// Init allocates storage from a finalized pattern.
// MAIN DESCRIPTION:
//   - Reset the engine to the pattern's dimensions and materialise every
//     candidate position as a structural zero, discarding prior content.
//
// Implementation:
//   - Stage 1: refuse while views are outstanding; validate the pattern.
//   - Stage 2: collect candidates (validated against the declared dims).
//   - Stage 3: reset the engine, drop staging, merge candidates once.
//
// Errors:
//   - ErrViewOutstanding, ErrInvalidArgument (nil/unfinalized/negative dims),
//     ErrInvalidIndex (candidate outside the declared dims).
//
// Complexity:
//   - Time O(nnz log k) for compressed engines, O(r*c) for Dense.
func (s *store) Init(p Pattern) error {
	kind := s.Kind()
	if s.views > 0 {
		return storeErrorf(kind, opInit, ErrViewOutstanding)
	}
	if p == nil {
		return storeErrorf(kind, opInit, fmt.Errorf("nil pattern: %w", ErrInvalidArgument))
	}
	if !p.Finalized() {
		return storeErrorf(kind, opInit, fmt.Errorf("pattern not finalized: %w", ErrInvalidArgument))
	}
	rows, cols := p.Dims()
	if err := validateShape(rows, cols); err != nil {
		return storeErrorf(kind, opInit, err)
	}

	cand := make([]entry, 0, p.NumNonzeros())
	for i := 0; i < rows; i++ {
		for _, j := range p.RowColumns(i) {
			if j < 0 || j >= cols {
				return storeErrorAt(kind, opInit, i, j, ErrInvalidIndex)
			}
			cand = append(cand, entry{row: i, col: j})
		}
	}

	s.eng.reset(rows, cols)
	clear(s.staged)
	s.eng.merge(cand)
	s.log().Debug("sparse: init",
		slog.String("kind", kind),
		slog.Int("rows", rows),
		slog.Int("cols", cols),
		slog.Int("nnz", s.eng.nnz()))

	return nil
}

// Resize discards structure and values and becomes an all-zero rows×cols matrix.
//
// Errors:
//   - ErrViewOutstanding while a View is held; ErrInvalidArgument for negative sizes.
func (s *store) Resize(rows, cols int) error {
	if s.views > 0 {
		return storeErrorf(s.Kind(), opResize, ErrViewOutstanding)
	}
	if err := validateShape(rows, cols); err != nil {
		return storeErrorf(s.Kind(), opResize, err)
	}
	s.eng.reset(rows, cols)
	clear(s.staged)
	s.log().Debug("sparse: resize",
		slog.String("kind", s.Kind()),
		slog.Int("rows", rows),
		slog.Int("cols", cols))

	return nil
}

// ---------- Block assembly ----------

// Get fills block (row-major, len(rows)×len(cols)) with current values.
// Staged entries are visible; positions never written read as 0.0.
// Read-only; no side effects.
func (s *store) Get(block []float64, rows, cols []int) error {
	r, c := s.eng.dims()
	if err := validateBlock(block, rows, cols, r, c); err != nil {
		return storeErrorf(s.Kind(), opGet, err)
	}
	vals := s.eng.values()
	n := len(cols)
	for a, i := range rows {
		for b, j := range cols {
			if sl, ok := s.eng.slot(i, j); ok {
				block[a*n+b] = vals[sl]
			} else {
				block[a*n+b] = s.staged[index{i, j}] // missing key reads as 0
			}
		}
	}

	return nil
}

// Set overwrites rows × cols with block; the last writer wins.
func (s *store) Set(block []float64, rows, cols []int) error {
	return s.write(opSet, block, rows, cols, false)
}

// Add accumulates block into rows × cols.
func (s *store) Add(block []float64, rows, cols []int) error {
	return s.write(opAdd, block, rows, cols, true)
}

// SetLocal is Set with process-local indices.
func (s *store) SetLocal(block []float64, rows, cols []int) error {
	return s.write(opSet, block, s.localToGlobal(rows), s.localToGlobal(cols), false)
}

// AddLocal is Add with process-local indices.
func (s *store) AddLocal(block []float64, rows, cols []int) error {
	return s.write(opAdd, block, s.localToGlobal(rows), s.localToGlobal(cols), true)
}

// localToGlobal is the single translation point from process-local to global
// indices. A single process owns the full range starting at 0, so the map is
// the identity; a distributed store would offset by its LocalRange here.
func (s *store) localToGlobal(local []int) []int { return local }

// write implements Set/Add.
// Implementation:
//   - Stage 1: validate block length and every index.
//   - Stage 2: numeric policy on every value.
//   - Stage 3: strict pattern check on every position (strict stores only).
//   - Stage 4: write through to stored slots; stage the rest.
func (s *store) write(method string, block []float64, rows, cols []int, accumulate bool) error {
	kind := s.Kind()
	r, c := s.eng.dims()
	if err := validateBlock(block, rows, cols, r, c); err != nil {
		return storeErrorf(kind, method, err)
	}
	n := len(cols)
	if s.opts.validateNaNInf {
		if k := validateFinite(block); k >= 0 {
			return storeErrorAt(kind, method, rows[k/n], cols[k%n], ErrNaNInf)
		}
	}
	if s.opts.strictPattern {
		for _, i := range rows {
			for _, j := range cols {
				if _, ok := s.eng.slot(i, j); !ok {
					return storeErrorAt(kind, method, i, j,
						fmt.Errorf("outside sparsity pattern: %w", ErrInvalidIndex))
				}
			}
		}
	}

	vals := s.eng.values()
	var v float64
	for a, i := range rows {
		for b, j := range cols {
			v = block[a*n+b]
			sl, ok := s.eng.slot(i, j)
			switch {
			case ok && accumulate:
				vals[sl] += v
			case ok:
				vals[sl] = v
			case accumulate:
				s.staged[index{i, j}] += v
			default:
				s.staged[index{i, j}] = v
			}
		}
	}

	return nil
}

// ---------- Finalization & zeroing ----------

// Apply merges staged entries into canonical form: sorted, no duplicates.
//
// Errors:
//   - ErrInvalidArgument for an unknown mode.
func (s *store) Apply(mode ApplyMode) error {
	if err := mode.validate(); err != nil {
		return storeErrorf(s.Kind(), opApply, err)
	}
	merged := s.flush()
	s.log().Debug("sparse: apply",
		slog.String("kind", s.Kind()),
		slog.String("mode", string(mode)),
		slog.Int("merged", merged),
		slog.Int("nnz", s.eng.nnz()))

	return nil
}

// flush merges staging into the engine and returns the number of merged entries.
func (s *store) flush() int {
	n := len(s.staged)
	if n == 0 {
		return 0
	}
	entries := make([]entry, 0, n)
	for k, v := range s.staged {
		entries = append(entries, entry{row: k.row, col: k.col, val: v})
	}
	s.eng.merge(entries) // engines sort, so map order does not leak
	clear(s.staged)

	return n
}

// finalized fails with ErrNotFinalized while entries are staged.
func (s *store) finalized(method string) error {
	if len(s.staged) > 0 {
		return storeErrorf(s.Kind(), method, ErrNotFinalized)
	}

	return nil
}

// Zero sets every stored and staged value to 0.0; NNZ is unchanged.
func (s *store) Zero() {
	clear(s.eng.values())
	for k := range s.staged {
		s.staged[k] = 0
	}
}

// ZeroRows sets every entry of the listed rows to 0.0, keeping their
// structure so a following Ident on the same rows stays cheap.
//
// Errors:
//   - ErrInvalidIndex for a row outside [0, Rows()); nothing is changed then.
func (s *store) ZeroRows(rows []int) error {
	if err := validateIndices("row", rows, s.Rows()); err != nil {
		return storeErrorf(s.Kind(), opZeroRows, err)
	}
	s.zeroRows(rows)

	return nil
}

// ZeroLocal is ZeroRows with process-local indices.
func (s *store) ZeroLocal(rows []int) error { return s.ZeroRows(s.localToGlobal(rows)) }

func (s *store) zeroRows(rows []int) {
	vals := s.eng.values()
	for _, i := range rows {
		s.eng.rowSlots(i, func(_, sl int) { vals[sl] = 0 })
	}
	if len(s.staged) == 0 {
		return
	}
	listed := make(map[int]struct{}, len(rows))
	for _, i := range rows {
		listed[i] = struct{}{}
	}
	for k := range s.staged {
		if _, ok := listed[k.row]; ok {
			s.staged[k] = 0
		}
	}
}

// String returns a one-line summary, e.g. "CSR(3x3, nnz=7, staged=0)".
func (s *store) String() string {
	r, c := s.eng.dims()

	return fmt.Sprintf("%s(%dx%d, nnz=%d, staged=%d)", s.Kind(), r, c, s.NNZ(), len(s.staged))
}
