// SPDX-License-Identifier: MIT

package sparse

// engine is the canonical-storage contract shared by all backends.
// The store owns staging, validation, options and logging; an engine only
// knows how to locate, enumerate and restructure its stored positions.
//
// Invariants every engine keeps:
//   - slot(i,j) is stable until the next reset/merge/dropRow.
//   - values() aliases the engine's value buffer; writes through it are visible.
//   - Positions that are not stored read as zero in values() (dense engines
//     keep their off-structure cells at 0.0).
type engine interface {
	kind() string
	dims() (rows, cols int)

	// reset reallocates an all-zero rows×cols engine with empty structure.
	reset(rows, cols int)

	// slot returns the position of (i,j) in values() and whether it is stored.
	slot(i, j int) (int, bool)
	values() []float64
	nnz() int

	// merge inserts positions into the structure, writing their values. A
	// position that is already stored is overwritten; repeated positions in
	// staged keep the last value.
	merge(staged []entry)

	// dropRow removes every stored position of row i.
	dropRow(i int)

	// rowSlots calls f for the stored positions of row i, columns ascending.
	rowSlots(i int, f func(j, s int))

	// each visits stored positions in canonical order until f returns false.
	each(f func(i, j, s int) bool)

	// mulVec accumulates y += A x (trans=false) or y += Aᵀ x (trans=true).
	mulVec(y, x []float64, trans bool)

	// axpySame performs self += a*other when both share one layout and
	// reports false, leaving self untouched, otherwise.
	axpySame(a float64, other engine) bool

	clone() engine
}
