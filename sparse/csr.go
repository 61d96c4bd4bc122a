// SPDX-License-Identifier: MIT

package sparse

import "fmt"

// CSR is a Matrix in compressed sparse row layout: row traversal, GetRow and
// A x are the cheap directions.
type CSR struct {
	store
}

var (
	_ Matrix       = (*CSR)(nil)
	_ fmt.Stringer = (*CSR)(nil)
)

// NewCSR creates a rows×cols CSR store with empty structure.
// A 0×0 store is legal; call Init or Resize later.
//
// Errors:
//   - ErrInvalidArgument when rows < 0 or cols < 0.
func NewCSR(rows, cols int, opts ...Option) (*CSR, error) {
	if err := validateShape(rows, cols); err != nil {
		return nil, fmt.Errorf("NewCSR(%d,%d): %w", rows, cols, err)
	}

	return &CSR{store: newStore(newCompressed(rows, cols, false), opts)}, nil
}

// Copy returns an independent deep clone.
func (m *CSR) Copy() Matrix {
	return &CSR{store: m.store.clone()}
}
