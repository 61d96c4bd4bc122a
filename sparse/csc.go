// SPDX-License-Identifier: MIT

package sparse

import "fmt"

// CSC is a Matrix in compressed sparse column layout: column traversal and
// Aᵀ x are the cheap directions; row operations scan every column.
type CSC struct {
	store
}

var (
	_ Matrix       = (*CSC)(nil)
	_ fmt.Stringer = (*CSC)(nil)
)

// NewCSC creates a rows×cols CSC store with empty structure.
//
// Errors:
//   - ErrInvalidArgument when rows < 0 or cols < 0.
func NewCSC(rows, cols int, opts ...Option) (*CSC, error) {
	if err := validateShape(rows, cols); err != nil {
		return nil, fmt.Errorf("NewCSC(%d,%d): %w", rows, cols, err)
	}

	return &CSC{store: newStore(newCompressed(rows, cols, true), opts)}, nil
}

// Copy returns an independent deep clone.
func (m *CSC) Copy() Matrix {
	return &CSC{store: m.store.clone()}
}
