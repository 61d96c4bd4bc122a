package cli

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvsparse/pattern"
	"github.com/katalvlaran/lvsparse/sparse"
)

// Block modes accepted in a problem file.
const (
	ModeAdd = "add"
	ModeSet = "set"
)

// Problem is an assembly problem read from YAML.
type Problem struct {
	Rows      int         `yaml:"rows" json:"rows"`
	Cols      int         `yaml:"cols" json:"cols"`
	Pattern   PatternSpec `yaml:"pattern" json:"pattern"`
	Blocks    []BlockSpec `yaml:"blocks" json:"blocks"`
	Dirichlet []int       `yaml:"dirichlet,omitempty" json:"dirichlet,omitempty"`
	Scale     *float64    `yaml:"scale,omitempty" json:"scale,omitempty"`
	X         []float64   `yaml:"x,omitempty" json:"x,omitempty"`
	Strict    bool        `yaml:"strict,omitempty" json:"strict,omitempty"`
	Norms     []string    `yaml:"norms,omitempty" json:"norms,omitempty"`
}

// PatternSpec declares candidate positions. Cells are dof lists coupling every
// pair of their members; Entries are single (row, col) pairs.
type PatternSpec struct {
	Diagonal bool     `yaml:"diagonal" json:"diagonal"`
	Cells    [][]int  `yaml:"cells,omitempty" json:"cells,omitempty"`
	Entries  [][2]int `yaml:"entries,omitempty" json:"entries,omitempty"`
}

// BlockSpec is one dense contribution, row-major.
type BlockSpec struct {
	Rows   []int     `yaml:"rows" json:"rows"`
	Cols   []int     `yaml:"cols" json:"cols"`
	Values []float64 `yaml:"values" json:"values"`
	Mode   string    `yaml:"mode,omitempty" json:"mode,omitempty"`
}

// ProblemError describes a malformed problem file.
type ProblemError struct {
	Field   string
	Message string
}

func (e *ProblemError) Error() string {
	return fmt.Sprintf("problem: %s: %s", e.Field, e.Message)
}

// LoadProblem reads and validates a YAML problem file.
func LoadProblem(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read problem: %w", err)
	}

	return ParseProblem(data)
}

// ParseProblem decodes YAML into a Problem and validates its shape.
// Unknown keys are rejected so typos surface early.
func ParseProblem(data []byte) (*Problem, error) {
	var p Problem
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("parse problem: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Validate checks fields the store cannot check itself (modes, norm names,
// vector length). Index ranges are left to the store.
func (p *Problem) Validate() error {
	if p.Rows < 0 || p.Cols < 0 {
		return &ProblemError{Field: "rows/cols", Message: fmt.Sprintf("negative shape %dx%d", p.Rows, p.Cols)}
	}
	for k, b := range p.Blocks {
		switch b.Mode {
		case "", ModeAdd, ModeSet:
		default:
			return &ProblemError{Field: fmt.Sprintf("blocks[%d].mode", k), Message: fmt.Sprintf("unknown mode %q", b.Mode)}
		}
	}
	for _, n := range p.Norms {
		if _, err := sparse.ParseNormType(n); err != nil {
			return &ProblemError{Field: "norms", Message: err.Error()}
		}
	}
	if p.X != nil && len(p.X) != p.Cols {
		return &ProblemError{Field: "x", Message: fmt.Sprintf("length %d, want cols=%d", len(p.X), p.Cols)}
	}

	return nil
}

// BuildPattern converts the pattern section into a finalized Sparsity.
func (p *Problem) BuildPattern() (*pattern.Sparsity, error) {
	sp, err := pattern.NewSparsity(p.Rows, p.Cols)
	if err != nil {
		return nil, err
	}
	if p.Pattern.Diagonal {
		if err = sp.InsertDiagonal(); err != nil {
			return nil, err
		}
	}
	if err = sp.InsertCells(p.Pattern.Cells); err != nil {
		return nil, err
	}
	for _, e := range p.Pattern.Entries {
		if err = sp.Insert([]int{e[0]}, []int{e[1]}); err != nil {
			return nil, err
		}
	}
	sp.Apply()

	return sp, nil
}

// Assemble runs the full pipeline on a fresh store of the given backend:
// Init from the pattern, every block, Apply, optional Scale, Dirichlet rows.
func (p *Problem) Assemble(backend string, log *slog.Logger) (sparse.Matrix, error) {
	opts := []sparse.Option{sparse.WithLogger(log)}
	if p.Strict {
		opts = append(opts, sparse.WithStrictPattern())
	}
	m, err := NewMatrix(backend, opts...)
	if err != nil {
		return nil, err
	}
	sp, err := p.BuildPattern()
	if err != nil {
		return nil, err
	}
	if err = m.Init(sp); err != nil {
		return nil, err
	}

	for k, b := range p.Blocks {
		if b.Mode == ModeSet {
			err = m.Set(b.Values, b.Rows, b.Cols)
		} else {
			err = m.Add(b.Values, b.Rows, b.Cols)
		}
		if err != nil {
			return nil, fmt.Errorf("blocks[%d]: %w", k, err)
		}
	}
	if err = m.Apply(sparse.ApplyAdd); err != nil {
		return nil, err
	}
	if p.Scale != nil {
		if err = m.Scale(*p.Scale); err != nil {
			return nil, err
		}
	}
	if len(p.Dirichlet) > 0 {
		if err = m.Ident(p.Dirichlet); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ValidBackends lists the names accepted by --backend.
var ValidBackends = []string{"csr", "csc", "dense"}

// errUnknownBackend is returned by NewMatrix for names outside ValidBackends.
var errUnknownBackend = errors.New("unknown backend")

// NewMatrix creates an empty 0×0 store of the named backend.
func NewMatrix(backend string, opts ...sparse.Option) (sparse.Matrix, error) {
	switch backend {
	case "csr":
		m, err := sparse.NewCSR(0, 0, opts...)
		if err != nil {
			return nil, err
		}

		return m, nil
	case "csc":
		m, err := sparse.NewCSC(0, 0, opts...)
		if err != nil {
			return nil, err
		}

		return m, nil
	case "dense":
		m, err := sparse.NewDense(0, 0, opts...)
		if err != nil {
			return nil, err
		}

		return m, nil
	default:
		return nil, fmt.Errorf("%w %q: must be one of %v", errUnknownBackend, backend, ValidBackends)
	}
}
