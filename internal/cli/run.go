package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvsparse/sparse"
)

// NormResult is one computed norm.
type NormResult struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// Report is the result of assembling one problem.
type Report struct {
	Backend string       `json:"backend"`
	Rows    int          `json:"rows"`
	Cols    int          `json:"cols"`
	NNZ     int          `json:"nnz"`
	Norms   []NormResult `json:"norms"`
	Y       []float64    `json:"y,omitempty"`  // A x
	YT      []float64    `json:"yt,omitempty"` // Aᵀ x, square systems only
}

// String renders the report for text output.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "backend: %s\n", r.Backend)
	fmt.Fprintf(&b, "shape:   %dx%d\n", r.Rows, r.Cols)
	fmt.Fprintf(&b, "nnz:     %d\n", r.NNZ)
	for _, n := range r.Norms {
		fmt.Fprintf(&b, "norm %s: %g\n", n.Type, n.Value)
	}
	if r.Y != nil {
		fmt.Fprintf(&b, "A x:     %v\n", r.Y)
	}
	if r.YT != nil {
		fmt.Fprintf(&b, "Aᵀ x:    %v\n", r.YT)
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <problem.yaml>",
		Short: "Assemble a problem and report nnz, norms and products",
		Long: `Assemble the YAML problem on the selected backend: Init from the declared
pattern, add or set every block, Apply, scale, turn the dirichlet rows into
identity rows, then report nnz, the requested norms (all three by default)
and, when x is given, A x and (for square systems) Aᵀ x.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRun(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	p, err := LoadProblem(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeProblem, err)
	}
	report, err := BuildReport(p, opts.Backend, formatter)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeStore, err)
	}

	return formatter.Success(report)
}

// BuildReport assembles p on backend and computes the report.
func BuildReport(p *Problem, backend string, formatter *OutputFormatter) (*Report, error) {
	m, err := p.Assemble(backend, formatter.Logger())
	if err != nil {
		return nil, err
	}

	report := &Report{
		Backend: m.Kind(),
		Rows:    m.Rows(),
		Cols:    m.Cols(),
		NNZ:     m.NNZ(),
	}
	norms := p.Norms
	if len(norms) == 0 {
		norms = []string{string(sparse.NormL1), string(sparse.NormLinf), string(sparse.NormFrobenius)}
	}
	for _, n := range norms {
		v, err := m.Norm(sparse.NormType(n))
		if err != nil {
			return nil, err
		}
		report.Norms = append(report.Norms, NormResult{Type: n, Value: v})
	}

	if p.X == nil {
		return report, nil
	}
	x, err := m.NewVector(1)
	if err != nil {
		return nil, err
	}
	for i, v := range p.X {
		x.SetVec(i, v)
	}
	y, err := m.NewVector(0)
	if err != nil {
		return nil, err
	}
	if err = m.Mult(x, y); err != nil {
		return nil, err
	}
	report.Y = vectorData(y.Len(), y.AtVec)

	if m.Rows() == m.Cols() {
		yt, err := m.NewVector(1)
		if err != nil {
			return nil, err
		}
		if err = m.TransposeMult(x, yt); err != nil {
			return nil, err
		}
		report.YT = vectorData(yt.Len(), yt.AtVec)
	}

	return report, nil
}

// vectorData copies a vector into a fresh slice; empty vectors give a non-nil
// empty slice so the report still shows them.
func vectorData(n int, at func(int) float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = at(i)
	}
	return out
}
