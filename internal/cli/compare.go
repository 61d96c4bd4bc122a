package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvsparse/sparse"
)

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	RTol float64
	ATol float64
}

// CompareResult reports whether every backend assembled the same matrix as
// the reference backend (the --backend flag).
type CompareResult struct {
	Reference string          `json:"reference"`
	Agree     bool            `json:"agree"`
	Backends  []BackendResult `json:"backends"`
}

// BackendResult is the outcome for one backend.
type BackendResult struct {
	Backend string `json:"backend"`
	NNZ     int    `json:"nnz"`
	Close   bool   `json:"close"`
}

// String renders the comparison for text output.
func (r CompareResult) String() string {
	var b strings.Builder
	for _, br := range r.Backends {
		mark := "✓"
		if !br.Close {
			mark = "✗"
		}
		fmt.Fprintf(&b, "%s %-5s nnz=%d\n", mark, br.Backend, br.NNZ)
	}
	if r.Agree {
		fmt.Fprintf(&b, "all backends agree with %s", r.Reference)
	} else {
		fmt.Fprintf(&b, "backends disagree with %s", r.Reference)
	}
	return b.String()
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareOptions{}

	cmd := &cobra.Command{
		Use:   "compare <problem.yaml>",
		Short: "Assemble a problem on every backend and compare the results",
		Long: `Assemble the YAML problem on csr, csc and dense and check that every result
is entrywise close to the one built on --backend (|a-b| <= atol + rtol*|b|).
Exits with code 1 when any backend disagrees.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.RTol, "rtol", 1e-12, "relative tolerance")
	cmd.Flags().Float64Var(&opts.ATol, "atol", 1e-12, "absolute tolerance")

	return cmd
}

func runCompare(rootOpts *RootOptions, opts *CompareOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	p, err := LoadProblem(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeProblem, err)
	}
	result, err := CompareBackends(p, rootOpts.Backend, opts.RTol, opts.ATol, formatter)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeStore, err)
	}
	if err = formatter.Success(result); err != nil {
		return err
	}
	if !result.Agree {
		return NewExitError(ExitFailure, ErrCodeMismatch+": backends disagree")
	}

	return nil
}

// CompareBackends assembles p on every backend and compares each against reference.
func CompareBackends(p *Problem, reference string, rtol, atol float64, formatter *OutputFormatter) (*CompareResult, error) {
	log := formatter.Logger()
	ref, err := p.Assemble(reference, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", reference, err)
	}

	result := &CompareResult{Reference: reference, Agree: true}
	for _, name := range ValidBackends {
		var m sparse.Matrix
		if name == reference {
			m = ref
		} else if m, err = p.Assemble(name, log); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		ok, err := sparse.AllClose(m, ref, rtol, atol)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		result.Backends = append(result.Backends, BackendResult{Backend: name, NNZ: m.NNZ(), Close: ok})
		result.Agree = result.Agree && ok
	}

	return result, nil
}
