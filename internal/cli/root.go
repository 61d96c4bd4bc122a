package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Backend string // "csr" | "csc" | "dense"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the spmat CLI.
// Flag defaults come from SPMAT_BACKEND / SPMAT_FORMAT, optionally loaded from
// a .env file; explicit flags override them.
func NewRootCommand() *cobra.Command {
	_ = loadEnvFile()
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "spmat",
		Short: "spmat - sparse matrix assembly driver",
		Long: `Assemble a sparse system described in YAML through the backend-agnostic
store (CSR, CSC or Dense), impose boundary rows, and report nnz, norms and
matrix-vector products.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if !slices.Contains(ValidBackends, opts.Backend) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid backend %q: must be one of %v", opts.Backend, ValidBackends))
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (debug logs on stderr)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", envOr(EnvFormat, DefaultFormat), "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Backend, "backend", "b", envOr(EnvBackend, DefaultBackend), "storage backend (csr|csc|dense)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewCompareCommand(opts))

	return cmd
}

// newFormatter builds the formatter every subcommand writes through.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
