// Command dispatch-gen generates the Next methods that link the nodes of a
// dispatch command tree.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	defaultOutput       = "zz_generated.dispatch.go"
	defaultDispatchPath = "github.com/tensorlakeai/indexify-cli/pkg/dispatch"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outputName   string
		dispatchPath string
	)

	cmd := &cobra.Command{
		Use:   "dispatch-gen [dir]",
		Short: "Generate Next methods for a dispatch command tree",
		Long: `Generate the Next methods of every dispatch node declared in a package.

Types are marked with directives in their doc comment:
  //dispatch:command   a composite or leaf command struct
  //dispatch:selector  a closed choice of pointer alternatives; callers set
                       exactly one, and Next returns the first non-nil
                       alternative in declaration order

A composite marks its one subcommand field with the tag dispatch:"subcommand".
A command without such a field is a leaf.

Example:
  //go:generate go run ../../cmd/dispatch-gen .`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return run(dir, outputName, dispatchPath)
		},
	}

	cmd.Flags().StringVar(&outputName, "output", defaultOutput, "Name of the generated file, written into dir")
	cmd.Flags().StringVar(&dispatchPath, "package-path", defaultDispatchPath, "Import path of the dispatch package")

	return cmd
}

func run(dir, outputName, dispatchPath string) error {
	pkg, err := parsePackage(dir, outputName)
	if err != nil {
		return err
	}

	src, err := generate(pkg, dispatchPath, outputName)
	if err != nil {
		return err
	}

	out := filepath.Join(dir, outputName)
	if err := os.WriteFile(out, src, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return nil
}
