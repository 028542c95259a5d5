package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLintCmd creates the lint command.
func NewLintCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check a package recipe for common mistakes",
		Long:  "Load a package and report recipe issues such as missing names or duplicate configurations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLint(cmd, path)
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "package directory")

	return cmd
}

func runLint(cmd *cobra.Command, path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Recipe checks run during package construction and report as warnings.
	pkg, _, err := loadPackage(cmd.Context(), path, cfg, "")
	if err != nil {
		return err
	}

	fmt.Printf("Checked package %s %s\n", pkg.QualifiedName(), pkg.Version())
	return nil
}
