package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the tool version, or the resolved version of a package when --path is given",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd, path)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "show the resolved version of the package in this directory")

	return cmd
}

func runVersion(cmd *cobra.Command, path string) error {
	if path == "" {
		fmt.Printf("mason version %s\n", Version)
		fmt.Printf("Build date: %s\n", BuildDate)
		fmt.Printf("Git commit: %s\n", GitCommit)
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pkg, _, err := loadPackage(cmd.Context(), path, cfg, "")
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", pkg.QualifiedName(), pkg.Version())
	return nil
}
