package cli

import (
	"fmt"

	"github.com/glorpus-work/mason/pkg/recipe"
	"github.com/spf13/cobra"
)

// NewStoreCmd creates the store command.
func NewStoreCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "store [VERSION]",
		Short: "Persist the effective package recipe",
		Long: "Write the package's effective recipe, including the resolved version and " +
			"synthesized configurations, back to disk. An explicit VERSION overrides the " +
			"resolved one before writing.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version := ""
			if len(args) == 1 {
				version = args[0]
			}
			return runStore(cmd, path, version)
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "package directory")

	return cmd
}

func runStore(cmd *cobra.Command, path, version string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pkg, _, err := loadPackage(cmd.Context(), path, cfg, "")
	if err != nil {
		return err
	}

	if version != "" {
		if err := pkg.SetVersion(recipe.Version(version)); err != nil {
			return err
		}
	}
	if err := pkg.StoreInfo(); err != nil {
		return err
	}

	fmt.Printf("Stored %s %s\n", pkg.QualifiedName(), pkg.Version())
	return nil
}
