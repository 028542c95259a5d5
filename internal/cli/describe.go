package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

// NewDescribeCmd creates the describe command.
func NewDescribeCmd() *cobra.Command {
	var (
		path         string
		configName   string
		buildType    string
		osFlag       string
		archFlag     string
		compilerFlag string
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Describe a package",
		Long:  "Resolve a package's build settings and print a flat JSON description for IDEs and tooling",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDescribe(cmd, path, configName, buildType, osFlag, archFlag, compilerFlag)
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "package directory")
	cmd.Flags().StringVar(&configName, "config-name", "", "configuration to resolve (default: root settings only)")
	cmd.Flags().StringVar(&buildType, "build-type", "", "build type to apply on top of the resolved settings")
	cmd.Flags().StringVar(&osFlag, "os", "", "target operating system (default: host)")
	cmd.Flags().StringVar(&archFlag, "arch", "", "target architecture (default: host)")
	cmd.Flags().StringVar(&compilerFlag, "compiler", "", "compiler identity (default: from config)")

	return cmd
}

func runDescribe(cmd *cobra.Command, path, configName, buildType, osFlag, archFlag, compilerFlag string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pkg, comp, err := loadPackage(cmd.Context(), path, cfg, compilerFlag)
	if err != nil {
		return err
	}
	pl := targetPlatform(osFlag, archFlag, comp.Name())

	desc, err := pkg.Describe(pl, comp, configName)
	if err != nil {
		return err
	}

	if buildType != "" {
		bs, err := pkg.GetBuildSettings(pl, configName)
		if err != nil {
			return err
		}
		if err := pkg.AddBuildTypeSettings(&bs, pl, buildType); err != nil {
			return err
		}
		desc.DFlags = bs.DFlags
		desc.LFlags = bs.LFlags
		desc.Options = bs.Options.Names()
		desc.BuildRequirements = bs.Requirements.Names()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(desc)
}
