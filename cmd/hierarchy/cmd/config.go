package cmd

import (
	"fmt"

	"github.com/go-drift/hierarchy/internal/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "config",
		Short: "Show the resolved configuration",
		Long: `Show the configuration read from hierarchy.yaml in DIR (default: the
current directory), with defaults applied.`,
		Usage: "hierarchy config [DIR]",
		Run:   runConfig,
	})
}

func runConfig(args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	cfg, err := config.Resolve(dir)
	if err != nil {
		return err
	}

	module := cfg.ModulePath
	if module == "" {
		module = "(none)"
	}
	fmt.Fprintf(stdout, "Directory: %s\n", cfg.Dir)
	fmt.Fprintf(stdout, "Module:    %s\n", module)
	fmt.Fprintf(stdout, "Version:   %s\n", cfg.Version)
	fmt.Fprintf(stdout, "Root:      %s\n", cfg.RootLabel)
	fmt.Fprintf(stdout, "Surface:   %gx%g\n", cfg.Width, cfg.Height)
	fmt.Fprintf(stdout, "Color:     %t\n", cfg.Color)
	fmt.Fprintf(stdout, "Verbose:   %t\n", cfg.Verbose)
	return nil
}
