package cmd

import (
	"fmt"
	"os"

	"github.com/go-drift/hierarchy/internal/config"
	"github.com/go-drift/hierarchy/pkg/errors"
	"github.com/go-drift/hierarchy/pkg/tree"
)

func init() {
	RegisterCommand(&Command{
		Name:  "repl",
		Short: "Start an interactive session",
		Long: `Start an interactive session on an empty tree.

The tree is configured from hierarchy.yaml in the --config directory (or the
current directory). Type "help" inside the session for its commands.`,
		Usage: "hierarchy repl [--config DIR]",
		Run:   runREPL,
	})
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Replay session commands from a file",
		Long: `Execute session commands from FILE, one per line, as if typed into
the REPL. Blank lines and lines starting with "//" are skipped. Execution
stops at "quit" or at the end of the file.`,
		Usage: "hierarchy run FILE [--config DIR]",
		Run:   runFile,
	})
}

// newSession resolves the configuration in dir, installs its error handler
// and returns a session on a fresh tree.
func newSession(dir string) (*Session, error) {
	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, err
	}
	errors.SetHandler(cfg.Handler())

	s := NewSession(tree.New(cfg.Options()...), stdout)
	s.Verbose = cfg.Verbose
	return s, nil
}

func runREPL(args []string) error {
	dir, _, err := splitConfigFlag(args)
	if err != nil {
		return err
	}
	s, err := newSession(dir)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "hierarchy REPL")
	fmt.Fprintln(stdout, "Type 'help' for available commands, 'quit' to exit")
	fmt.Fprintln(stdout)
	return s.Run(os.Stdin, "hierarchy> ")
}

func runFile(args []string) error {
	dir, rest, err := splitConfigFlag(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("run requires exactly one FILE argument")
	}

	f, err := os.Open(rest[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", rest[0], err)
	}
	defer f.Close()

	s, err := newSession(dir)
	if err != nil {
		return err
	}
	return s.Run(f, "")
}
