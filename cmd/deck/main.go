package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/deck/internal/cli"
	"github.com/example/deck/internal/version"
	"github.com/example/deck/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "deck",
		Short:   "deck - kanban boards with optimistic sync",
		Version: version.String(),
		Long: `deck manages kanban boards from the terminal. Mutations apply
instantly to local state and persist asynchronously, either into a local
SQLite database or against a deck server (see 'deck serve').`,
	}

	rootCmd.AddCommand(cli.BoardCmd())
	rootCmd.AddCommand(cli.ColumnCmd())
	rootCmd.AddCommand(cli.CardCmd())
	rootCmd.AddCommand(cli.TagCmd())
	rootCmd.AddCommand(cli.DragCmd())
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.ConfigCmd())

	err := rootCmd.Execute()

	// Drain queued remote calls so optimistic mutations actually land
	// before the process exits.
	wire.Shutdown()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
