package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/deck/internal/adapters/sqlite"
	"github.com/example/deck/internal/server"
	"github.com/example/deck/internal/wire"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the deck HTTP server",
	Long: `Serve exposes the local database over the deck HTTP API so other
deck instances can sync against it in remote mode.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = wire.ConfigOnly().ListenAddr
		}

		database, err := wire.OpenDatabase()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		e := server.New(sqlite.NewGateway(database))
		fmt.Printf("deck server listening on %s\n", addr)
		return e.Start(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, then :8080)")
}

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	return serveCmd
}
