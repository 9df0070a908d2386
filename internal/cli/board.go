package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/deck/internal/wire"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Manage boards",
	Long:  "Create, list, show, rename, delete, export and import boards",
}

var boardCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.BoardAdapter().Create(context.Background(), args[0])
	},
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all boards",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.BoardAdapter().List(context.Background())
	},
}

var boardShowCmd = &cobra.Command{
	Use:   "show [board-id]",
	Short: "Show a board's columns and cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadBoards(ctx); err != nil {
			return err
		}
		return wire.BoardAdapter().Show(ctx, args[0])
	},
}

var boardRenameCmd = &cobra.Command{
	Use:   "rename [board-id] [title]",
	Short: "Rename a board",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadBoards(ctx); err != nil {
			return err
		}
		return wire.BoardAdapter().Rename(ctx, args[0], args[1])
	},
}

var boardDeleteCmd = &cobra.Command{
	Use:   "delete [board-id]",
	Short: "Delete a board and everything on it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadBoard(ctx, args[0]); err != nil {
			return err
		}
		return wire.BoardAdapter().Delete(ctx, args[0])
	},
}

var boardExportCmd = &cobra.Command{
	Use:   "export [board-id] [file]",
	Short: "Export a board to a JSON file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadBoards(ctx); err != nil {
			return err
		}
		return wire.TransferAdapter().Export(ctx, args[0], args[1])
	},
}

var boardImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a board from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.TransferAdapter().Import(context.Background(), args[0])
	},
}

func init() {
	boardCmd.AddCommand(boardCreateCmd)
	boardCmd.AddCommand(boardListCmd)
	boardCmd.AddCommand(boardShowCmd)
	boardCmd.AddCommand(boardRenameCmd)
	boardCmd.AddCommand(boardDeleteCmd)
	boardCmd.AddCommand(boardExportCmd)
	boardCmd.AddCommand(boardImportCmd)
}

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	return boardCmd
}
