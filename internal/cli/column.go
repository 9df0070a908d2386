package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/deck/internal/ports/primary"
	"github.com/example/deck/internal/wire"
)

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Manage columns on a board",
}

var columnCreateCmd = &cobra.Command{
	Use:   "create [board-id] [title]",
	Short: "Append a column to a board",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadBoard(ctx, args[0]); err != nil {
			return err
		}
		col, err := wire.ColumnService().CreateColumn(ctx, primary.CreateColumnRequest{
			BoardID: args[0],
			Title:   args[1],
		})
		if err != nil {
			return fmt.Errorf("failed to create column: %w", err)
		}
		fmt.Printf("✓ Created column %s: %s (position %d)\n", col.ID, col.Title, col.Position)
		return nil
	},
}

var columnRenameCmd = &cobra.Command{
	Use:   "rename [board-id] [column-id] [title]",
	Short: "Rename a column",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadBoard(ctx, args[0]); err != nil {
			return err
		}
		col, err := wire.ColumnService().UpdateColumn(ctx, primary.UpdateColumnRequest{
			ID:    args[1],
			Title: args[2],
		})
		if err != nil {
			return fmt.Errorf("failed to rename column: %w", err)
		}
		fmt.Printf("✓ Renamed column %s to %s\n", col.ID, col.Title)
		return nil
	},
}

var columnMoveCmd = &cobra.Command{
	Use:   "move [board-id] [column-id] [index]",
	Short: "Move a column to a display index (0-based)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		index, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[2], err)
		}
		if err := loadBoard(ctx, args[0]); err != nil {
			return err
		}
		col, err := wire.ColumnService().MoveColumn(ctx, primary.MoveColumnRequest{
			ID:      args[1],
			ToIndex: index,
		})
		if err != nil {
			return fmt.Errorf("failed to move column: %w", err)
		}
		fmt.Printf("✓ Moved column %s to position %d\n", col.Title, col.Position)
		return nil
	},
}

var columnDeleteCmd = &cobra.Command{
	Use:   "delete [board-id] [column-id]",
	Short: "Delete a column and its cards",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadBoard(ctx, args[0]); err != nil {
			return err
		}
		if err := wire.ColumnService().DeleteColumn(ctx, args[1]); err != nil {
			return fmt.Errorf("failed to delete column: %w", err)
		}
		fmt.Printf("✓ Deleted column %s\n", args[1])
		return nil
	},
}

func init() {
	columnCmd.AddCommand(columnCreateCmd)
	columnCmd.AddCommand(columnRenameCmd)
	columnCmd.AddCommand(columnMoveCmd)
	columnCmd.AddCommand(columnDeleteCmd)
}

// ColumnCmd returns the column command
func ColumnCmd() *cobra.Command {
	return columnCmd
}
