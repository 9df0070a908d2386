package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/deck/internal/wire"
)

// drag drives the same resolver a UI drag gesture would, which makes the
// gesture semantics scriptable and testable from the shell.
var dragCmd = &cobra.Command{
	Use:   "drag [board-id] [card-id]",
	Short: "Drag a card onto another card or a column",
	Long: `Drag picks up a card and drops it on a target:
  --onto-card   reorders within a column, or moves to the target's column
  --onto-column appends the card to that column
With no target the gesture is cancelled and nothing changes.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		ontoCard, _ := cmd.Flags().GetString("onto-card")
		ontoColumn, _ := cmd.Flags().GetString("onto-column")
		if ontoCard != "" && ontoColumn != "" {
			return fmt.Errorf("pass --onto-card or --onto-column, not both")
		}

		if err := loadBoard(ctx, args[0]); err != nil {
			return err
		}

		drag := wire.DragService()
		if !drag.StartDrag(args[1]) {
			return fmt.Errorf("cannot drag card %s", args[1])
		}

		switch {
		case ontoCard != "":
			card, err := drag.DropOnCard(ctx, ontoCard)
			if err != nil {
				return fmt.Errorf("drop failed: %w", err)
			}
			if card == nil {
				fmt.Println("Drop had no target; gesture cancelled")
				return nil
			}
			fmt.Printf("✓ Dropped %s at position %d in column %s\n", card.Title, card.Position, card.ColumnID)
		case ontoColumn != "":
			card, err := drag.DropOnColumn(ctx, ontoColumn)
			if err != nil {
				return fmt.Errorf("drop failed: %w", err)
			}
			if card == nil {
				fmt.Println("Drop had no target; gesture cancelled")
				return nil
			}
			fmt.Printf("✓ Dropped %s at the end of column %s\n", card.Title, card.ColumnID)
		default:
			drag.CancelDrag()
			fmt.Println("No target; gesture cancelled")
		}
		return nil
	},
}

func init() {
	dragCmd.Flags().String("onto-card", "", "Target card id")
	dragCmd.Flags().String("onto-column", "", "Target column id")
}

// DragCmd returns the drag command
func DragCmd() *cobra.Command {
	return dragCmd
}
