package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/deck/internal/ports/primary"
	"github.com/example/deck/internal/wire"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage cards on a board",
}

var cardCreateCmd = &cobra.Command{
	Use:   "create [board-id] [column-id] [title]",
	Short: "Append a card to a column",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		description, _ := cmd.Flags().GetString("description")

		if err := loadBoard(ctx, args[0]); err != nil {
			return err
		}
		card, err := wire.CardService().CreateCard(ctx, primary.CreateCardRequest{
			ColumnID:    args[1],
			Title:       args[2],
			Description: description,
		})
		if err != nil {
			return fmt.Errorf("failed to create card: %w", err)
		}
		fmt.Printf("✓ Created card %s: %s (position %d)\n", card.ID, card.Title, card.Position)
		return nil
	},
}

var cardEditCmd = &cobra.Command{
	Use:   "edit [board-id] [card-id]",
	Short: "Edit a card's title and/or description",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		req := primary.UpdateCardRequest{ID: args[1]}
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			req.Title = &title
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			req.Description = &description
		}
		if req.Title == nil && req.Description == nil {
			return fmt.Errorf("nothing to edit: pass --title and/or --description")
		}

		if err := loadBoard(ctx, args[0]); err != nil {
			return err
		}
		card, err := wire.CardService().UpdateCard(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to edit card: %w", err)
		}
		fmt.Printf("✓ Updated card %s: %s\n", card.ID, card.Title)
		return nil
	},
}

var cardMoveCmd = &cobra.Command{
	Use:   "move [board-id] [card-id] [column-id]",
	Short: "Move a card to a column; --index places it, default appends",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		indexStr, _ := cmd.Flags().GetString("index")
		index := -1
		if indexStr != "" {
			var err error
			index, err = strconv.Atoi(indexStr)
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", indexStr, err)
			}
		}

		if err := loadBoard(ctx, args[0]); err != nil {
			return err
		}
		card, err := wire.CardService().MoveCard(ctx, primary.MoveCardRequest{
			ID:       args[1],
			ColumnID: args[2],
			ToIndex:  index,
		})
		if err != nil {
			return fmt.Errorf("failed to move card: %w", err)
		}
		fmt.Printf("✓ Moved card %s to column %s (position %d)\n", card.Title, card.ColumnID, card.Position)
		return nil
	},
}

var cardDeleteCmd = &cobra.Command{
	Use:   "delete [board-id] [card-id]",
	Short: "Delete a card",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadBoard(ctx, args[0]); err != nil {
			return err
		}
		if err := wire.CardService().DeleteCard(ctx, args[1]); err != nil {
			return fmt.Errorf("failed to delete card: %w", err)
		}
		fmt.Printf("✓ Deleted card %s\n", args[1])
		return nil
	},
}

var cardTagCmd = &cobra.Command{
	Use:   "tag [board-id] [card-id] [tag-name]",
	Short: "Attach a tag to a card",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadBoard(ctx, args[0]); err != nil {
			return err
		}
		tag, err := tagByName(ctx, args[2])
		if err != nil {
			return err
		}
		card, err := wire.CardService().AddTagToCard(ctx, args[1], tag.ID)
		if err != nil {
			return fmt.Errorf("failed to tag card: %w", err)
		}
		fmt.Printf("✓ Tagged card %s with #%s\n", card.Title, tag.Name)
		return nil
	},
}

var cardUntagCmd = &cobra.Command{
	Use:   "untag [board-id] [card-id] [tag-name]",
	Short: "Detach a tag from a card",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadBoard(ctx, args[0]); err != nil {
			return err
		}
		tag, err := tagByName(ctx, args[2])
		if err != nil {
			return err
		}
		card, err := wire.CardService().RemoveTagFromCard(ctx, args[1], tag.ID)
		if err != nil {
			return fmt.Errorf("failed to untag card: %w", err)
		}
		fmt.Printf("✓ Removed #%s from card %s\n", tag.Name, card.Title)
		return nil
	},
}

func init() {
	cardCreateCmd.Flags().StringP("description", "d", "", "Card description")
	cardEditCmd.Flags().String("title", "", "New title")
	cardEditCmd.Flags().String("description", "", "New description")
	cardMoveCmd.Flags().StringP("index", "i", "", "Destination display index (0-based)")

	cardCmd.AddCommand(cardCreateCmd)
	cardCmd.AddCommand(cardEditCmd)
	cardCmd.AddCommand(cardMoveCmd)
	cardCmd.AddCommand(cardDeleteCmd)
	cardCmd.AddCommand(cardTagCmd)
	cardCmd.AddCommand(cardUntagCmd)
}

// CardCmd returns the card command
func CardCmd() *cobra.Command {
	return cardCmd
}
