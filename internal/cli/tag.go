package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/deck/internal/ports/primary"
	"github.com/example/deck/internal/wire"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags (labels shared across boards)",
}

var tagCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		tagColor, _ := cmd.Flags().GetString("color")

		// Load existing tags so the unique-name check has data to work on.
		if _, err := wire.TagService().ListTags(ctx); err != nil {
			return fmt.Errorf("failed to load tags: %w", err)
		}
		tag, err := wire.TagService().CreateTag(ctx, primary.CreateTagRequest{
			Name:  args[0],
			Color: tagColor,
		})
		if err != nil {
			return fmt.Errorf("failed to create tag: %w", err)
		}
		fmt.Printf("✓ Created tag %s: #%s\n", tag.ID, tag.Name)
		return nil
	},
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := wire.TagService().ListTags(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}

		if len(tags) == 0 {
			fmt.Println("No tags found")
			return nil
		}

		name := color.New(color.FgYellow).SprintFunc()
		for _, tag := range tags {
			fmt.Printf("%-38s %s", tag.ID, name("#"+tag.Name))
			if tag.Color != "" {
				fmt.Printf(" (%s)", tag.Color)
			}
			fmt.Println()
		}
		return nil
	},
}

var tagDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a tag (detaches it from every card)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		tag, err := tagByName(ctx, args[0])
		if err != nil {
			return err
		}
		if err := wire.TagService().DeleteTag(ctx, tag.ID); err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}
		fmt.Printf("✓ Deleted tag #%s\n", tag.Name)
		return nil
	},
}

func init() {
	tagCreateCmd.Flags().StringP("color", "c", "", "Tag color (hex, e.g. #ff0000)")

	tagCmd.AddCommand(tagCreateCmd)
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagDeleteCmd)
}

// TagCmd returns the tag command
func TagCmd() *cobra.Command {
	return tagCmd
}
