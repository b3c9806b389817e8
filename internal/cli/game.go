package cli

import (
	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Gameplay commands",
	}

	cmd.AddCommand(newGameStateCmd())
	cmd.AddCommand(newGameCompleteCmd())
	cmd.AddCommand(newGameCatalogCmd())

	return cmd
}

func newGameStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show your card and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Get("/api/v1/game", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <component-id>",
		Short: "Mark a component as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"component_id": args[0]}
			var result CompletionResult

			if err := client.Post("/api/v1/game/complete", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List all components",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Catalog

			if err := client.Get("/api/v1/components", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
