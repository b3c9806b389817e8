package cli

import (
	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session management commands",
	}

	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionJoinCmd())
	cmd.AddCommand(newSessionStateCmd())
	cmd.AddCommand(newSessionUnlockCmd())
	cmd.AddCommand(newSessionBonusCmd())
	cmd.AddCommand(newSessionTerminateCmd())

	return cmd
}

func newSessionCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new session (you become the facilitator)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post("/api/v1/sessions", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get("/api/v1/sessions/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code>",
		Short: "Join a session by code (resets your card and progress)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"code": args[0]}
			var result Session

			if err := client.Post("/api/v1/sessions/join", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state <session-id>",
		Short: "Show the facilitator dashboard for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionState

			if err := client.Get("/api/v1/sessions/"+args[0]+"/state", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionUnlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <session-id> <component-id>",
		Short: "Unlock a component for all participants",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/sessions/"+args[0]+"/unlock/"+args[1], nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Unlocked " + args[1])
			return nil
		},
	}
}

func newSessionBonusCmd() *cobra.Command {
	var disable bool

	cmd := &cobra.Command{
		Use:   "bonus <session-id>",
		Short: "Open the bonus round (use --disable to close it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]bool{"enabled": !disable}

			if err := client.Patch("/api/v1/sessions/"+args[0]+"/bonus", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if disable {
				out.PrintMessage("Bonus round closed")
			} else {
				out.PrintMessage("Bonus round open")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&disable, "disable", false, "Close the bonus round instead of opening it")

	return cmd
}

func newSessionTerminateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "terminate <session-id>",
		Short: "Terminate a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/sessions/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Session terminated")
			return nil
		},
	}
}
