package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/onboard/internal/cli"
	onboardhttp "github.com/aretw0/onboard/pkg/adapters/http"
	"github.com/aretw0/onboard/pkg/registration"
	"github.com/aretw0/onboard/pkg/session"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage in-progress sessions",
	Long: `List, inspect, and remove sessions held by the configured store.
The memory backend lives only as long as its process, so these commands are
mostly useful with the redis backend.`,
}

// openSessions loads the config and opens its store for a session subcommand.
func openSessions(cmd *cobra.Command) (*session.Manager, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	return cli.OpenSessions(cfg, newLogger(cfg))
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all active sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, closeStore, err := openSessions(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		ids, err := sessions.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("error listing sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(ids) == 0 {
			fmt.Fprintln(out, "No active sessions found.")
			return nil
		}
		fmt.Fprintln(out, "Active Sessions:")
		for _, id := range ids {
			fmt.Fprintln(out, "- "+id)
		}
		return nil
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the state of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, closeStore, err := openSessions(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		state, err := sessions.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error loading session '%s': %w", args[0], err)
		}

		// Secrets never leave the store.
		redacted := state.Clone()
		for f := range redacted.Values {
			if registration.Sensitive(f) {
				redacted.Values[f] = onboardhttp.Redacted
			}
		}

		data, err := json.MarshalIndent(redacted, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling state: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, closeStore, err := openSessions(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		all, _ := cmd.Flags().GetBool("all")
		if all {
			if args, err = sessions.List(cmd.Context()); err != nil {
				return fmt.Errorf("error listing sessions: %w", err)
			}
		} else if len(args) == 0 {
			return errors.New("requires at least one session id, or --all")
		}

		var errs []error
		for _, id := range args {
			if err := sessions.Delete(cmd.Context(), id); err != nil {
				errs = append(errs, fmt.Errorf("error removing '%s': %w", id, err))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session '%s'\n", id)
		}
		return errors.Join(errs...)
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
	sessionRmCmd.Flags().Bool("all", false, "Remove every session")
}
