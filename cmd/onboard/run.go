package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/onboard"
	"github.com/aretw0/onboard/internal/cli"
	"github.com/aretw0/onboard/internal/presentation/tui"
	"github.com/aretw0/onboard/pkg/domain"
	"github.com/aretw0/onboard/pkg/observability"
	"github.com/aretw0/onboard/pkg/persistence/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fill in the registration form interactively",
	Long: fmt.Sprintf(`Walks through the registration stages in the terminal.
Leave an answer empty to keep the current value. Type %s to return to the
previous stage or %s to stop; with --session, progress is kept in the
configured store and can be resumed later.`, cli.CommandBack, cli.CommandQuit),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		var opts []onboard.Option
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			opts = append(opts, onboard.WithLifecycleHooks(observability.LogHooks(logger)))
		}
		engine, err := newEngine(logger, opts...)
		if err != nil {
			return err
		}

		// Wizard progress never persists passwords; they are asked again on resume.
		secrets, err := middleware.NewSecretsMiddleware("(?i)password")
		if err != nil {
			return err
		}
		sessions, closeStore, err := cli.OpenSessions(cfg, logger, secrets)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		sessionID, _ := cmd.Flags().GetString("session")
		if fresh, _ := cmd.Flags().GetBool("fresh"); fresh && sessionID != "" {
			if err := sessions.Delete(ctx, sessionID); err != nil {
				return err
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		state, err := sessions.LoadOrStart(ctx, sessionID, func(ctx context.Context, id string) (*domain.State, error) {
			return engine.Start(ctx, id, nil)
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			tui.PrintBanner(out, onboard.Version)
			if state.CurrentStage > 1 {
				printSystemMessage(cmd, "Resuming session '%s' at stage %d...", sessionID, state.CurrentStage)
			}
		}

		prompter := cli.NewPrompter(cmd.InOrStdin(), out, cli.WithSecretReader(cli.TerminalSecretReader(os.Stdin)))
		wizard := cli.NewWizard(engine, prompter, out,
			cli.WithSessions(sessions),
			cli.WithRenderer(tui.NewRenderer()),
		)

		_, _, err = wizard.Run(ctx, state)
		switch {
		case err == nil:
			printSystemMessage(cmd, "Registration submitted.")
			return nil
		case cli.IsInterrupted(err):
			if sig := ctx.Signal(); sig != nil {
				fmt.Fprintln(out, "[CTRL+C]")
			}
			printSystemMessage(cmd, "Stopped. Resume with --session %s", sessionID)
			return nil
		default:
			return err
		}
	},
}

func printSystemMessage(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), ">>> %s\n", fmt.Sprintf(format, args...))
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("session", "s", "", "Session ID to create or resume")
	runCmd.Flags().Bool("fresh", false, "Discard the stored session before starting")
	runCmd.Flags().Bool("debug", false, "Log lifecycle events to stderr")
	runCmd.Flags().BoolP("quiet", "q", false, "Skip the banner")
}
