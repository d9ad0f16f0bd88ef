package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/onboard/internal/config"
	"github.com/aretw0/onboard/internal/presentation/tui"
	"github.com/aretw0/onboard/pkg/schema"
	"github.com/spf13/cobra"
)

var errInvalidRecord = errors.New("record is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a registration record",
	Long: `Validates a YAML or JSON record against the registration schema.
With --stage, only the fields of that stage (and the rules they fully cover)
are checked, as Advance would.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		engine, err := newEngine(newLogger(cfg))
		if err != nil {
			return err
		}

		record, err := config.LoadRecord(args[0])
		if err != nil {
			return err
		}

		stage, _ := cmd.Flags().GetInt("stage")
		var verdict schema.Verdict
		if stage > 0 {
			fields, err := engine.FieldsForStage(stage)
			if err != nil {
				return err
			}
			verdict = engine.ValidateSubset(cmd.Context(), record, fields...)
		} else {
			verdict = engine.ValidateRecord(cmd.Context(), record)
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(struct {
				Valid  bool              `json:"valid"`
				Errors map[string]string `json:"errors,omitempty"`
			}{verdict.Valid, verdict.Errors}); err != nil {
				return err
			}
		} else {
			style := tui.NewStyler()
			if verdict.Valid {
				fmt.Fprintln(out, style.OK("Record is valid ✅"))
				if stage == 0 {
					rec, err := engine.Normalize(verdict)
					if err != nil {
						return err
					}
					md, _ := tui.NewRenderer()(tui.Summary(rec, time.Now()))
					fmt.Fprint(out, md)
				}
			} else {
				style.PrintErrors(out, verdict.Errors, engine.Stages())
			}
		}

		if !verdict.Valid {
			return errInvalidRecord
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Int("stage", 0, "Validate only the fields of this stage (1-based)")
	validateCmd.Flags().Bool("json", false, "Print the verdict as JSON")
}
