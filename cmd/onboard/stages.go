package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List the form stages and their fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		engine, err := newEngine(newLogger(cfg))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(engine.Stages())
		}
		for _, st := range engine.Stages() {
			fmt.Fprintf(out, "%d. %s (%s): %s\n", st.Index, st.Title, st.Name, strings.Join(st.Fields, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stagesCmd)
	stagesCmd.Flags().Bool("json", false, "Print the stages as JSON")
}
