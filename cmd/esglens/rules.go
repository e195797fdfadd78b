package esglens

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/esglens/esglens/internal/rules"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var flagExportOutput string

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the active rule table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := activeTable()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if flagJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(table.Specs())
			}
			tw := tablewriter.NewWriter(w)
			tw.Header("ID", "CATEGORY", "TRIGGER", "UNLESS")
			for _, r := range table.Rules() {
				if err := tw.Append([]string{strconv.Itoa(r.ID), string(r.Category), r.Trigger, r.Unless}); err != nil {
					return err
				}
			}
			if err := tw.Render(); err != nil {
				return err
			}
			fmt.Fprintf(w, "Third-party marker: %s\n", table.ThirdPartySource())
			fmt.Fprintf(w, "Fingerprint: %s\n", table.Fingerprint())
			return nil
		},
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Write the active rule table as a YAML rule pack",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := activeTable()
			if err != nil {
				return err
			}
			if flagExportOutput == "" || flagExportOutput == "-" {
				return rules.WritePack(cmd.OutOrStdout(), table)
			}
			f, err := os.Create(flagExportOutput)
			if err != nil {
				return err
			}
			if err := rules.WritePack(f, table); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Wrote", flagExportOutput)
			return nil
		},
	}
	export.Flags().StringVarP(&flagExportOutput, "output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(cmd)
	cmd.AddCommand(export)
}

// activeTable resolves the rule table from --rules, ESGLENS_RULES, or config
// in the working directory.
func activeTable() (*rules.Table, error) {
	wd, _ := os.Getwd()
	lcfg, gcfg := loadConfigs(wd)
	table, err := loadTable(pickString(flagRules, lcfg.Rules, gcfg.Rules))
	if err != nil {
		return nil, fmt.Errorf("rule pack: %w", err)
	}
	return table, nil
}
