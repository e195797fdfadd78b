package esglens

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/esglens/esglens/internal/engine"
	"github.com/esglens/esglens/internal/report"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage baselines",
	}

	var path, output string
	update := &cobra.Command{
		Use:   "update",
		Short: "Accept every current hit into the baseline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			abs, _ := filepath.Abs(path)
			rs, err := resolveScan(cmd, abs, false)
			if err != nil {
				return err
			}
			res, err := engine.Scan(context.Background(), rs.cfg)
			if err != nil {
				return err
			}
			if err := report.SaveBaseline(output, res.Documents); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Baseline updated: %d hits in %s\n", res.Hits(), output)
			return nil
		},
	}
	update.Flags().StringVarP(&path, "path", "p", ".", "file or directory to scan")
	update.Flags().StringVarP(&output, "output", "o", defaultBaselineFile, "baseline file to write")

	rootCmd.AddCommand(cmd)
	cmd.AddCommand(update)
}
