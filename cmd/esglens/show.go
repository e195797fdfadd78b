package esglens

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/esglens/esglens/internal/cache"
	"github.com/esglens/esglens/internal/report"
	"github.com/spf13/cobra"
)

func init() {
	var path string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Re-render the results of the last scan without rescanning",
		RunE: func(cmd *cobra.Command, _ []string) error {
			abs, _ := filepath.Abs(path)
			results, err := cache.LoadResults(cacheDir(abs))
			if err != nil {
				return fmt.Errorf("no saved results for %s (run esglens scan first): %w", abs, err)
			}
			table, err := activeTable()
			if err != nil {
				return err
			}
			if !flagJSON && !flagSARIF {
				_, _ = fmt.Fprintf(os.Stderr, "Last scan of %s at %s\n", results.Root, results.Timestamp.Local().Format("2006-01-02 15:04:05"))
			}
			opts := report.PrintOptions{
				NoColor:      !colorEnabled(flagNoColor, os.Stdout),
				FilesScanned: len(results.Documents),
			}
			return render(cmd.OutOrStdout(), results.Documents, opts, table)
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", ".", "scan root whose last results to show")
	rootCmd.AddCommand(cmd)
}
