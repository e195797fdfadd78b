package esglens

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/esglens/esglens/internal/audit"
	"github.com/esglens/esglens/internal/types"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func init() {
	var path string
	var limit int
	var del int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded scans, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			abs, _ := filepath.Abs(path)
			log := audit.NewAuditLog(cacheDir(abs))
			if cmd.Flags().Changed("delete") {
				if err := log.DeleteRecord(del); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "Deleted record %d\n", del)
				return nil
			}
			records, err := log.LoadHistory()
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					fmt.Fprintln(cmd.OutOrStdout(), "No scans recorded")
					return nil
				}
				return err
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}
			w := cmd.OutOrStdout()
			if flagJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			tw := tablewriter.NewWriter(w)
			header := []any{"#", "WHEN", "SCAN ID", "DOCS", "HITS", "NEW"}
			for _, c := range types.Categories() {
				header = append(header, string(c))
			}
			tw.Header(header...)
			for i, r := range records {
				row := []string{
					strconv.Itoa(i),
					r.Timestamp.Local().Format("2006-01-02 15:04"),
					shortID(r.ScanID),
					strconv.Itoa(r.FilesScanned),
					strconv.Itoa(r.TotalHits),
					strconv.Itoa(r.NewHits),
				}
				for _, c := range types.Categories() {
					row = append(row, strconv.Itoa(r.CategoryCounts[string(c)]))
				}
				if err := tw.Append(row); err != nil {
					return err
				}
			}
			return tw.Render()
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", ".", "scan root whose history to show")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many records (0 = all)")
	cmd.Flags().IntVar(&del, "delete", 0, "delete the record at this index instead of listing")
	rootCmd.AddCommand(cmd)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
