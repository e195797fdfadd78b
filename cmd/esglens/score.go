package esglens

import (
	"encoding/json"
	"io"

	"github.com/esglens/esglens/internal/legacy"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:        "score",
		Short:      "Print the retired score structure for text on stdin (always zero)",
		Deprecated: "scores are no longer computed; use scan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(legacy.Score(string(data)))
		},
	}
	rootCmd.AddCommand(cmd)
}
