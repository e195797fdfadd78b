package esglens

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/esglens/esglens/internal/report"
	"github.com/esglens/esglens/internal/rules"
	"github.com/esglens/esglens/internal/scanner"
	"github.com/esglens/esglens/internal/types"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "test-rule <id>",
		Short: "Run a single rule against provided text (stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := activeTable()
			if err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("rule id must be a number: %q", args[0])
			}
			r, ok := table.ByID(id)
			if !ok {
				return fmt.Errorf("unknown rule id %d (available: %s)", id, joinIDs(table.IDs()))
			}
			single, err := rules.NewTable([]rules.RuleSpec{r.Spec()}, table.ThirdPartySource())
			if err != nil {
				return err
			}
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			doc := scanner.New(single).ScanDocument("stdin", string(data), "")
			opts := report.PrintOptions{NoColor: !colorEnabled(flagNoColor, os.Stdout)}
			return render(cmd.OutOrStdout(), []types.DocumentResult{doc}, opts, single)
		},
	}
	cmd.Long = "Available rules: " + joinIDs(rules.IDs())
	rootCmd.AddCommand(cmd)
}

func joinIDs(ids []int) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = strconv.Itoa(id)
	}
	return strings.Join(s, ", ")
}
