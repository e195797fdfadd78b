package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/esglens/esglens/internal/types"
	"github.com/olekukonko/tablewriter"
)

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
	// Width caps the TEXT column in tables; 0 selects a default.
	Width int
}

var categoryStyles = map[types.Category]lipgloss.Style{
	types.CatVague:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	types.CatLackMetrics: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	types.CatMisleading:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	types.CatCherry:      lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	types.CatNoThirdPty:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
}

// row is a hit bound to its document, the unit both renderers print.
type row struct {
	path string
	hit  types.RuleHit
}

func flatten(docs []types.DocumentResult) []row {
	var rows []row
	for _, d := range docs {
		for _, h := range d.Hits {
			rows = append(rows, row{path: d.Path, hit: h})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].path == rows[j].path {
			return rows[i].hit.SentenceIndex < rows[j].hit.SentenceIndex
		}
		return rows[i].path < rows[j].path
	})
	return rows
}

// PrintTable renders hits as a bordered table followed by a summary footer.
func PrintTable(w io.Writer, docs []types.DocumentResult, opts PrintOptions) error {
	rows := flatten(docs)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No findings")
	} else {
		width := opts.Width
		if width <= 0 {
			width = 80
		}
		table := tablewriter.NewWriter(w)
		table.Header("CATEGORY", "RULE", "DOCUMENT", "SENTENCE", "TEXT")
		for _, r := range rows {
			err := table.Append([]string{
				string(r.hit.Category),
				strconv.Itoa(r.hit.RuleID),
				r.path,
				strconv.Itoa(r.hit.SentenceIndex),
				ellipsize(r.hit.Text, width),
			})
			if err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	printFooter(w, rows, opts)
	return nil
}

// PrintText renders one line per hit: category, rule, location, text.
func PrintText(w io.Writer, docs []types.DocumentResult, opts PrintOptions) {
	rows := flatten(docs)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No findings")
	} else {
		for _, r := range rows {
			cat := fmt.Sprintf("%-12s", r.hit.Category)
			if !opts.NoColor {
				cat = colorCategory(r.hit.Category, cat)
			}
			fmt.Fprintf(w, "%s %3d %s#%d  %s\n", cat, r.hit.RuleID, r.path, r.hit.SentenceIndex, r.hit.Text)
		}
	}
	printFooter(w, rows, opts)
}

func printFooter(w io.Writer, rows []row, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned <= 0 {
		return
	}
	counts := map[types.Category]int{}
	for _, r := range rows {
		counts[r.hit.Category]++
	}
	parts := make([]string, 0, len(types.Categories()))
	for _, c := range types.Categories() {
		parts = append(parts, fmt.Sprintf("%s: %d", c, counts[c]))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Hits: %d (%s)\n", len(rows), strings.Join(parts, ", "))
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Documents scanned: %d\n", opts.FilesScanned)
	}
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
}

func colorCategory(c types.Category, s string) string {
	if st, ok := categoryStyles[c]; ok {
		return st.Render(s)
	}
	return s
}

func ellipsize(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// HasHits reports whether any document carries at least one hit.
func HasHits(docs []types.DocumentResult) bool {
	for _, d := range docs {
		if len(d.Hits) > 0 {
			return true
		}
	}
	return false
}
