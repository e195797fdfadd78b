package esglens

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/esglens/esglens/internal/audit"
	"github.com/esglens/esglens/internal/cache"
	"github.com/esglens/esglens/internal/config"
	"github.com/esglens/esglens/internal/engine"
	"github.com/esglens/esglens/internal/report"
	"github.com/esglens/esglens/internal/rules"
	"github.com/esglens/esglens/internal/types"
	"github.com/spf13/cobra"
)

const (
	defaultMaxBytes     = 4 << 20
	defaultBaselineFile = "esglens.baseline.json"
)

var (
	flagPath       string
	flagInclude    string
	flagExclude    string
	flagMaxBytes   int64
	flagEnable     string
	flagDisable    string
	flagCompany    string
	flagFailOnHits bool
	flagAudit      bool
	flagBaseline   string
	flagNoBaseline bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan disclosure documents for evidence hits",
		Long: "Scan a file, a directory tree, or stdin (-p -) and report rule hits per sentence.\n" +
			"Hits are annotations for a reviewer; nothing is scored.",
		RunE: runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "file or directory to scan, or - for stdin")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, fmt.Sprintf("skip documents larger than this (default %d)", defaultMaxBytes))
	cmd.Flags().StringVar(&flagEnable, "enable", "", "only report these categories (comma-separated)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "do not report these categories (comma-separated)")
	cmd.Flags().StringVar(&flagCompany, "company", "", "company name recorded with the scan")
	cmd.Flags().BoolVar(&flagFailOnHits, "fail-on-hits", false, "exit 1 when hits not in the baseline remain")
	cmd.Flags().BoolVar(&flagAudit, "audit", true, "append a record to the scan history")
	cmd.Flags().StringVar(&flagBaseline, "baseline", defaultBaselineFile, "baseline file of accepted hits")
	cmd.Flags().BoolVar(&flagNoBaseline, "no-baseline", false, "report every hit, ignoring the baseline")
}

func runScan(cmd *cobra.Command, _ []string) error {
	stdin := flagPath == "-"
	abs := flagPath
	if !stdin {
		abs, _ = filepath.Abs(flagPath)
	}
	rs, err := resolveScan(cmd, abs, stdin)
	if err != nil {
		return err
	}
	lcfg, gcfg := rs.local, rs.global
	cfg, table := rs.cfg, rs.cfg.Table
	log := newLogger(lcfg, gcfg)
	noColor := !colorEnabled(pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor), os.Stdout)
	machine := flagJSON || flagSARIF

	log.Debug("scan starting",
		"root", abs,
		"rules", table.Len(),
		"fingerprint", table.Fingerprint(),
		"threads", cfg.Threads,
	)

	var res engine.Result
	if stdin {
		res, err = engine.ScanReader(cmd.InOrStdin(), "stdin", cfg)
	} else {
		if !machine {
			_, _ = fmt.Fprintf(os.Stderr, "Scanning %s with %d rules...\n", abs, table.Len())
		}
		res, err = scanTree(cfg, machine)
	}
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	if flagDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Would scan %d documents\n", res.FilesScanned)
		return nil
	}

	docs := res.Documents
	baselineFile := ""
	if !flagNoBaseline && flagBaseline != "" {
		if base, err := report.LoadBaseline(flagBaseline); err == nil {
			docs = report.FilterNew(docs, base)
			baselineFile = flagBaseline
		}
	}

	opts := report.PrintOptions{NoColor: noColor, Duration: res.Duration, FilesScanned: res.FilesScanned}
	if err := render(cmd.OutOrStdout(), docs, opts, table); err != nil {
		return err
	}

	if !stdin {
		if err := cache.SaveResults(cacheDir(abs), docs); err != nil {
			log.Warn("could not save last results", "err", err)
		}
		if flagAudit {
			rec := audit.CreateScanRecord(abs, table.Fingerprint(), res.Documents, docs, res.FilesScanned, res.Duration, baselineFile)
			if id, err := audit.NewAuditLog(cacheDir(abs)).LogScan(rec); err != nil {
				log.Warn("could not write scan history", "err", err)
			} else {
				log.Debug("scan recorded", "scan_id", id)
			}
		}
	}

	log.Info("scan complete",
		"documents", res.FilesScanned,
		"cache_hits", res.CacheHits,
		"hits", res.Hits(),
		"new_hits", countHits(docs),
		"duration", res.Duration.String(),
	)

	if cmd.Flags().Changed("enable") || cmd.Flags().Changed("disable") {
		_, _ = fmt.Fprintf(os.Stderr, "categories active: %s\n", activeCategories(cfg))
	}

	if flagFailOnHits && report.HasHits(docs) {
		os.Exit(1)
	}
	return nil
}

// scanTree runs the engine over a directory or file with a simple textual
// progress bar on stderr and Ctrl-C cancellation.
func scanTree(cfg engine.Config, quiet bool) (engine.Result, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	total, _ := engine.CountTargets(cfg)
	progressed := 0
	if total > 0 && !quiet {
		cfg.Progress = func() {
			progressed++
			if progressed%10 == 0 || progressed == total {
				pct := float64(progressed) / float64(total) * 100
				_, _ = fmt.Fprintf(os.Stderr, "\r[%d/%d] %.0f%%", progressed, total, pct)
			}
		}
	}
	res, err := engine.Scan(ctx, cfg)
	if total > 0 && !quiet {
		_, _ = fmt.Fprintln(os.Stderr)
	}
	return res, err
}

func render(w io.Writer, docs []types.DocumentResult, opts report.PrintOptions, table *rules.Table) error {
	switch {
	case flagSARIF:
		if err := report.WriteSARIF(w, docs, report.SARIFOptions{Table: table, ToolVersion: version, FilesScanned: opts.FilesScanned}); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
		return nil
	case flagJSON:
		return report.WriteJSON(w, docs, opts)
	case flagText:
		report.PrintText(w, docs, opts)
		return nil
	default:
		return report.PrintTable(w, docs, opts)
	}
}

type scanSetup struct {
	cfg           engine.Config
	local, global config.FileConfig
}

// resolveScan builds the engine configuration for a scan rooted at abs.
// Config files are looked up from the scan root (the working directory for
// stdin) so scan and baseline update see the same rule pack and filters.
func resolveScan(cmd *cobra.Command, abs string, stdin bool) (scanSetup, error) {
	cfgRoot := abs
	if stdin {
		cfgRoot, _ = os.Getwd()
	}
	lcfg, gcfg := loadConfigs(cfgRoot)

	table, err := loadTable(pickString(flagRules, lcfg.Rules, gcfg.Rules))
	if err != nil {
		return scanSetup{}, fmt.Errorf("rule pack: %w", err)
	}

	cfg := engine.Config{
		Root:              abs,
		IncludeGlobs:      pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:      pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:          pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Threads:           pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		EnableCategories:  pickString(flagEnable, lcfg.Enable, gcfg.Enable),
		DisableCategories: pickString(flagDisable, lcfg.Disable, gcfg.Disable),
		Company:           pickString(flagCompany, lcfg.Company, gcfg.Company),
		DefaultExcludes:   resolveDefaultExcludes(cmd, lcfg.DefaultExcludes, gcfg.DefaultExcludes),
		NoCache:           flagNoCache,
		DryRun:            flagDryRun,
		Table:             table,
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = defaultMaxBytes
	}
	return scanSetup{cfg: cfg, local: lcfg, global: gcfg}, nil
}

// resolveDefaultExcludes honours an explicit flag, then config, then the
// flag default.
func resolveDefaultExcludes(cmd *cobra.Command, local, global *bool) bool {
	if cmd.Flags().Changed("default-excludes") {
		return flagDefaultExcludes
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return flagDefaultExcludes
}

// cacheDir is the directory scan state is written to for root.
func cacheDir(root string) string {
	if st, err := os.Stat(root); err == nil && !st.IsDir() {
		return filepath.Dir(root)
	}
	return root
}

func countHits(docs []types.DocumentResult) int {
	n := 0
	for _, d := range docs {
		n += len(d.Hits)
	}
	return n
}

func activeCategories(cfg engine.Config) string {
	var ids []string
	for _, c := range types.Categories() {
		ids = append(ids, string(c))
	}
	if cfg.EnableCategories != "" {
		ids = nil
		for _, c := range strings.Split(cfg.EnableCategories, ",") {
			ids = append(ids, strings.TrimSpace(c))
		}
	}
	if cfg.DisableCategories != "" {
		disabled := map[string]bool{}
		for _, d := range strings.Split(cfg.DisableCategories, ",") {
			disabled[strings.TrimSpace(d)] = true
		}
		var kept []string
		for _, id := range ids {
			if !disabled[id] {
				kept = append(kept, id)
			}
		}
		ids = kept
	}
	return strings.Join(ids, ",")
}
