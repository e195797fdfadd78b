package esglens

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON            bool
	flagSARIF           bool
	flagText            bool
	flagThreads         int
	flagNoColor         bool
	flagDryRun          bool
	flagNoCache         bool
	flagDefaultExcludes bool
	flagRules           string
	flagLogLevel        string
	flagLogFormat       string

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the esglens CLI.
var rootCmd = &cobra.Command{
	Use:           "esglens",
	Short:         "Annotate ESG disclosures with evidence hits",
	Long:          "esglens splits sustainability disclosures into sentences and flags vague claims, missing metrics, misleading terminology, cherry-picked scope and unverified neutrality claims. It annotates; it never scores.",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
}

// Execute runs the esglens CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	rootCmd.PersistentFlags().BoolVar(&flagText, "text", false, "output one line per hit instead of a table")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "show what would be scanned without scanning")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable incremental scan cache")
	rootCmd.PersistentFlags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, images, source code, etc.)")
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "load the rule table from this YAML rule pack")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: json|text")
}
