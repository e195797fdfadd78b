package esglens

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/esglens/esglens/internal/config"
	"github.com/esglens/esglens/internal/files"
	"github.com/esglens/esglens/internal/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfgOutput          string
	cfgEnable          string
	cfgDisable         string
	cfgThreads         int
	cfgMaxBytes        int64
	cfgRules           string
	cfgCompany         string
	cfgNoColor         bool
	cfgDefaultExcludes bool
	cfgLogFormat       string
	cfgLogLevel        string
	cfgForce           bool
	cfgGitignore       bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .esglens.yml with selected categories and options",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".esglens.yml", "output file path")
	initCmd.Flags().StringVar(&cfgEnable, "enable", "", "comma-separated categories to report (default all)")
	initCmd.Flags().StringVar(&cfgDisable, "disable", "", "comma-separated categories to suppress")
	initCmd.Flags().IntVar(&cfgThreads, "threads", 0, "worker threads (0=GOMAXPROCS)")
	initCmd.Flags().Int64Var(&cfgMaxBytes, "max-bytes", defaultMaxBytes, "skip documents larger than this")
	initCmd.Flags().StringVar(&cfgRules, "rules", "", "rule pack path")
	initCmd.Flags().StringVar(&cfgCompany, "company", "", "company name recorded with scans")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgDefaultExcludes, "default-excludes", true, "enable default ignore patterns")
	initCmd.Flags().StringVar(&cfgLogFormat, "log-format", "json", "log format: json|text")
	initCmd.Flags().StringVar(&cfgLogLevel, "log-level", "info", "log level: debug|info|warn|error")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
	initCmd.Flags().BoolVar(&cfgGitignore, "gitignore", false, "also add esglens state files to .gitignore")
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	enable := strings.TrimSpace(cfgEnable)
	if enable == "" {
		var all []string
		for _, c := range types.Categories() {
			all = append(all, string(c))
		}
		enable = strings.Join(all, ",")
	}
	for _, list := range []string{enable, cfgDisable} {
		for _, c := range strings.Split(list, ",") {
			if c = strings.TrimSpace(c); c == "" {
				continue
			}
			if _, err := types.ParseCategory(c); err != nil {
				return err
			}
		}
	}
	if _, err := os.Stat(cfgOutput); err == nil && !cfgForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgOutput)
	}

	fc := config.FileConfig{
		MaxBytes:        int64Ptr(cfgMaxBytes),
		Enable:          strPtr(enable),
		Disable:         optStrPtr(cfgDisable),
		Threads:         intPtr(cfgThreads),
		Company:         optStrPtr(cfgCompany),
		Rules:           optStrPtr(cfgRules),
		NoColor:         boolPtr(cfgNoColor),
		DefaultExcludes: boolPtr(cfgDefaultExcludes),
		Logging: &config.LoggingConfig{
			Format: strPtr(cfgLogFormat),
			Level:  strPtr(cfgLogLevel),
		},
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return err
	}
	fmt.Println("Wrote", cfgOutput)
	if cfgGitignore {
		dir := filepath.Dir(cfgOutput)
		for _, p := range files.StateFiles() {
			if err := files.AppendIgnore(dir, p); err != nil {
				return fmt.Errorf("update .gitignore: %w", err)
			}
		}
		fmt.Println("Updated", filepath.Join(dir, ".gitignore"))
	}
	return nil
}

func strPtr(s string) *string { return &s }
func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool     { return &v }
