package esglens

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/esglens/esglens/internal/server"
	"github.com/spf13/cobra"
)

func init() {
	var addr, origins string
	var maxBody int64
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scanner over HTTP",
		Long: "Serve the scanner over HTTP.\n\n" +
			"  GET  /health\n" +
			"  GET  /v1/rules\n" +
			"  POST /v1/scan   {\"text\": \"...\", \"company\": \"...\"}\n" +
			"  POST /v1/score  {\"text\": \"...\"}  (always zero)",
		RunE: func(_ *cobra.Command, _ []string) error {
			wd, _ := os.Getwd()
			lcfg, gcfg := loadConfigs(wd)
			log := newLogger(lcfg, gcfg)
			table, err := activeTable()
			if err != nil {
				return err
			}
			var allowed []string
			for _, o := range strings.Split(origins, ",") {
				if o = strings.TrimSpace(o); o != "" {
					allowed = append(allowed, o)
				}
			}
			h := server.NewRouter(server.Options{
				Table:          table,
				Logger:         log,
				AllowedOrigins: allowed,
				MaxBodyBytes:   maxBody,
			})
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Serve(ctx, addr, h, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&origins, "cors-origins", "*", "comma-separated allowed CORS origins")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body in bytes")
	rootCmd.AddCommand(cmd)
}
