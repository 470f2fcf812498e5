package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"formbuilder/internal/app"
	"formbuilder/internal/platform/config"
	"formbuilder/internal/platform/logger"
)

// cli carries settings shared by every subcommand.
type cli struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}
	root := &cobra.Command{
		Use:          "formctl",
		Short:        "Run and inspect form submissions",
		Long:         "formctl submits application forms through the same process pipeline as the server and inspects recorded runs.",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.String("forms", "", "forms definition file (YAML, JSON or TOML)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text or json)")
	_ = c.v.BindPFlag("forms", flags.Lookup("forms"))
	_ = c.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = c.v.BindPFlag("log_format", flags.Lookup("log-format"))
	_ = c.v.BindEnv("forms", "FORMS_CONFIG")

	root.AddCommand(
		newFormsCmd(c),
		newSubmitCmd(c),
		newRunCmd(c),
		newIncidentsCmd(c),
	)
	return root
}

// build wires the application from the environment, letting flags override
// the forms file and logging.
func (c *cli) build(ctx context.Context, stderr io.Writer) (*app.App, error) {
	cfg := config.FromEnv()
	cfg.FormsConfig = c.v.GetString("forms")
	log := logger.NewWithWriter(stderr, c.v.GetString("log_level"), c.v.GetString("log_format"))
	return app.Build(ctx, cfg, log, prometheus.NewRegistry())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
