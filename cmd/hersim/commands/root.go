package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Agrid-Dev/hersim/cmd/app"
)

// state is filled by the root command before any subcommand runs.
type state struct {
	configPath string
	logLevel   string

	cfg    app.Config
	logger zerolog.Logger
}

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	st := &state{}

	root := &cobra.Command{
		Use:           "hersim",
		Short:         "Compare two wall/envelope designs by annual energy, cost and HERS index",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig(st.configPath)
			if err != nil {
				return err
			}
			if st.logLevel != "" {
				cfg.Logging.Level = st.logLevel
			}
			st.cfg = cfg
			st.logger = app.NewLogger(cfg.Logging, cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&st.configPath, "config", "config.yaml", "path to config file (.yaml/.yml/.json)")
	root.PersistentFlags().StringVar(&st.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	root.AddCommand(
		serveCmd(st),
		estimateCmd(st),
		selfCheckCmd(st),
		catalogCmd(st),
	)
	return root
}
