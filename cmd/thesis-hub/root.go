package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ashwinyue/thesis-hub/internal/config"
	"github.com/ashwinyue/thesis-hub/internal/logger"
)

// app 子命令共享的配置和日志
type app struct {
	configPath string
	cfg        *config.Config
	log        *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "./configs/config.yaml"
	}

	root := &cobra.Command{
		Use:           "thesis-hub",
		Short:         "Thesis management API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg
			a.log = logger.NewWithWriter(cfg.Log, cmd.ErrOrStderr())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", defaultPath, "path to the YAML config file (empty for defaults and env only)")

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newKeywordsCmd(a),
	)
	return root
}
