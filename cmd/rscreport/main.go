package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/cli"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/config"
	"github.com/joshuastenhouse/rscreporting-sub000/pkg/log"
)

func main() {
	logLevel := "info"
	if cfg, err := config.New(); err == nil {
		logLevel = cfg.Service.LogLevel
	}
	logger := log.InitLog(log.LevelFromString(logLevel))
	defer func() { _ = logger.Sync() }()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	command := NewRSCReportCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRSCReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rscreport [flags] [options]",
		Short: "rscreport lists and reports on the account's backup inventory.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdLogin())
	cmd.AddCommand(cli.NewCmdGet())
	cmd.AddCommand(cli.NewCmdReport())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
