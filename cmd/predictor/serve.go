package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/jonathan/success-predictor/internal/logging"
	"github.com/jonathan/success-predictor/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing the prediction, outcome and calibration endpoints.`,
	RunE:  runServe,
}

var (
	serveConfigPath string
	servePort       int
	serveRateLimit  float64
	serveLogLevel   string
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().Float64Var(&serveRateLimit, "rate-limit", 0, "Per-client requests per second (0 disables limiting)")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadMergedConfig(cmd, serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") || cfg.Port == 0 {
		cfg.Port = servePort
	}

	log := logging.New(os.Stderr, serveLogLevel)
	eng, cleanup, err := buildEngine(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := server.New(eng, server.Config{
		Port:      cfg.Port,
		RateLimit: rate.Limit(serveRateLimit),
		RateBurst: int(serveRateLimit * 2),
		Logger:    log,
	})
	return srv.Start()
}
