package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/success-predictor/internal/config"
	"github.com/jonathan/success-predictor/internal/logging"
	"github.com/jonathan/success-predictor/internal/observability"
	"github.com/jonathan/success-predictor/internal/types"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run one prediction for a CV/job pair",
	Long: `Extracts features from the given CV and job description, runs the five
predictors and prints the prediction with ranked recommendations.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runPredictCmd,
}

var (
	predictConfigPath  string
	predictCVPath      string
	predictJobPath     string
	predictContextPath string
	predictAPIKey      string
	predictMarketURL   string
	predictVerbose     bool
	predictLogLevel    string
)

func init() {
	predictCmd.Flags().StringVar(&predictConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	predictCmd.Flags().StringVar(&predictCVPath, "cv", "", "Path to structured CV JSON file (required)")
	predictCmd.Flags().StringVarP(&predictJobPath, "job", "j", "", "Path to job description JSON file (required)")
	predictCmd.Flags().StringVar(&predictContextPath, "context", "", "Path to request context JSON file (optional)")
	predictCmd.Flags().BoolVarP(&predictVerbose, "verbose", "v", false, "Print feature vector and per-dimension breakdowns")
	predictCmd.Flags().StringVar(&predictLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	// API key can be passed as a flag, or read from env var PREDICTOR_API_KEY
	predictCmd.Flags().StringVar(&predictAPIKey, "api-key", "", "Model-serving API key (optional, defaults to PREDICTOR_API_KEY env var)")
	predictCmd.Flags().StringVar(&predictMarketURL, "market-url", "", "Market-data provider base URL (optional, defaults to MARKET_DATA_URL env var)")

	rootCmd.AddCommand(predictCmd)
}

func runPredictCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(cmd, predictConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = predictAPIKey
	}
	if cmd.Flags().Changed("market-url") {
		cfg.MarketDataURL = predictMarketURL
	}
	if predictCVPath == "" || predictJobPath == "" {
		return fmt.Errorf("--cv and --job are required")
	}

	req := &types.PredictionRequest{}
	if err := readJSONFile(predictCVPath, &req.CV); err != nil {
		return fmt.Errorf("failed to read CV: %w", err)
	}
	if err := readJSONFile(predictJobPath, &req.Job); err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}
	if predictContextPath != "" {
		req.Context = &types.RequestContext{}
		if err := readJSONFile(predictContextPath, req.Context); err != nil {
			return fmt.Errorf("failed to read request context: %w", err)
		}
	}

	log := logging.New(os.Stderr, predictLogLevel)
	eng, cleanup, err := buildEngine(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	prediction, err := eng.PredictSuccess(ctx, req)
	if err != nil {
		return err
	}

	if predictVerbose || cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		// The extraction path is cache-backed, so this reuses the vector the
		// prediction above was built from.
		if vector, err := eng.ExtractFeatures(ctx, req); err == nil {
			printer.PrintFeatureVector(vector)
		}
		printer.PrintPrediction(prediction)
		printer.PrintRecommendations(prediction.Recommendations)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(prediction)
}

// loadMergedConfig loads the optional config file and applies defaults.
func loadMergedConfig(_ *cobra.Command, path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("PREDICTOR_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.MarketDataURL == "" {
		cfg.MarketDataURL = os.Getenv("MARKET_DATA_URL")
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func readJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
