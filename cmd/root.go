package main

import (
	"log/slog"
	"os"

	"github.com/cwbudde/fastmse/mse"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fastmse",
	Short: "Vectorized sum of squared differences for RGBA and YCbCr buffers",
	Long: `fastmse inspects, verifies and benchmarks the squared-difference kernels
behind MSE and PSNR: an interleaved RGBA kernel and a planar YCbCr kernel,
each with scalar, narrow and wide variants.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var level slog.Level
		switch logLevel {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}

		// Logs go to stderr so tables on stdout stay clean.
		opts := &slog.HandlerOptions{Level: level}
		handler := slog.NewJSONHandler(os.Stderr, opts)
		logger = slog.New(handler)
		slog.SetDefault(logger)
		mse.SetLogger(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}
