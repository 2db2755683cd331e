package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/jars/internal/config"
	"github.com/theirongolddev/jars/internal/server"
)

var (
	flagServeAddr     string
	flagServeEnvFile  string
	flagServeShutdown time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator as a JSON API",
	Long: "Serve the calculator over HTTP. Every request is computed from its own\n" +
		"parameters; nothing is stored between requests.",
	RunE: runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe a running API server",
	RunE:  runServeStatus,
}

func init() {
	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config, "+config.EnvAddr+")")
	serveCmd.Flags().StringVar(&flagServeEnvFile, "env-file", ".env", "Environment file loaded before the config")
	serveCmd.Flags().DurationVar(&flagServeShutdown, "shutdown-timeout", 5*time.Second, "Grace period for in-flight requests")

	serveCmd.AddCommand(serveStatusCmd)
	rootCmd.AddCommand(serveCmd)
}

// serveAddr resolves the listen address: --addr, then env, then config.
func serveAddr() string {
	if flagServeAddr != "" {
		return flagServeAddr
	}
	return config.GetAddr(loadConfig())
}

func runServe(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(flagServeEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", flagServeEnvFile, err)
	}

	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	api := server.NewWebAPI(logger, server.Config{
		Addr:            serveAddr(),
		ShutdownTimeout: flagServeShutdown,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := api.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServeStatus(_ *cobra.Command, _ []string) error {
	addr := serveAddr()
	fmt.Printf("  Address: http://%s\n", addr)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/api/v1/stats") //nolint:noctx // short status probe
	if err != nil {
		fmt.Printf("  API status: unreachable (%v)\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  API status: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var st server.StatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Printf("  API status: malformed response (%v)\n", err)
		return nil
	}

	log.Debug().Interface("stats", st).Msg("status probe")
	fmt.Printf("  Started:      %s\n", st.StartedAt)
	fmt.Printf("  Requests:     %d\n", st.Requests)
	fmt.Printf("  Computations: %d\n", st.Computations)
	fmt.Printf("  Over limit:   %d\n", st.OverLimit)
	return nil
}
