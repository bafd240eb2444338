package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/http-observer/internal/app"
	"github.com/oshokin/http-observer/internal/config"
	"github.com/oshokin/http-observer/internal/logger"
	"github.com/oshokin/http-observer/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "http-observer [flags] {urls}",
		Short: "Send HTTP requests and log every request, response and error.",
		Long: `HTTP Observer sends requests through a hook-aware HTTP client and
logs what each hook sees:
- the outgoing request (method, URL, headers, body)
- the incoming response (status, headers, data)
- the response attached to a failed request, if one arrived

Entries go to the application log or, with --sink console, to stdout as JSON.`,
		Version:          version.Short(),
		Args:             requireURLs,
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, urls []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			logger.SetLevel(appConfig.ParsedLogLevel)

			app.ExecuteRootCommand(cmd.Context(), appConfig, requestOptionsFromFlags(cmd.Flags()), urls)
		},
	}
)

// errNoURLs indicates that neither URLs nor an input file were given.
var errNoURLs = errors.New("at least one URL or --input file is required")

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	err := executeAndWait(ctx, rootCmd)

	stop()

	_ = logger.Logger().Sync()

	cobra.CheckErr(err)
}

// executeAndWait runs command and returns only after it has finished.
// A signal only cancels ctx; the command still completes its current request and logs the summary.
func executeAndWait(ctx context.Context, command *cobra.Command) error {
	done := make(chan error, 1)

	go func() {
		done <- command.ExecuteContext(ctx)
	}()

	return <-done
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	registerRootFlags(rootCmd.Flags())
}

func registerRootFlags(flags *pflag.FlagSet) {
	flags.StringP(
		"method",
		"X",
		"GET",
		"HTTP method used for every request.")

	flags.StringArrayP(
		"header",
		"H",
		nil,
		"extra request header in 'Name: value' form, may be repeated.")

	flags.StringP(
		"data",
		"d",
		"",
		"request body sent with every request.")

	flags.StringP(
		"input",
		"i",
		"",
		"file with one URL per line, merged with URLs given as arguments.")

	flags.String(
		"sink",
		"",
		"where observed entries go: logger or console.")

	flags.String(
		"sink-level",
		"",
		"log level of observed entries when the sink is logger.")

	flags.String(
		"missing-response",
		"",
		"what to log for failures without a response: skip or marker.")

	flags.String(
		"max-body-length",
		"",
		"maximum captured body size, for example: 4KB, 1 MB.")

	flags.String(
		"timeout",
		"",
		"request timeout, for example: 30s, 2m.")

	flags.String(
		"base-url",
		"",
		"base URL relative request URLs are resolved against.")

	flags.String(
		"log-level",
		"",
		"application log level: debug, info, warn, error.")
}

func requireURLs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return nil
	}

	if input, _ := cmd.Flags().GetString("input"); input != "" {
		return nil
	}

	return errNoURLs
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if level, ok := logger.ParseLogLevel(appConfig.LogLevel); ok {
		logger.SetLevel(level)
	}
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	bindings := []struct {
		name   string
		target *string
	}{
		{name: "sink", target: &cfg.Sink},
		{name: "sink-level", target: &cfg.SinkLevel},
		{name: "missing-response", target: &cfg.MissingResponse},
		{name: "max-body-length", target: &cfg.MaxBodyLength},
		{name: "timeout", target: &cfg.Timeout},
		{name: "base-url", target: &cfg.BaseURL},
		{name: "log-level", target: &cfg.LogLevel},
	}

	for _, binding := range bindings {
		if flag := flags.Lookup(binding.name); flag != nil && flag.Changed {
			*binding.target, _ = flags.GetString(binding.name)
		}
	}

	return config.ValidateConfig(cfg)
}

func requestOptionsFromFlags(flags *pflag.FlagSet) app.RequestOptions {
	var opts app.RequestOptions

	opts.Method, _ = flags.GetString("method")
	opts.Headers, _ = flags.GetStringArray("header")
	opts.Body, _ = flags.GetString("data")
	opts.InputFile, _ = flags.GetString("input")

	return opts
}
