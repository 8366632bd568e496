package main

import (
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bigredeye/studentmanager/internal/config"
	"github.com/bigredeye/studentmanager/internal/view"
	"github.com/bigredeye/studentmanager/pkg/client/students"
)

var (
	log      *zap.Logger
	logLevel = zap.NewAtomicLevelAt(zapcore.WarnLevel)
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func unwrap[T any](value T, err error) T {
	check(err)
	return value
}

var args struct {
	Config     string
	Endpoint   string
	Timeout    time.Duration
	RetryCount int
	Verbose    bool
}

func initLogging() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.Level = logLevel
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zapConfig.EncoderConfig.ConsoleSeparator = " "
	zapConfig.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.StampMilli)
	log = unwrap(zapConfig.Build())
}

// loadBackendConfig fills the backend settings the user did not pass as
// flags from the shared config: file, SM_BACKEND_* env vars, defaults.
func loadBackendConfig(cmd *cobra.Command) error {
	cfg, err := config.ParseConfig(args.Config)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("endpoint") {
		args.Endpoint = cfg.Backend.BaseURL
	}
	if !flags.Changed("timeout") {
		args.Timeout = cfg.Backend.Timeout
	}
	args.RetryCount = cfg.Backend.RetryCount
	return nil
}

func makeRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "students",
		Short:         "Student records client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _args []string) error {
			if args.Verbose {
				logLevel.SetLevel(zapcore.DebugLevel)
			}
			return loadBackendConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&args.Config, "config", "", "Path to the config")
	rootCmd.PersistentFlags().StringVar(&args.Endpoint, "endpoint", students.DefaultBaseURL, "Students API base url (SM_BACKEND_BASEURL)")
	rootCmd.PersistentFlags().DurationVar(&args.Timeout, "timeout", students.DefaultTimeout, "Request timeout")
	rootCmd.PersistentFlags().BoolVarP(&args.Verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(makeListCommand())
	rootCmd.AddCommand(makeAddCommand())
	rootCmd.AddCommand(makeUpdateCommand())
	rootCmd.AddCommand(makeDeleteCommand())
	return rootCmd
}

func newView() (*view.StudentManager, error) {
	client, err := students.NewClient(args.Endpoint,
		students.WithTimeout(args.Timeout),
		students.WithRetryCount(args.RetryCount),
		students.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	return view.NewStudentManager(client, log), nil
}

func init() {
	initLogging()
}

func main() {
	if err := makeRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Command failed: %s\n", err.Error())
		os.Exit(1)
	}
}
