package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/VectorBits/abi2sol/src/internal/config"
	"github.com/VectorBits/abi2sol/src/internal/logger"
	"github.com/VectorBits/abi2sol/src/internal/solc"
)

var Version = "v1.0.0"

const (
	configF      = "config"
	verboseF     = "verbose"
	inF          = "in"
	outF         = "out"
	solidityF    = "solidity"
	ignoreF      = "ignore"
	selectorsF   = "selectors"
	reportF      = "report"
	recordF      = "record"
	concurrencyF = "concurrency"
	limitF       = "limit"
)

// CLIConfig holds the command line flags; zero values mean "not given".
type CLIConfig struct {
	ConfigPath      string
	InputDir        string
	OutputDir       string
	SolidityVersion string
	IgnorePaths     []string
	Selectors       bool
	ReportDir       string
	Record          bool
	Concurrency     int
	Verbose         bool
}

func (c *CLIConfig) Validate() error {
	if c.OutputDir != "" && c.InputDir == "" {
		return errors.New("--out requires --in")
	}
	if c.SolidityVersion != "" && !solc.ValidPragma(c.SolidityVersion) {
		return fmt.Errorf("--solidity %q is not a version or version constraint", c.SolidityVersion)
	}
	if c.Concurrency < 0 {
		return errors.New("--concurrency must be >= 0")
	}
	return nil
}

// MergeConfigs layers defaults, the YAML settings and the flags, in that order.
func (c *CLIConfig) MergeConfigs(appConfig *config.AppConfig) config.GenerateConfiguration {
	// 1. Start with defaults
	cfg := config.DefaultGenerateConfiguration()

	// 2. Override with YAML config if available
	if appConfig != nil {
		gen := appConfig.Generator
		if gen.SolidityVersion != "" {
			cfg.SolidityVersion = gen.SolidityVersion
		}
		if gen.IgnorePaths != nil {
			cfg.IgnorePaths = append([]string(nil), gen.IgnorePaths...)
		}
		cfg.Selectors = gen.Selectors
		if gen.Concurrency > 0 {
			cfg.Concurrency = gen.Concurrency
		}
		if len(appConfig.Targets) > 0 {
			cfg.Targets = append([]config.TargetConfig(nil), appConfig.Targets...)
		}

		db := appConfig.Database
		if db.Driver == "" {
			db.Driver = cfg.Database.Driver
		}
		if db.Path == "" {
			db.Path = cfg.Database.Path
		}
		cfg.Database = db
		cfg.Record = db.Enabled

		if appConfig.Log.Dir != "" {
			cfg.Log.Dir = appConfig.Log.Dir
		}
		if appConfig.Log.MaxSizeMB > 0 {
			cfg.Log.MaxSizeMB = appConfig.Log.MaxSizeMB
		}
		if appConfig.Log.MaxBackups > 0 {
			cfg.Log.MaxBackups = appConfig.Log.MaxBackups
		}
		if appConfig.Log.MaxAgeDays > 0 {
			cfg.Log.MaxAgeDays = appConfig.Log.MaxAgeDays
		}
		cfg.Log.Compress = appConfig.Log.Compress
		cfg.ReportDir = appConfig.Report.Dir
	}

	// 3. Override with CLI arguments (if provided)
	if c.SolidityVersion != "" {
		cfg.SolidityVersion = c.SolidityVersion
	}
	cfg.IgnorePaths = append(cfg.IgnorePaths, c.IgnorePaths...)
	cfg.Selectors = cfg.Selectors || c.Selectors
	cfg.Record = cfg.Record || c.Record
	if c.ReportDir != "" {
		cfg.ReportDir = c.ReportDir
	}
	if c.Concurrency > 0 {
		cfg.Concurrency = c.Concurrency
	}
	cfg.Verbose = c.Verbose

	// -i 时只处理这一组目录
	if c.InputDir != "" {
		out := c.OutputDir
		if out == "" {
			out = config.DefaultOutputDir
		}
		cfg.Targets = []config.TargetConfig{{Name: "cli", Input: c.InputDir, Output: out}}
	}

	return cfg
}

// loadAppConfig returns nil without error when no settings file exists and
// none was requested.
func loadAppConfig(path string) (*config.AppConfig, error) {
	if path == "" {
		path = config.GetConfigPath()
		if path == "" {
			logger.Debug("no settings.yaml found, using defaults")
			return nil, nil
		}
	}
	return config.LoadConfig(path)
}

func addGenerateFlags(cmd *cobra.Command, c *CLIConfig) {
	f := cmd.Flags()
	f.StringVarP(&c.InputDir, inF, "i", "", "Artifact directory to convert (default: configured targets, or out)")
	f.StringVarP(&c.OutputDir, outF, "o", "", "Interface output directory (default: abi2json/interfaces)")
	f.StringVar(&c.SolidityVersion, solidityF, "", `Pragma version, constraint or "auto" (default: 0.8.22)`)
	f.StringArrayVar(&c.IgnorePaths, ignoreF, nil, "Source path (ast.absolutePath) to skip, repeatable")
	f.BoolVar(&c.Selectors, selectorsF, false, "Write <Name>.selectors.json next to each interface")
	f.StringVar(&c.ReportDir, reportF, "", "Write a Markdown sweep report into this directory")
	f.BoolVar(&c.Record, recordF, false, "Record the sweep in the history database")
	f.IntVar(&c.Concurrency, concurrencyF, 0, "Number of targets converted in parallel")
}

func runGenerate(cmd *cobra.Command, c *CLIConfig) error {
	logger.SetVerbose(c.Verbose)
	if err := c.Validate(); err != nil {
		return err
	}

	appConfig, err := loadAppConfig(c.ConfigPath)
	if err != nil {
		return err
	}
	cfg := c.MergeConfigs(appConfig)

	if err := logger.InitLogger(logger.Options{
		Dir:        cfg.Log.Dir,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
		Verbose:    cfg.Verbose,
	}); err != nil {
		logger.Warn("Failed to init log file: %v", err)
	}
	defer logger.Close()

	return ExecuteGenerate(cmd.Context(), afero.NewOsFs(), cmd.OutOrStdout(), cfg)
}

func NewRootCmd() *cobra.Command {
	c := &CLIConfig{}

	root := &cobra.Command{
		Use:           "abi2sol [flags]",
		Short:         "Generate Solidity interfaces from compiled ABI artifacts.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, c)
		},
	}
	root.PersistentFlags().StringVar(&c.ConfigPath, configF, "", "Path to settings.yaml")
	root.PersistentFlags().BoolVarP(&c.Verbose, verboseF, "v", false, "Verbose output")
	addGenerateFlags(root, c)

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Convert every artifact of the configured targets (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, c)
		},
	}
	addGenerateFlags(generate, c)

	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "List recorded sweeps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger.SetVerbose(c.Verbose)
			appConfig, err := loadAppConfig(c.ConfigPath)
			if err != nil {
				return err
			}
			cfg := c.MergeConfigs(appConfig)
			return ExecuteHistory(cmd.Context(), cmd.OutOrStdout(), cfg.Database, limit)
		},
	}
	history.Flags().IntVar(&limit, limitF, 20, "Number of sweeps to show")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "abi2sol", Version)
		},
	}

	root.AddCommand(generate, history, version)
	return root
}

func Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(sigChan)
		close(sigChan)
	}()

	go func() {
		count := 0
		for range sigChan {
			count++
			if count == 1 {
				fmt.Fprintln(os.Stderr, "\nInterrupt received, stopping... (press Ctrl+C again to force exit)")
				cancel()
				continue
			}
			fmt.Fprintln(os.Stderr, "\nForce exiting...")
			os.Exit(130)
		}
	}()

	return NewRootCmd().ExecuteContext(ctx)
}

func PrintFatal(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
