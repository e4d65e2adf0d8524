package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/staticproto/staticproto/gen"
	"github.com/staticproto/staticproto/registry"
)

var version = "dev"

var (
	flagProtoDirs       []string
	flagOut             string
	flagConfig          string
	flagPackage         string
	flagDefaultCapacity int
	flagLogLevel        string

	rootCmd = &cobra.Command{
		Use:          "staticproto-gen [proto files]",
		Short:        "Generate fixed-capacity Go message types from .proto files",
		Args:         cobra.MinimumNArgs(1),
		RunE:         runGen,
		SilenceUsage: true,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("staticproto-gen", version)
		},
	}
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func execute() error {
	rootCmd.AddCommand(versionCmd)

	rootCmd.Flags().StringSliceVar(&flagProtoDirs, "proto-dir", nil, "directories searched for imported .proto files")
	rootCmd.Flags().StringVar(&flagOut, "out", ".", "output directory for generated files")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "YAML file with per-field capacities")
	rootCmd.Flags().StringVar(&flagPackage, "package", "", "package name for the generated files")
	rootCmd.Flags().IntVar(&flagDefaultCapacity, "default-capacity", 0, "capacity for bounded fields without a config entry")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")

	return rootCmd.Execute()
}

func newLogger() (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(flagLogLevel)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return logger, nil
}

func runGen(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	opts := gen.Options{
		PackageName:     flagPackage,
		DefaultCapacity: flagDefaultCapacity,
	}
	if flagConfig != "" {
		cfg, err := loadConfig(flagConfig)
		if err != nil {
			return err
		}
		if cfg.DefaultCapacity > 0 && !cmd.Flags().Changed("default-capacity") {
			opts.DefaultCapacity = cfg.DefaultCapacity
		}
		opts.Capacities = cfg.Capacities
		log.Debug().Str("path", flagConfig).Int("entries", len(cfg.Capacities)).Msg("loaded capacity config")
	}

	reg := registry.NewRegistry(flagProtoDirs...)
	for _, protoFile := range args {
		if err := reg.Load(protoFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", protoFile, err)
		}
		log.Debug().Str("proto", protoFile).Msg("loaded")
	}

	files, err := gen.New(reg, opts).Generate()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(flagOut, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, f := range files {
		outPath := filepath.Join(flagOut, f.Name)
		if err := os.WriteFile(outPath, f.Content, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		log.Info().Str("file", outPath).Int("bytes", len(f.Content)).Msg("generated")
	}
	return nil
}
