// Package main provides the CLI entry point for xlbatch.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ukaji3/xlbatch/pkg/xlbatch"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/models"
	"github.com/ukaji3/xlbatch/pkg/xlbatch/output"
)

// settings are the resolved command options. Flags win over XLBATCH_*
// environment variables, which win over the --config file.
type settings struct {
	Job       string `mapstructure:"job"`
	Workers   int    `mapstructure:"workers"`
	Output    string `mapstructure:"output"`
	Format    string `mapstructure:"format"`
	Pretty    bool   `mapstructure:"pretty"`
	FilesDir  string `mapstructure:"files-dir"`
	Sort      bool   `mapstructure:"sort"`
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
}

func main() {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "xlbatch --job job.yaml [file-or-glob...]",
		Short: "Extract structured data from batches of Excel files",
		Long: `xlbatch applies the extraction specs of a job file to many Excel
workbooks in parallel and writes the results as JSON or YAML.

Positional arguments replace the job file's "files" list.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var s settings
			if err := v.Unmarshal(&s); err != nil {
				return fmt.Errorf("invalid settings: %w", err)
			}
			if err := setupLogger(s.LogLevel, s.LogFormat); err != nil {
				return err
			}
			return run(cmd.Context(), v, s, args)
		},
	}

	flags := rootCmd.Flags()
	flags.String("config", "", "Settings file (yaml, json or toml)")
	flags.StringP("job", "j", "", "Job file describing files and extraction specs")
	flags.IntP("workers", "w", 0, "Maximum number of files processed at once (default: number of CPUs)")
	flags.StringP("output", "o", "-", "Output file path (default: stdout)")
	flags.String("format", "json", "Output format: json or yaml")
	flags.Bool("pretty", false, "Pretty-print JSON output")
	flags.String("files-dir", "", "Directory for per-file output documents")
	flags.Bool("sort", true, "Sort results by file path")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "console", "Log format: console or json")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix("XLBATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	return nil
}

func run(ctx context.Context, v *viper.Viper, s settings, args []string) error {
	format, err := output.ParseFormat(s.Format)
	if err != nil {
		return err
	}
	if s.Job == "" {
		return errors.New("a job file is required (--job)")
	}

	job, err := xlbatch.LoadJob(s.Job)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		// command-line paths are relative to the working directory
		job.Files = args
		job.BaseDir = ""
	}
	if v.IsSet("workers") || job.Workers == 0 {
		job.Workers = s.Workers
	}
	if err := job.Validate(); err != nil {
		return err
	}

	paths, err := job.Paths()
	if err != nil {
		return err
	}

	opts := xlbatch.DefaultOptions()
	if job.Workers > 0 {
		opts.Workers = job.Workers
	}
	opts.OnProgress = func(p xlbatch.Progress) {
		log.Info().Msg(p.String())
	}

	results, _, err := xlbatch.ProcessFiles(ctx, paths, job.Specs, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if s.Sort {
		models.SortByPath(results)
	}
	unreadable := 0
	for _, res := range results {
		if res.Unreadable() {
			unreadable++
		}
	}
	log.Info().Int("files", len(results)).Int("unreadable", unreadable).Msg("extraction finished")

	if s.FilesDir != "" {
		written, err := output.WriteFiles(s.FilesDir, results, format, s.Pretty)
		if err != nil {
			return fmt.Errorf("failed to write per-file output: %w", err)
		}
		log.Info().Int("files", len(written)).Str("dir", s.FilesDir).Msg("per-file output written")
		if !v.IsSet("output") {
			return nil
		}
	}

	data, err := output.Marshal(results, format, s.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if err := output.Write(s.Output, data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
