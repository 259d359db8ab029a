package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"storescrape/internal/config"
	"storescrape/internal/crawler"
	"storescrape/internal/crawler/sources"
	"storescrape/internal/geocode"
	"storescrape/internal/logger"
	"storescrape/internal/pipeline"
)

// ErrUnknownSource is returned when --source names a source missing from the config.
var ErrUnknownSource = errors.New("unknown source")

func newRunCmd() *cobra.Command {
	var (
		configPath string
		only       []string
	)

	cmd := &cobra.Command{
		Use:   "run [--config <path>] [--source <name>...]",
		Short: "Scrapes every enabled source and writes one JSON document per source.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if err := selectSources(cfg, only); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}

			log := logger.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
			log.Debug("configuration loaded", "config", cfg.String())

			deps := sources.Deps{
				Scraper:  crawler.NewScraperWithConfig(&cfg.HTTP),
				Geocoder: geocode.NewNominatim(&cfg.Geocoder, cfg.HTTP.GetTimeout()),
				Logger:   log,
			}

			jobs, err := sources.Jobs(cfg, deps)
			if err != nil {
				return err
			}

			results, err := pipeline.NewRunner(log).RunAll(cmd.Context(), jobs)
			printSummary(cmd.OutOrStdout(), results)

			if err != nil {
				return fmt.Errorf("scrape aborted: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", DefaultConfigPath, "Path to YAML configuration file")
	cmd.Flags().StringSliceVarP(&only, "source", "s", nil, "Run only the named sources, even if disabled")

	return cmd
}

// selectSources narrows cfg to the named sources and enables them. A name
// given twice is selected once.
func selectSources(cfg *config.Config, names []string) error {
	if len(names) == 0 {
		return nil
	}

	selected := make([]config.SourceConfig, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		if seen[name] {
			continue
		}

		seen[name] = true

		src, ok := cfg.GetSource(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSource, name)
		}

		src.Enabled = true
		selected = append(selected, src)
	}

	cfg.Sources = selected

	return nil
}

func printSummary(w io.Writer, results []*pipeline.Result) {
	ok := 0

	for _, res := range results {
		if res.OK {
			ok++
			fmt.Fprintf(w, "✅ %s: %d records -> %s (%s)\n", res.Source, len(res.Records), res.Output, res.Duration.Round(time.Millisecond))

			continue
		}

		fmt.Fprintf(w, "❌ %s: %s\n", res.Source, res.Err)
	}

	fmt.Fprintf(w, "📊 %d/%d sources succeeded\n", ok, len(results))
}
