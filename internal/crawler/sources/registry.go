package sources

import (
	"fmt"

	"storescrape/internal/config"
	"storescrape/internal/crawler"
	"storescrape/internal/geocode"
	"storescrape/internal/logger"
	"storescrape/internal/output"
	"storescrape/internal/pipeline"
)

// Deps are the collaborators shared by every adapter.
type Deps struct {
	Scraper  *crawler.Scraper
	Geocoder geocode.Geocoder
	Logger   *logger.Logger
}

// NewJob builds the pipeline job for one configured source, writing to
// outputPath.
func NewJob(src config.SourceConfig, city, outputPath string, deps Deps) (pipeline.Job, error) {
	sink := output.NewJSONFileSink(outputPath)

	switch src.Kind {
	case config.KindAPIJSON:
		return pipeline.NewJob(src.Name, outputPath, NewKFC(src.URL, deps.Scraper), sink), nil
	case config.KindAJAXJSON:
		return pipeline.NewJob(src.Name, outputPath, NewZiko(src.URL, deps.Scraper), sink), nil
	case config.KindHTML:
		adapter := NewMonomah(src.URL, city, deps.Scraper, deps.Geocoder, deps.Logger.With("source", src.Name))

		return pipeline.NewJob(src.Name, outputPath, adapter, sink), nil
	default:
		return pipeline.Job{}, fmt.Errorf("%w: %q", config.ErrUnknownSourceKind, src.Kind)
	}
}

// Jobs builds a job for every enabled source in cfg, in configuration order.
func Jobs(cfg *config.Config, deps Deps) ([]pipeline.Job, error) {
	enabled := cfg.GetEnabledSources()
	jobs := make([]pipeline.Job, 0, len(enabled))

	for _, src := range enabled {
		job, err := NewJob(src, cfg.Geocoder.City, cfg.GetOutputPath(src), deps)
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, job)
	}

	return jobs, nil
}
