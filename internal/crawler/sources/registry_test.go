package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storescrape/internal/config"
	"storescrape/internal/logger"
	"storescrape/internal/pipeline"
)

func TestJobs(t *testing.T) {
	kfc := serveFixture(t, "kfc.json", nil)
	ziko := serveFixture(t, "ziko.json", nil)
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Output.BaseDir = dir
	cfg.Sources = []config.SourceConfig{
		{Name: "kfc", Kind: config.KindAPIJSON, URL: kfc.URL, Output: "kfc.json", Enabled: true},
		{Name: "monomah", Kind: config.KindHTML, URL: "http://unused", Output: "monomah.json", Enabled: false},
		{Name: "ziko", Kind: config.KindAJAXJSON, URL: ziko.URL, Output: "ziko.json", Enabled: true},
	}

	jobs, err := Jobs(&cfg, testDeps(&fakeGeocoder{}))
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "kfc", jobs[0].Source)
	assert.Equal(t, filepath.Join(dir, "ziko.json"), jobs[1].Output)

	results, err := pipeline.NewRunner(logger.Discard()).RunAll(context.Background(), jobs)
	require.NoError(t, err)

	for _, res := range results {
		assert.True(t, res.OK, "%s: %v", res.Source, res.Err)
		assert.FileExists(t, res.Output)
	}
}

func TestNewJob_UnknownKind(t *testing.T) {
	src := config.SourceConfig{Name: "x", Kind: "ftp", URL: "ftp://x", Output: "x.json"}

	_, err := NewJob(src, "Минск", "x.json", testDeps(&fakeGeocoder{}))
	require.ErrorIs(t, err, config.ErrUnknownSourceKind)
}

func TestJob_ConnectivityFailureWritesNothing(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	path := filepath.Join(t.TempDir(), "kfc.json")
	src := config.SourceConfig{Name: "kfc", Kind: config.KindAPIJSON, URL: url, Output: "kfc.json", Enabled: true}

	job, err := NewJob(src, "", path, testDeps(&fakeGeocoder{}))
	require.NoError(t, err)

	res, err := job.Run(context.Background(), pipeline.NewRunner(logger.Discard()))
	require.NoError(t, err)
	require.False(t, res.OK)
	assert.Equal(t, pipeline.ConnectivityError, res.Err.Kind)
	assert.NoFileExists(t, path)
}

func TestJob_MissingSchemeIsMalformedRequest(t *testing.T) {
	src := config.SourceConfig{Name: "ziko", Kind: config.KindAJAXJSON, URL: "www.ziko.pl/ajax", Output: "ziko.json"}

	job, err := NewJob(src, "", filepath.Join(t.TempDir(), "ziko.json"), testDeps(&fakeGeocoder{}))
	require.NoError(t, err)

	res, err := job.Run(context.Background(), pipeline.NewRunner(logger.Discard()))
	require.NoError(t, err)
	require.False(t, res.OK)
	assert.Equal(t, pipeline.MalformedRequestError, res.Err.Kind)
}
