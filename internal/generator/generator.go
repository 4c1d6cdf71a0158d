// Package generator orchestrates the binding pipelines. Each schema
// kind runs as its own pipeline over its own output subtree, so a
// failure in one never corrupts the others.
package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/swiftly-solution/codegen/internal/config"
	"github.com/swiftly-solution/codegen/internal/datamap"
	"github.com/swiftly-solution/codegen/internal/events"
	"github.com/swiftly-solution/codegen/internal/fetch"
	"github.com/swiftly-solution/codegen/internal/natives"
	"github.com/swiftly-solution/codegen/internal/protos"
)

// Kind names one binding pipeline.
type Kind string

const (
	KindEvents   Kind = "events"
	KindNatives  Kind = "natives"
	KindProtos   Kind = "protos"
	KindDatamaps Kind = "datamaps"
)

// Kinds lists every pipeline in presentation order.
var Kinds = []Kind{KindEvents, KindNatives, KindProtos, KindDatamaps}

// Result is the outcome of one pipeline run.
type Result struct {
	Kind     Kind
	Err      error
	Files    int
	Warnings []string
	Elapsed  time.Duration
}

// Run launches the selected pipelines concurrently and waits for all
// of them. Results come back in the order kinds were given.
func Run(ctx context.Context, cfg *config.Config, kinds []Kind) []Result {
	results := make([]Result, len(kinds))
	var wg sync.WaitGroup
	for i, kind := range kinds {
		wg.Add(1)
		go func(i int, kind Kind) {
			defer wg.Done()
			results[i] = runOne(ctx, cfg, kind)
		}(i, kind)
	}
	wg.Wait()
	return results
}

// runOne executes a single pipeline into a staging directory and swaps
// it into place on success. A panic inside the pipeline is captured
// into the result.
func runOne(ctx context.Context, cfg *config.Config, kind Kind) (res Result) {
	res.Kind = kind
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("%s pipeline panicked: %v", kind, r)
		}
		res.Elapsed = time.Since(start)
	}()

	final := filepath.Join(cfg.Output.Root, string(kind))
	staging := filepath.Join(cfg.Output.Root, fmt.Sprintf(".%s-%s", kind, uuid.NewString()))
	if err := os.MkdirAll(staging, 0755); err != nil {
		res.Err = err
		return res
	}
	defer os.RemoveAll(staging)

	files, warnings, err := dispatch(ctx, cfg, kind, staging)
	res.Files = files
	res.Warnings = warnings
	if err != nil {
		res.Err = err
		return res
	}

	if err := os.RemoveAll(final); err != nil {
		res.Err = err
		return res
	}
	if err := os.Rename(staging, final); err != nil {
		res.Err = err
		return res
	}
	return res
}

func dispatch(ctx context.Context, cfg *config.Config, kind Kind, outDir string) (int, []string, error) {
	switch kind {
	case KindEvents:
		return runEvents(ctx, cfg, outDir)
	case KindNatives:
		return runNatives(cfg, outDir)
	case KindProtos:
		return runProtos(cfg, outDir)
	case KindDatamaps:
		return runDatamaps(cfg, outDir)
	default:
		return 0, nil, fmt.Errorf("unknown pipeline kind: %s", kind)
	}
}

func runEvents(ctx context.Context, cfg *config.Config, outDir string) (int, []string, error) {
	if len(cfg.Events.Sources) == 0 {
		return 0, nil, fmt.Errorf("no event sources configured")
	}
	texts := make([]string, 0, len(cfg.Events.Sources))
	for _, src := range cfg.Events.Sources {
		data, err := fetch.Source(ctx, src.Name, src.URL, src.Path, cfg.Events.CacheDir)
		if err != nil {
			return 0, nil, err
		}
		texts = append(texts, string(data))
	}

	schema := events.MergeSources(texts...)
	res, err := events.Emit(schema, outDir)
	if err != nil {
		return 0, nil, err
	}
	return res.Files, res.Warnings, nil
}

func runNatives(cfg *config.Config, outDir string) (int, []string, error) {
	if len(cfg.Natives.Files) == 0 {
		return 0, nil, fmt.Errorf("no native listings configured")
	}
	total := 0
	for _, path := range cfg.Natives.Files {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, nil, fmt.Errorf("read native listing: %w", err)
		}
		res, err := natives.Emit(natives.Parse(string(data)), outDir)
		if err != nil {
			return 0, nil, err
		}
		total += res.Files
	}
	return total, nil, nil
}

func runProtos(cfg *config.Config, outDir string) (int, []string, error) {
	if len(cfg.Protos.Files) == 0 {
		return 0, nil, fmt.Errorf("no proto files configured")
	}
	adapter, err := protos.Load(cfg.Protos.ImportPaths, cfg.Protos.Files)
	if err != nil {
		return 0, nil, err
	}
	res, err := adapter.Emit(outDir)
	if err != nil {
		return 0, nil, err
	}
	return res.Files, res.Warnings, nil
}

func runDatamaps(cfg *config.Config, outDir string) (int, []string, error) {
	if cfg.Datamaps.File == "" {
		return 0, nil, fmt.Errorf("no datamap dump configured")
	}
	data, err := os.ReadFile(cfg.Datamaps.File)
	if err != nil {
		return 0, nil, fmt.Errorf("read datamap dump: %w", err)
	}
	dump, err := datamap.Parse(data)
	if err != nil {
		return 0, nil, err
	}
	res, err := datamap.Emit(dump, outDir)
	if err != nil {
		return 0, nil, err
	}
	return res.Files, nil, nil
}
