package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ledwall/pkg/cache"
	ledio "github.com/matzehuels/ledwall/pkg/io"
	"github.com/matzehuels/ledwall/pkg/observability"
	"github.com/matzehuels/ledwall/pkg/wall/plan"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results, so multiple goroutines can safely share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete wiring → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Wiring
	wiringStart := time.Now()
	p, hash, planHit, err := r.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("wiring: %w", err)
	}
	result.Plan = p
	result.PlanHash = hash
	result.Stats.WiringTime = time.Since(wiringStart)
	result.Stats.PanelCount = p.Metrics.TotalPanels
	result.Stats.PortCount = p.Metrics.TotalPorts
	result.CacheInfo.PlanHit = planHit

	r.Logger.Info("computed wiring",
		"panels", p.Metrics.TotalPanels,
		"ports", p.Metrics.TotalPorts,
		"cached", planHit,
		"duration", result.Stats.WiringTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, p, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"view", opts.View,
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildWithCacheInfo computes the plan for opts.Config, consulting the cache
// first unless opts.Refresh is set. It returns the plan, its content hash and
// whether it came from cache.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (*plan.Plan, string, bool, error) {
	if err := opts.ValidateForWiring(); err != nil {
		return nil, "", false, err
	}
	hooks := observability.Pipeline()
	hooks.OnWiringStart(ctx, opts.Config.Grid.Panels())
	start := time.Now()

	configHash, err := cache.HashJSON(opts.Config)
	if err != nil {
		hooks.OnWiringComplete(ctx, 0, time.Since(start), err)
		return nil, "", false, fmt.Errorf("hash config: %w", err)
	}
	cacheKey := r.Keyer.PlanKey(configHash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if p, err := ledio.ReadJSON(bytes.NewReader(data)); err == nil && p.Config == opts.Config {
				observability.Cache().OnCacheHit(ctx, observability.KeyPlan)
				hooks.OnWiringComplete(ctx, len(p.Ports), time.Since(start), nil)
				return p, cache.Hash(data), true, nil
			}
			// A stale or corrupt entry falls through to recompute.
		} else if err != nil {
			r.Logger.Warn("plan cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, observability.KeyPlan)
	}

	p, err := plan.Build(opts.Config)
	if err != nil {
		hooks.OnWiringComplete(ctx, 0, time.Since(start), err)
		return nil, "", false, err
	}

	var buf bytes.Buffer
	if err := ledio.WriteJSON(p, &buf); err != nil {
		hooks.OnWiringComplete(ctx, len(p.Ports), time.Since(start), err)
		return nil, "", false, fmt.Errorf("serialize plan: %w", err)
	}
	data := buf.Bytes()
	if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLPlan); err != nil {
		r.Logger.Warn("plan cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, observability.KeyPlan, len(data))
	}

	hooks.OnWiringComplete(ctx, len(p.Ports), time.Since(start), nil)
	return p, cache.Hash(data), false, nil
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards
// the hash and cache hit info.
func (r *Runner) Build(ctx context.Context, opts Options) (*plan.Plan, error) {
	p, _, _, err := r.BuildWithCacheInfo(ctx, opts)
	return p, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. planHash identifies p in artifact keys; an empty hash disables
// artifact caching.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p *plan.Plan, planHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.View, opts.Formats)
	start := time.Now()

	// Try to get all formats from cache
	if planHash != "" && !opts.Refresh {
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(uniq(opts.Formats)) {
			observability.Cache().OnCacheHit(ctx, observability.KeyArtifact)
			hooks.OnRenderComplete(ctx, opts.View, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, observability.KeyArtifact)
	}

	rendered, err := Render(ctx, p, opts)
	hooks.OnRenderComplete(ctx, opts.View, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if planHash != "" {
		for format, data := range rendered {
			key := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
				r.Logger.Warn("artifact cache write failed", "format", format, "error", err)
				continue
			}
			observability.Cache().OnCacheSet(ctx, observability.KeyArtifact, len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, p *plan.Plan, planHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, p, planHash, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func uniq(formats []string) map[string]bool {
	set := make(map[string]bool, len(formats))
	for _, f := range formats {
		set[f] = true
	}
	return set
}
