// Package directory owns the loaded voter dataset and one search index per
// ward plus one over every ward. Reloads build a complete new snapshot and
// swap it in atomically, so in-flight queries finish on the old one.
package directory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khalidmahamud/voter-info-web/config"
	"github.com/khalidmahamud/voter-info-web/internal/dataset"
	"github.com/khalidmahamud/voter-info-web/internal/errors"
	"github.com/khalidmahamud/voter-info-web/internal/logger"
	"github.com/khalidmahamud/voter-info-web/internal/metrics"
	"github.com/khalidmahamud/voter-info-web/internal/numerals"
	"github.com/khalidmahamud/voter-info-web/internal/search"
	"github.com/khalidmahamud/voter-info-web/internal/stats"
	"github.com/khalidmahamud/voter-info-web/model"
	"github.com/khalidmahamud/voter-info-web/services"
)

// AllWardsName labels the index over the whole dataset.
const AllWardsName = "All wards"

// Loader returns a freshly read dataset.
type Loader func() (*model.Dataset, error)

// Config configures a Directory.
type Config struct {
	Path            string // dataset file, read by the default loader
	Search          config.SearchSettings
	DefaultPageSize int
	MaxPageSize     int
	CacheSize       int
	Loader          Loader           // nil reads Path with dataset.Load
	Now             func() time.Time // clock for age statistics, nil uses time.Now
}

// snapshot is one fully built generation of the directory.
type snapshot struct {
	wards     map[int]*Ward
	all       *Ward
	summaries []model.WardSummary
	loadedAt  time.Time
}

// Directory resolves ward keys to searchable wards.
// It implements the services.Directory interface.
type Directory struct {
	cfg    Config
	state  atomic.Pointer[snapshot]
	mu     sync.Mutex // serializes reloads
	logger *zap.Logger
}

// New loads the dataset and builds every index. It fails if the initial load
// fails.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*Directory, error) {
	if cfg.Loader == nil {
		if cfg.Path == "" {
			return nil, fmt.Errorf("dataset path cannot be empty")
		}
		path := cfg.Path
		cfg.Loader = func() (*model.Dataset, error) { return dataset.Load(path) }
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	cfg.Search.ApplyDefaults()

	d := &Directory{
		cfg:    cfg,
		logger: logger.OrNop(log),
	}
	if err := d.Reload(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// FromDataset builds a Directory over an in-memory dataset. Reload rebuilds
// the same dataset.
func FromDataset(ctx context.Context, ds *model.Dataset, cfg Config, log *zap.Logger) (*Directory, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset cannot be nil")
	}
	cfg.Loader = func() (*model.Dataset, error) { return ds, nil }
	return New(ctx, cfg, log)
}

// Ward returns the ward addressed by key: a ward number in either script or
// model.AllWards.
func (d *Directory) Ward(key string) (services.WardAccessor, error) {
	w, err := d.lookup(key)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (d *Directory) lookup(key string) (*Ward, error) {
	snap := d.state.Load()
	trimmed := strings.TrimSpace(key)
	if strings.EqualFold(trimmed, model.AllWards) {
		return snap.all, nil
	}
	n, err := strconv.Atoi(numerals.ToArabic(trimmed))
	if err != nil {
		return nil, errors.NewWardNotFoundError(key)
	}
	w, ok := snap.wards[n]
	if !ok {
		return nil, errors.NewWardNotFoundError(key)
	}
	return w, nil
}

// ListWards returns the summary of every ward ordered by ward number.
func (d *Directory) ListWards() []model.WardSummary {
	snap := d.state.Load()
	out := make([]model.WardSummary, len(snap.summaries))
	copy(out, snap.summaries)
	return out
}

// Total returns the summary of the whole dataset.
func (d *Directory) Total() model.WardSummary {
	return d.state.Load().all.summary
}

// LoadedAt returns when the current snapshot was built.
func (d *Directory) LoadedAt() time.Time {
	return d.state.Load().loadedAt
}

// Reload reads the dataset again and swaps in the rebuilt indexes. On any
// failure the previous snapshot stays in service.
func (d *Directory) Reload(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	snap, err := d.load(ctx)
	metrics.ObserveReload(err)
	if err != nil {
		d.logger.Error("dataset reload failed", zap.String("path", d.cfg.Path), zap.Error(err))
		return err
	}

	d.state.Store(snap)
	d.logger.Info("dataset loaded",
		zap.String("path", d.cfg.Path),
		zap.Int("wards", len(snap.wards)),
		zap.Int("records", snap.all.summary.Total),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

func (d *Directory) load(ctx context.Context) (*snapshot, error) {
	ds, err := d.cfg.Loader()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.build(ctx, ds)
}

// build indexes every ward and the whole dataset concurrently.
func (d *Directory) build(ctx context.Context, ds *model.Dataset) (*snapshot, error) {
	now := d.cfg.Now()
	built := make([]*Ward, len(ds.Wards))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, d.cfg.Search.Parallelism))

	for i := range ds.Wards {
		i := i
		ward := &ds.Wards[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			w, err := d.buildWard(strconv.Itoa(ward.WardNo), ward.Summary(), ward.Records(), now)
			if err != nil {
				return fmt.Errorf("ward %d: %w", ward.WardNo, err)
			}
			built[i] = w
			return nil
		})
	}

	var all *Ward
	g.Go(func() error {
		summary := model.WardSummary{WardName: AllWardsName}
		for i := range ds.Wards {
			summary.Female += len(ds.Wards[i].Female)
			summary.Male += len(ds.Wards[i].Male)
		}
		summary.Total = summary.Female + summary.Male

		w, err := d.buildWard(model.AllWards, summary, ds.Records(), now)
		if err != nil {
			return fmt.Errorf("all wards: %w", err)
		}
		all = w
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &snapshot{
		wards:     make(map[int]*Ward, len(built)),
		all:       all,
		summaries: make([]model.WardSummary, 0, len(built)),
		loadedAt:  time.Now(),
	}
	for _, w := range built {
		snap.wards[w.summary.WardNo] = w
		snap.summaries = append(snap.summaries, w.summary)
	}
	sort.Slice(snap.summaries, func(i, j int) bool {
		return snap.summaries[i].WardNo < snap.summaries[j].WardNo
	})
	return snap, nil
}

func (d *Directory) buildWard(label string, summary model.WardSummary, records []model.Record, now time.Time) (*Ward, error) {
	start := time.Now()
	idx, err := search.Build(records, d.cfg.Search)
	if err != nil {
		return nil, err
	}
	metrics.ObserveIndexBuild(label, time.Since(start), idx.Len())

	svc, err := search.NewService(idx, search.ServiceConfig{
		Ward:            label,
		DefaultPageSize: d.cfg.DefaultPageSize,
		MaxPageSize:     d.cfg.MaxPageSize,
		CacheSize:       d.cfg.CacheSize,
	}, d.logger)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("index built",
		zap.String("ward", label),
		zap.Int("records", idx.Len()),
		zap.Duration("took", time.Since(start)),
	)
	return &Ward{
		Service: svc,
		summary: summary,
		stats:   stats.Calculate(records, now),
	}, nil
}
