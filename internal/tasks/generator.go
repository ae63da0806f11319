package tasks

import (
	"context"
	"sort"
	"sync"
	"time"

	dom "storefront/internal/domain"
	"storefront/internal/logger"

	"golang.org/x/sync/errgroup"
)

// Rule finds rows that need a follow-up task.
type Rule interface {
	Kind() dom.TaskKind
	Candidates(ctx context.Context, now time.Time) ([]dom.Task, error)
}

// Store inserts a task unless an open one exists for the same kind and ref.
type Store interface {
	CreateIfAbsent(ctx context.Context, t dom.Task) (bool, error)
}

// Counts is the outcome of one rule.
type Counts struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Report maps each rule kind to its counts.
type Report map[dom.TaskKind]Counts

func (r Report) Total() Counts {
	var t Counts
	for _, c := range r {
		t.Created += c.Created
		t.Skipped += c.Skipped
		t.Failed += c.Failed
	}
	return t
}

type Generator struct {
	store Store
	rules []Rule
	log   logger.Logger
	now   func() time.Time
}

func NewGenerator(store Store, log logger.Logger, rules ...Rule) *Generator {
	return &Generator{store: store, rules: rules, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Run evaluates every rule concurrently. A failing insert is counted and logged;
// a failing rule query is returned after the other rules finish.
func (g *Generator) Run(ctx context.Context) (Report, error) {
	now := g.now()
	report := make(Report, len(g.rules))
	var mu sync.Mutex

	var eg errgroup.Group
	for _, rule := range g.rules {
		rule := rule
		eg.Go(func() error {
			counts, err := g.runRule(ctx, rule, now)
			mu.Lock()
			report[rule.Kind()] = counts
			mu.Unlock()
			return err
		})
	}
	err := eg.Wait()
	return report, err
}

func (g *Generator) runRule(ctx context.Context, rule Rule, now time.Time) (Counts, error) {
	log := g.log.With("rule", string(rule.Kind()))
	candidates, err := rule.Candidates(ctx, now)
	if err != nil {
		log.Error("task rule query failed", "error", err)
		return Counts{}, err
	}
	var c Counts
	for _, t := range candidates {
		t.Kind = rule.Kind()
		created, err := g.store.CreateIfAbsent(ctx, t)
		switch {
		case err != nil:
			c.Failed++
			log.Warn("task insert failed", "ref_id", t.RefID, "error", err)
		case created:
			c.Created++
		default:
			c.Skipped++
		}
	}
	return c, nil
}

// Watch runs the generator immediately and then on every tick until ctx is done.
func (g *Generator) Watch(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		report, err := g.Run(ctx)
		if err != nil {
			g.log.Error("task generation failed", "error", err)
		}
		g.logReport(report)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (g *Generator) logReport(r Report) {
	kinds := make([]string, 0, len(r))
	for k := range r {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		c := r[dom.TaskKind(k)]
		g.log.Info("task rule finished", "rule", k, "created", c.Created, "skipped", c.Skipped, "failed", c.Failed)
	}
}
