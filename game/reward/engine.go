package reward

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kasuganosora/battlerewards/host"
)

// EngineConfig configures an Engine.
type EngineConfig struct {
	Store    *Store
	Delivery *Delivery
	Logger   *zap.Logger
	RNG      *rand.Rand // injectable for testing
}

// Engine resolves a battle outcome into zero or more reward deliveries:
// it filters the trigger's rule set, keeps only the minimum-order tier,
// and rolls each surviving rule's chance independently.
type Engine struct {
	store  *Store
	deliv  *Delivery
	logger *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewEngine creates an Engine.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.RNG == nil {
		cfg.RNG = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Engine{
		store:  cfg.Store,
		deliv:  cfg.Delivery,
		logger: cfg.Logger,
		rng:    cfg.RNG,
	}
}

// Grant resolves and delivers rewards for one player and outcome.
func (e *Engine) Grant(ctx context.Context, player host.Player, subject Snapshot, kind string, trigger Trigger) {
	rules := e.Eligible(player, subject, kind, trigger)
	if len(rules) == 0 {
		e.logger.Debug("no rewards eligible",
			zap.String("player", player.Name()),
			zap.String("trigger", string(trigger)),
			zap.String("kind", kind))
		return
	}
	for _, rule := range rules {
		e.logger.Debug("dispatching reward",
			zap.String("player", player.Name()),
			zap.String("reward", rule.Name),
			zap.String("type", rule.Type))
		e.deliv.Deliver(ctx, player, rule, subject, kind, trigger)
	}
}

// Eligible returns the rules that fire for this outcome: trigger subset,
// dimension/kind/condition/level filters, minimum-order tier, then an
// independent chance roll per rule. Several rules from one tier may fire
// together; rules in higher-order tiers never roll at all.
func (e *Engine) Eligible(player host.Player, subject Snapshot, kind string, trigger Trigger) []Rule {
	dim := player.Dimension()
	lvl := subject.Level
	if lvl <= 0 {
		lvl = 1
	}

	var matching []Rule
	for _, r := range e.store.Rules(trigger) {
		if !r.AllowsDimension(dim) || !r.AllowsKind(kind) {
			continue
		}
		if !r.Applies(subject) {
			continue
		}
		if lvl < r.MinLevel || lvl > r.MaxLevel {
			continue
		}
		matching = append(matching, r)
	}
	if len(matching) == 0 {
		return nil
	}

	minOrder := matching[0].Order
	for _, r := range matching[1:] {
		if r.Order < minOrder {
			minOrder = r.Order
		}
	}

	var fired []Rule
	for _, r := range matching {
		if r.Order != minOrder {
			continue
		}
		if e.roll() < r.Chance {
			fired = append(fired, r)
		}
	}
	return fired
}

// roll draws a uniform value in [0,100).
func (e *Engine) roll() float64 {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Float64() * 100
}
