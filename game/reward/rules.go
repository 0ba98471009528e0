// Package reward holds the reward-rule catalog, the condition evaluator,
// and the resolution engine that decides which rewards fire for a given
// battle outcome.
package reward

import (
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
	"time"
)

// Trigger identifies which reward category to consult for an outcome.
type Trigger string

const (
	TriggerBattleWon     Trigger = "BattleWon"
	TriggerBattleLost    Trigger = "BattleLost"
	TriggerBattleForfeit Trigger = "BattleForfeit"
	TriggerCaptured      Trigger = "Captured"
)

// Triggers lists all reward categories in display order.
var Triggers = []Trigger{TriggerBattleWon, TriggerBattleLost, TriggerBattleForfeit, TriggerCaptured}

// Reward types.
const (
	TypeItem    = "item"
	TypeCommand = "command"
)

// Clause is a conjunction of predicate strings. A bare predicate in the
// config normalizes to a one-element clause. A rule's clauses are
// disjoined: the rule's conditions match when any clause matches.
type Clause struct {
	All []string
}

// Rule is one reward definition, immutable after load.
type Rule struct {
	Name            string
	Type            string // item | command
	Message         string
	Command         string
	ItemStack       string
	Chance          float64 // 0-100 percent
	CooldownSeconds int64
	CooldownMessage string
	BattleKinds     []string // subset of {"wild","npc","pvp"}, lowercase
	Clauses         []Clause
	Blacklist       bool
	MinLevel        int
	MaxLevel        int
	Order           int // lower fires first

	// ExcludedRewards is carried for config compatibility but has no
	// effect on resolution.
	ExcludedRewards []string

	// AllowedDimensions empty means all dimensions.
	AllowedDimensions []string
}

// Identity is the cooldown key for this rule. Two rules with the same
// type and message share one cooldown slot.
func (r Rule) Identity() string {
	h := fnv.New32a()
	h.Write([]byte(r.Message))
	return fmt.Sprintf("%s_%08x", r.Type, h.Sum32())
}

// Cooldown returns the minimum re-grant interval.
func (r Rule) Cooldown() time.Duration {
	return time.Duration(r.CooldownSeconds) * time.Second
}

// AllowsKind reports whether the rule applies to the given battle kind.
func (r Rule) AllowsKind(kind string) bool {
	for _, k := range r.BattleKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// AllowsDimension reports whether the rule applies in the given
// dimension. An empty dimension list allows everywhere.
func (r Rule) AllowsDimension(dim string) bool {
	if len(r.AllowedDimensions) == 0 {
		return true
	}
	for _, d := range r.AllowedDimensions {
		if d == dim {
			return true
		}
	}
	return false
}

// Store holds the current rule catalog grouped by trigger. It is
// read-only during matching; Replace swaps the whole catalog on config
// reload without touching in-flight battles.
type Store struct {
	mu    sync.RWMutex
	rules map[Trigger][]Rule
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{rules: make(map[Trigger][]Rule)}
}

// Replace installs a new catalog. Rules are sorted by name within each
// trigger so listings and same-tier dispatch are deterministic.
func (s *Store) Replace(rules map[Trigger][]Rule) {
	installed := make(map[Trigger][]Rule, len(rules))
	for tr, rs := range rules {
		cp := make([]Rule, len(rs))
		copy(cp, rs)
		sort.Slice(cp, func(i, j int) bool { return cp[i].Name < cp[j].Name })
		installed[tr] = cp
	}
	s.mu.Lock()
	s.rules = installed
	s.mu.Unlock()
}

// Rules returns the catalog for one trigger. Callers must not mutate the
// returned slice.
func (s *Store) Rules(tr Trigger) []Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules[tr]
}

// All returns the full catalog keyed by trigger.
func (s *Store) All() map[Trigger][]Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[Trigger][]Rule, len(s.rules))
	for tr, rs := range s.rules {
		out[tr] = rs
	}
	return out
}
