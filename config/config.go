// Package config loads the plugin configuration and the reward-rule
// catalog from YAML, with a blocking reload that swaps the catalog
// without disturbing in-flight battles.
package config

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kasuganosora/battlerewards/cache"
	"github.com/kasuganosora/battlerewards/game/reward"
)

// Version is the plugin version reported by the base command.
const Version = "2.0.4"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Cache   cache.Config  `mapstructure:"cache"`
	Rewards RewardsConfig `mapstructure:"rewards"`
}

type ServerConfig struct {
	Port     int    `mapstructure:"port"`
	Debug    bool   `mapstructure:"debug"`
	AdminKey string `mapstructure:"admin_key"`

	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

type RewardsConfig struct {
	// InventoryFullBehavior is what happens to an item reward when the
	// player's inventory is full: "drop" or "skip".
	InventoryFullBehavior string `mapstructure:"inventory_full_behavior"`

	BattleWon     map[string]RewardEntry `mapstructure:"battle_won"`
	BattleLost    map[string]RewardEntry `mapstructure:"battle_lost"`
	BattleForfeit map[string]RewardEntry `mapstructure:"battle_forfeit"`
	Captured      map[string]RewardEntry `mapstructure:"captured"`
}

// RewardEntry is the raw YAML form of one reward rule. Conditions accept
// either a bare predicate string or a list of predicates treated as AND.
type RewardEntry struct {
	Type              string        `mapstructure:"type"`
	Message           string        `mapstructure:"message"`
	Command           string        `mapstructure:"command"`
	ItemStack         string        `mapstructure:"item_stack"`
	Chance            float64       `mapstructure:"chance"`
	Cooldown          int64         `mapstructure:"cooldown"`
	CooldownMessage   string        `mapstructure:"cooldown_message"`
	BattleTypes       []string      `mapstructure:"battle_types"`
	Conditions        []interface{} `mapstructure:"conditions"`
	Blacklist         bool          `mapstructure:"conditions_blacklist"`
	MinLevel          int           `mapstructure:"min_level"`
	MaxLevel          int           `mapstructure:"max_level"`
	Order             int           `mapstructure:"order"`
	ExcludedRewards   []string      `mapstructure:"excluded_rewards"`
	AllowedDimensions []string      `mapstructure:"allowed_dimensions"`
}

// Manager owns the current Config. Reload is blocking and atomic: a
// half-read config is never observable.
type Manager struct {
	path   string
	logger *zap.Logger

	mu  sync.RWMutex
	cur *Config
}

// NewManager creates a Manager for the given config file path. An empty
// path runs on built-in defaults only.
func NewManager(path string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{path: path, logger: logger}
}

// Load reads the configuration. A missing file is not an error: the
// built-in default catalog applies.
func (m *Manager) Load() error {
	cfg, err := m.read()
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.cur = cfg
	m.mu.Unlock()
	return nil
}

// Reload re-reads the configuration and swaps it in. On error the
// previous config stays active.
func (m *Manager) Reload() error {
	return m.Load()
}

// Current returns the active config. Callers must not mutate it.
func (m *Manager) Current() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur
}

func (m *Manager) read() (*Config, error) {
	cfg := Default()
	if m.path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(m.path)
	v.SetConfigType("yaml")

	v.SetDefault("server.port", 8190)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.rate_limit_rps", 50)
	v.SetDefault("server.rate_limit_burst", 100)
	v.SetDefault("cache.mode", "local")
	v.SetDefault("cache.gc_interval", "30s")
	v.SetDefault("rewards.inventory_full_behavior", "drop")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			m.logger.Warn("config file missing, using defaults", zap.String("path", m.path))
			return cfg, nil
		}
		return nil, err
	}

	// Unmarshal over the defaults; keys absent from the file keep
	// their default values, present keys override.
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// A file that defines any reward category replaces the default
	// catalog wholesale rather than merging into it.
	if v.IsSet("rewards.battle_won") || v.IsSet("rewards.battle_lost") ||
		v.IsSet("rewards.battle_forfeit") || v.IsSet("rewards.captured") {
		fresh := &RewardsConfig{InventoryFullBehavior: cfg.Rewards.InventoryFullBehavior}
		if err := v.UnmarshalKey("rewards", fresh); err != nil {
			return nil, err
		}
		cfg.Rewards = *fresh
	}
	return cfg, nil
}

// BuildRules converts the raw reward maps into the engine's catalog,
// applying per-rule defaults and normalizing the condition variants.
func (c *Config) BuildRules(logger *zap.Logger) map[reward.Trigger][]reward.Rule {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := make(map[reward.Trigger][]reward.Rule, 4)
	out[reward.TriggerBattleWon] = buildRuleList(c.Rewards.BattleWon, logger)
	out[reward.TriggerBattleLost] = buildRuleList(c.Rewards.BattleLost, logger)
	out[reward.TriggerBattleForfeit] = buildRuleList(c.Rewards.BattleForfeit, logger)
	out[reward.TriggerCaptured] = buildRuleList(c.Rewards.Captured, logger)
	return out
}

func buildRuleList(entries map[string]RewardEntry, logger *zap.Logger) []reward.Rule {
	rules := make([]reward.Rule, 0, len(entries))
	for name, e := range entries {
		rules = append(rules, e.toRule(name, logger))
	}
	return rules
}

func (e RewardEntry) toRule(name string, logger *zap.Logger) reward.Rule {
	r := reward.Rule{
		Name:              name,
		Type:              strings.ToLower(strings.TrimSpace(e.Type)),
		Message:           e.Message,
		Command:           e.Command,
		ItemStack:         e.ItemStack,
		Chance:            e.Chance,
		CooldownSeconds:   e.Cooldown,
		CooldownMessage:   e.CooldownMessage,
		Blacklist:         e.Blacklist,
		MinLevel:          e.MinLevel,
		MaxLevel:          e.MaxLevel,
		Order:             e.Order,
		ExcludedRewards:   e.ExcludedRewards,
		AllowedDimensions: e.AllowedDimensions,
	}

	// Per-rule defaults matching the documented schema. An order of 0
	// is treated as unset; rule files use order >= 1.
	if r.MinLevel <= 0 {
		r.MinLevel = 1
	}
	if r.MaxLevel <= 0 {
		r.MaxLevel = 100
	}
	if r.Order == 0 {
		r.Order = 999
	}
	if len(e.BattleTypes) == 0 {
		r.BattleKinds = []string{"wild", "npc", "pvp"}
	} else {
		for _, bt := range e.BattleTypes {
			r.BattleKinds = append(r.BattleKinds, strings.ToLower(strings.TrimSpace(bt)))
		}
	}

	for _, cond := range e.Conditions {
		switch v := cond.(type) {
		case string:
			r.Clauses = append(r.Clauses, reward.Clause{All: []string{v}})
		case []interface{}:
			var all []string
			ok := true
			for _, p := range v {
				s, isStr := p.(string)
				if !isStr {
					ok = false
					break
				}
				all = append(all, s)
			}
			if ok && len(all) > 0 {
				r.Clauses = append(r.Clauses, reward.Clause{All: all})
			} else {
				logger.Warn("dropping malformed condition clause",
					zap.String("reward", name))
			}
		case []string:
			r.Clauses = append(r.Clauses, reward.Clause{All: v})
		default:
			logger.Warn("dropping malformed condition",
				zap.String("reward", name))
		}
	}
	return r
}
