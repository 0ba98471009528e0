package config

import (
	"time"

	"github.com/kasuganosora/battlerewards/cache"
)

// Default returns the built-in configuration, including a starter reward
// catalog that doubles as schema documentation.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8190,
			Debug:          false,
			RateLimitRPS:   50,
			RateLimitBurst: 100,
		},
		Cache: cache.Config{
			Mode:       "local",
			GCInterval: 30 * time.Second,
		},
		Rewards: RewardsConfig{
			InventoryFullBehavior: "drop",
			BattleWon: map[string]RewardEntry{
				"money_100": {
					Type:              "command",
					Message:           "<green>You received $100 for winning a %battleType% battle against %pokemon% (lvl %level%)!</green>",
					Command:           "eco deposit 100 dollars %player%",
					Chance:            25,
					BattleTypes:       []string{"wild", "npc", "pvp"},
					MinLevel:          1,
					MaxLevel:          100,
					Order:             999,
					AllowedDimensions: []string{"minecraft:overworld"},
				},
				"money_50": {
					Type:        "command",
					Message:     "<green>You received $50 for winning at %coords%!</green>",
					Command:     "eco deposit 50 dollars %player%",
					Chance:      50,
					BattleTypes: []string{"wild", "npc", "pvp"},
					MinLevel:    1,
					MaxLevel:    100,
					Order:       999,
				},
				"pokeballs": {
					Type:        "item",
					Message:     "<aqua>You received 3 Poké Balls at %coords%!</aqua>",
					ItemStack:   `{"id":"cobblemon:poke_ball","count":3,"components":{"minecraft:custom_name":"\"Battle Reward Poké Ball\""}}`,
					Chance:      100,
					BattleTypes: []string{"wild"},
					MinLevel:    1,
					MaxLevel:    100,
					Order:       999,
				},
				"ghost_bonus": {
					Type:        "command",
					Message:     "<gold>You received a Ghost Type Bonus for defeating %pokemon%!</gold>",
					Command:     "eco deposit 100 dollars %player%",
					Chance:      100,
					BattleTypes: []string{"wild"},
					Conditions:  []interface{}{"type=ghost"},
					MinLevel:    1,
					MaxLevel:    100,
					Order:       2,
				},
				"pikachu_reward": {
					Type:            "item",
					Message:         "<yellow>You found a Pikachu reward after beating %pokemon% (lvl %level%)!</yellow>",
					ItemStack:       `{"id":"minecraft:gold_ingot","count":3,"components":{"minecraft:custom_name":"\"Pikachu Reward\""}}`,
					Chance:          100,
					Cooldown:        300,
					CooldownMessage: "<red>Please wait %time% seconds before another Pikachu reward.</red>",
					BattleTypes:     []string{"wild"},
					Conditions:      []interface{}{"cobblemon:pikachu"},
					MinLevel:        1,
					MaxLevel:        100,
					Order:           1,
					ExcludedRewards: []string{"electric_bonus"},
				},
				"zapdos_reward": {
					Type:            "item",
					Message:         "<light_purple>You defeated Zapdos and received a legendary reward!</light_purple>",
					ItemStack:       `{"id":"minecraft:emerald","count":5,"components":{"minecraft:custom_name":"\"Zapdos Reward\""}}`,
					Chance:          100,
					BattleTypes:     []string{"wild"},
					Conditions:      []interface{}{"cobblemon:zapdos"},
					MinLevel:        1,
					MaxLevel:        100,
					Order:           1,
					ExcludedRewards: []string{"electric_bonus", "flying_bonus"},
				},
				"electric_bonus": {
					Type:        "command",
					Message:     "<light_purple>You received an Electric Type Bonus for winning!</light_purple>",
					Command:     "eco deposit 50 dollars %player%",
					Chance:      100,
					BattleTypes: []string{"wild"},
					Conditions:  []interface{}{"type=electric"},
					MinLevel:    1,
					MaxLevel:    100,
					Order:       2,
				},
				"flying_bonus": {
					Type:        "command",
					Message:     "<light_purple>You received a Flying Type Bonus for winning!</light_purple>",
					Command:     "eco deposit 25 dollars %player%",
					Chance:      100,
					BattleTypes: []string{"wild"},
					Conditions:  []interface{}{"type=flying"},
					MinLevel:    1,
					MaxLevel:    100,
					Order:       3,
				},
				"no_common_reward": {
					Type:        "item",
					Message:     "<gray>You won a battle and didn't get a common item!</gray>",
					ItemStack:   `{"id":"minecraft:stick","count":1}`,
					Chance:      10,
					BattleTypes: []string{"wild"},
					Conditions:  []interface{}{"cobblemon:pidgey", "cobblemon:rattata", "cobblemon:zubat"},
					Blacklist:   true,
					MinLevel:    1,
					MaxLevel:    100,
					Order:       999,
				},
			},
			BattleLost:    map[string]RewardEntry{},
			BattleForfeit: map[string]RewardEntry{},
			Captured: map[string]RewardEntry{
				"capture_money": {
					Type:        "command",
					Message:     "<green>You received $50 for capturing a Pokémon at %coords%!</green>",
					Command:     "eco deposit 50 dollars %player%",
					Chance:      100,
					BattleTypes: []string{"wild"},
					MinLevel:    1,
					MaxLevel:    100,
					Order:       999,
				},
				"ghost_capture_bonus": {
					Type:        "command",
					Message:     "<gold>You received a Ghost Capture Bonus for catching %pokemon%!</gold>",
					Command:     "eco deposit 100 dollars %player%",
					Chance:      100,
					BattleTypes: []string{"wild"},
					Conditions:  []interface{}{"type=ghost"},
					MinLevel:    1,
					MaxLevel:    100,
					Order:       2,
				},
				"pikachu_capture_reward": {
					Type:            "item",
					Message:         "<yellow>You got a Pikachu capture reward!</yellow>",
					ItemStack:       `{"id":"minecraft:gold_ingot","count":3,"components":{"minecraft:custom_name":"\"Pikachu Reward\""}}`,
					Chance:          100,
					Cooldown:        300,
					CooldownMessage: "<red>Please wait %time% seconds before another Pikachu capture reward.</red>",
					BattleTypes:     []string{"wild"},
					Conditions:      []interface{}{"cobblemon:pikachu"},
					MinLevel:        1,
					MaxLevel:        100,
					Order:           1,
					ExcludedRewards: []string{"electric_capture_bonus"},
				},
				"zapdos_capture_reward": {
					Type:            "item",
					Message:         "<light_purple>You captured the mighty Zapdos! Enjoy your legendary reward.</light_purple>",
					ItemStack:       `{"id":"minecraft:emerald","count":5,"components":{"minecraft:custom_name":"\"Zapdos Capture Reward\""}}`,
					Chance:          100,
					BattleTypes:     []string{"wild"},
					Conditions:      []interface{}{"cobblemon:zapdos"},
					MinLevel:        1,
					MaxLevel:        100,
					Order:           1,
					ExcludedRewards: []string{"electric_capture_bonus", "flying_capture_bonus"},
				},
				"electric_capture_bonus": {
					Type:        "command",
					Message:     "<light_purple>You received an Electric Capture Bonus!</light_purple>",
					Command:     "eco deposit 50 dollars %player%",
					Chance:      100,
					BattleTypes: []string{"wild"},
					Conditions:  []interface{}{"type=electric"},
					MinLevel:    1,
					MaxLevel:    100,
					Order:       2,
				},
				"flying_capture_bonus": {
					Type:        "command",
					Message:     "<light_purple>You received a Flying Capture Bonus!</light_purple>",
					Command:     "eco deposit 25 dollars %player%",
					Chance:      100,
					BattleTypes: []string{"wild"},
					Conditions:  []interface{}{"type=flying"},
					MinLevel:    1,
					MaxLevel:    100,
					Order:       3,
				},
			},
		},
	}
}
