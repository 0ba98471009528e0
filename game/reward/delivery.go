package reward

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kasuganosora/battlerewards/game/item"
	"github.com/kasuganosora/battlerewards/host"
)

// Inventory-full policies for item rewards.
const (
	PolicyDrop = "drop"
	PolicySkip = "skip"
)

const defaultCooldownMessage = "<red>Wait %time% seconds...</red>"

// Delivery executes a chosen reward's effect and records the cooldown on
// success. Failures never propagate: every error is logged and reported
// as a false return.
type Delivery struct {
	ledger *Ledger
	exec   host.CommandExecutor

	// policy returns the current inventory-full behavior, read per
	// delivery so a config reload takes effect immediately.
	policy func() string

	logger *zap.Logger
}

// NewDelivery creates a Delivery adapter.
func NewDelivery(ledger *Ledger, exec host.CommandExecutor, policy func() string, logger *zap.Logger) *Delivery {
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy == nil {
		policy = func() string { return PolicyDrop }
	}
	return &Delivery{ledger: ledger, exec: exec, policy: policy, logger: logger}
}

// Deliver executes one reward for a player. It returns true only when
// something was actually granted; the cooldown is stamped only then.
func (d *Delivery) Deliver(ctx context.Context, player host.Player, rule Rule, subject Snapshot, kind string, trigger Trigger) bool {
	rewardID := rule.Identity()

	if rem := d.ledger.Remaining(ctx, player.UUID(), rewardID, rule.Cooldown()); rem > 0 {
		tmpl := rule.CooldownMessage
		if tmpl == "" {
			tmpl = defaultCooldownMessage
		}
		secs := strconv.FormatInt(rem.Milliseconds()/1000, 10)
		msg := applyPlaceholders(strings.ReplaceAll(tmpl, "%time%", secs), player, subject, kind, rule, trigger)
		player.SendMessage(msg)
		return false
	}

	var success bool
	switch strings.ToLower(rule.Type) {
	case TypeItem:
		success = d.giveItem(player, rule, subject, kind, trigger)
	case TypeCommand:
		success = d.runCommand(player, rule, subject, kind, trigger)
	default:
		d.logger.Warn("unknown reward type",
			zap.String("reward", rule.Name), zap.String("type", rule.Type))
	}

	if success {
		d.ledger.Stamp(ctx, player.UUID(), rewardID, rule.Cooldown())
	}
	return success
}

// giveItem decodes and grants the rule's item payload. A failed insert
// falls back to the inventory-full policy: "drop" puts the stack on the
// ground and still counts as delivered, "skip" discards it and counts as
// a failure. A payload that decodes to nothing follows the same path.
func (d *Delivery) giveItem(player host.Player, rule Rule, subject Snapshot, kind string, trigger Trigger) bool {
	if rule.ItemStack == "" {
		d.logger.Debug("item reward has no stack payload", zap.String("reward", rule.Name))
		return false
	}

	stack, err := item.Decode(rule.ItemStack)
	if err != nil {
		d.logger.Debug("item stack decode failed, treating as empty",
			zap.String("reward", rule.Name), zap.Error(err))
	}

	inserted := false
	if !stack.Empty() {
		inserted = player.InsertStack(stack)
	}
	drop := d.policy() == PolicyDrop
	if !inserted && drop {
		player.DropStack(stack)
	}

	if rule.Message != "" {
		player.SendMessage(applyPlaceholders(rule.Message, player, subject, kind, rule, trigger))
	}
	return inserted || drop
}

// runCommand renders and executes the rule's command as the player.
func (d *Delivery) runCommand(player host.Player, rule Rule, subject Snapshot, kind string, trigger Trigger) bool {
	if strings.TrimSpace(rule.Command) == "" {
		d.logger.Debug("command reward has empty command", zap.String("reward", rule.Name))
		return false
	}

	cmd := applyPlaceholders(rule.Command, player, subject, kind, rule, trigger)
	if err := d.exec.Execute(cmd, player); err != nil {
		d.logger.Warn("reward command failed",
			zap.String("reward", rule.Name),
			zap.String("player", player.Name()),
			zap.Error(err))
		return false
	}

	if rule.Message != "" {
		player.SendMessage(applyPlaceholders(rule.Message, player, subject, kind, rule, trigger))
	}
	return true
}
