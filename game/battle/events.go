package battle

import (
	"context"

	"github.com/google/uuid"

	"github.com/kasuganosora/battlerewards/host"
	"github.com/kasuganosora/battlerewards/plugin/hook"
)

// Event payloads the host engine delivers through the hook center.

// StartEvent carries a battle's identifier and participant list. The
// pre-start variant may arrive with partial actor data; the post-start
// variant carries the finalized list.
type StartEvent struct {
	BattleID uuid.UUID
	Actors   []Actor
}

// SentOutEvent signals that a participant's active creature changed.
type SentOutEvent struct {
	Creature host.Creature
}

// CaptureEvent signals that a creature was captured.
type CaptureEvent struct {
	Creature host.Creature
}

// VictoryEvent carries the winning actors of a finished battle.
type VictoryEvent struct {
	BattleID uuid.UUID
	Winners  []uuid.UUID
}

// FleeEvent signals that an actor fled the battle.
type FleeEvent struct {
	BattleID uuid.UUID
	Actor    uuid.UUID
}

// FaintEvent signals a fainted creature. Observed for logging only.
type FaintEvent struct {
	BattleID uuid.UUID
	Creature host.Creature
}

const hookName = "battle_tracker"

// RegisterHooks subscribes the tracker to the battle lifecycle events.
func (t *Tracker) RegisterHooks(hc *hook.Center) {
	hc.Register(hook.BattleStartedPre, 0, hookName, func(ctx context.Context, _ string, data interface{}) (interface{}, error) {
		if ev, ok := data.(StartEvent); ok {
			t.OnBattleStartedPre(ev.BattleID, ev.Actors)
		}
		return data, nil
	})
	hc.Register(hook.BattleStartedPost, 0, hookName, func(ctx context.Context, _ string, data interface{}) (interface{}, error) {
		if ev, ok := data.(StartEvent); ok {
			t.OnBattleStartedPost(ev.BattleID, ev.Actors)
		}
		return data, nil
	})
	hc.Register(hook.ParticipantSentOut, 0, hookName, func(ctx context.Context, _ string, data interface{}) (interface{}, error) {
		if ev, ok := data.(SentOutEvent); ok {
			t.OnSentOut(ev.Creature)
		}
		return data, nil
	})
	hc.Register(hook.ParticipantCaptured, 0, hookName, func(ctx context.Context, _ string, data interface{}) (interface{}, error) {
		if ev, ok := data.(CaptureEvent); ok {
			t.OnCaptured(ctx, ev.Creature)
		}
		return data, nil
	})
	hc.Register(hook.BattleVictory, 0, hookName, func(ctx context.Context, _ string, data interface{}) (interface{}, error) {
		if ev, ok := data.(VictoryEvent); ok {
			t.OnVictory(ctx, ev.BattleID, ev.Winners)
		}
		return data, nil
	})
	hc.Register(hook.BattleFled, 0, hookName, func(ctx context.Context, _ string, data interface{}) (interface{}, error) {
		if ev, ok := data.(FleeEvent); ok {
			t.OnFled(ctx, ev.BattleID, ev.Actor)
		}
		return data, nil
	})
	hc.Register(hook.ParticipantFainted, 0, hookName, func(ctx context.Context, _ string, data interface{}) (interface{}, error) {
		if ev, ok := data.(FaintEvent); ok {
			t.OnFainted(ev.BattleID, ev.Creature)
		}
		return data, nil
	})
}
