package battle

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kasuganosora/battlerewards/game/reward"
	"github.com/kasuganosora/battlerewards/host"
)

// staleAfter is the inactivity window after which the sweep reclaims a
// battle record.
const staleAfter = 30 * time.Minute

// record is one active battle. Owned exclusively by the Tracker and
// mutated only under its mutex.
type record struct {
	mu sync.Mutex

	id     uuid.UUID
	actors []Actor
	kind   Kind

	playerSubject   reward.Snapshot
	opponentSubject reward.Snapshot

	resolved bool
	captured bool

	winners    []uuid.UUID
	forfeiters []uuid.UUID

	lastActivity time.Time
}

// TrackerConfig configures a Tracker.
type TrackerConfig struct {
	Engine *reward.Engine
	Logger *zap.Logger
	Now    func() time.Time // injectable for testing
}

// Tracker follows battles from start to resolution. The battle map and
// the participant index are independently synchronized so event handling
// never serializes behind the periodic sweep.
type Tracker struct {
	battles sync.Map // uuid.UUID → *record
	index   sync.Map // participant uuid.UUID → battle uuid.UUID

	engine *reward.Engine
	logger *zap.Logger
	now    func() time.Time
}

// NewTracker creates a Tracker.
func NewTracker(cfg TrackerConfig) *Tracker {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Tracker{engine: cfg.Engine, logger: cfg.Logger, now: cfg.Now}
}

func (t *Tracker) load(battleID uuid.UUID) *record {
	v, ok := t.battles.Load(battleID)
	if !ok {
		return nil
	}
	return v.(*record)
}

// OnBattleStartedPre creates the battle record from the initial
// participant snapshots, before full actor data is available.
func (t *Tracker) OnBattleStartedPre(battleID uuid.UUID, actors []Actor) {
	r := &record{id: battleID, lastActivity: t.now()}
	for _, a := range actors {
		c := a.lead()
		if c == nil {
			continue
		}
		snap := reward.NewSnapshot(c, t.logger)
		if a.Type == ActorPlayer {
			r.playerSubject = snap
		} else {
			r.opponentSubject = snap
		}
	}
	t.battles.Store(battleID, r)
}

// OnBattleStartedPost installs the finalized actor list, classifies the
// battle, and registers every participant in the reverse index.
func (t *Tracker) OnBattleStartedPost(battleID uuid.UUID, actors []Actor) {
	r := t.load(battleID)
	if r == nil {
		return
	}
	r.mu.Lock()
	r.actors = actors
	r.kind = classify(actors)
	t.refreshSubjectsLocked(r)
	r.lastActivity = t.now()
	kind := r.kind
	r.mu.Unlock()

	for _, a := range actors {
		for _, c := range a.Creatures {
			t.index.Store(c.UUID(), battleID)
		}
	}
	t.logger.Debug("battle started",
		zap.String("battle", battleID.String()),
		zap.String("kind", kind.String()))
}

// OnSentOut re-snapshots the side whose active creature changed. The
// battle is resolved through the participant index since the event
// carries no battle handle.
func (t *Tracker) OnSentOut(c host.Creature) {
	battleID, ok := t.lookup(c.UUID())
	if !ok {
		return
	}
	r := t.load(battleID)
	if r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// The battle may have retired between load and lock; storing the
	// index entry then would leak it forever.
	if r.resolved {
		return
	}
	t.index.Store(c.UUID(), battleID)

	snap := reward.NewSnapshot(c, t.logger)
	if c.OwnerPlayer() != nil {
		r.playerSubject = snap
	} else {
		r.opponentSubject = snap
		if c.NPCOwned() && r.kind != KindPvP {
			r.kind = KindNPC
		}
	}
	r.lastActivity = t.now()
}

// OnCaptured resolves the creature's battle as a capture. Capture takes
// precedence over victory: the record is marked resolved here, so a
// later-arriving victory event for the same battle is a no-op.
func (t *Tracker) OnCaptured(ctx context.Context, c host.Creature) {
	battleID, ok := t.lookup(c.UUID())
	if !ok {
		return
	}
	r := t.load(battleID)
	if r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resolved {
		return
	}
	if r.opponentSubject.SourceID != c.UUID() {
		r.opponentSubject = reward.NewSnapshot(c, t.logger)
	}
	r.captured = true
	r.resolved = true

	t.logger.Debug("creature captured", zap.String("battle", battleID.String()),
		zap.String("species", r.opponentSubject.Species))

	if player := firstPlayer(r.actors); player != nil {
		t.engine.Grant(ctx, player, r.opponentSubject, r.kind.String(), reward.TriggerCaptured)
	}
	t.retireLocked(r)
}

// OnVictory attributes the terminal outcome to every human participant:
// winners get BattleWon against the losing side's snapshot, losers get
// BattleForfeit while they still have a conscious creature, BattleLost
// otherwise. No-op when the battle was already captured or resolved.
func (t *Tracker) OnVictory(ctx context.Context, battleID uuid.UUID, winners []uuid.UUID) {
	r := t.load(battleID)
	if r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.captured || r.resolved {
		return
	}
	r.resolved = true

	winnerSet := make(map[uuid.UUID]bool, len(winners))
	for _, id := range winners {
		winnerSet[id] = true
	}

	var playerActors []Actor
	for _, a := range r.actors {
		if a.Type == ActorPlayer {
			playerActors = append(playerActors, a)
		}
	}

	for _, a := range playerActors {
		if !winnerSet[a.ID] || a.Player == nil {
			continue
		}
		// The outcome subject is the defeated side: the losing
		// player's creature in PvP, the already-tracked opponent
		// otherwise.
		subject := r.opponentSubject
		for _, loser := range playerActors {
			if !winnerSet[loser.ID] {
				if c := loser.lead(); c != nil {
					subject = reward.NewSnapshot(c, t.logger)
					r.opponentSubject = subject
				}
				break
			}
		}
		r.winners = append(r.winners, a.ID)
		t.engine.Grant(ctx, a.Player, subject, r.kind.String(), reward.TriggerBattleWon)
	}

	for _, a := range playerActors {
		if winnerSet[a.ID] || a.Player == nil {
			continue
		}
		subject := r.opponentSubject
		for _, winner := range playerActors {
			if winnerSet[winner.ID] {
				if c := winner.lead(); c != nil {
					subject = reward.NewSnapshot(c, t.logger)
					r.opponentSubject = subject
				}
				break
			}
		}
		if a.hasConsciousCreature() {
			r.forfeiters = append(r.forfeiters, a.ID)
			t.engine.Grant(ctx, a.Player, subject, r.kind.String(), reward.TriggerBattleForfeit)
		} else {
			t.engine.Grant(ctx, a.Player, subject, r.kind.String(), reward.TriggerBattleLost)
		}
	}

	t.logger.Debug("battle finalized",
		zap.String("battle", battleID.String()),
		zap.String("kind", r.kind.String()))
	t.retireLocked(r)
}

// OnFled resolves the battle with the fleeing actor forfeiting. In PvP
// the remaining players count the flight as their win.
func (t *Tracker) OnFled(ctx context.Context, battleID uuid.UUID, fleeingActor uuid.UUID) {
	r := t.load(battleID)
	if r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.captured || r.resolved {
		return
	}
	r.resolved = true

	for _, a := range r.actors {
		if a.Type != ActorPlayer || a.Player == nil {
			continue
		}
		if a.ID == fleeingActor {
			r.forfeiters = append(r.forfeiters, a.ID)
			t.engine.Grant(ctx, a.Player, r.opponentSubject, r.kind.String(), reward.TriggerBattleForfeit)
		} else if r.kind == KindPvP {
			r.winners = append(r.winners, a.ID)
			t.engine.Grant(ctx, a.Player, r.opponentSubject, r.kind.String(), reward.TriggerBattleWon)
		}
	}
	t.retireLocked(r)
}

// OnFainted is observed for logging only; fainting has no reward effect.
func (t *Tracker) OnFainted(battleID uuid.UUID, c host.Creature) {
	if t.load(battleID) == nil {
		return
	}
	t.logger.Debug("creature fainted",
		zap.String("battle", battleID.String()),
		zap.String("species", c.Species()))
}

// Sweep reclaims every resolved record and every record with no activity
// for the staleness window, removing participant-index entries with it.
// Safe to run concurrently with event handlers.
func (t *Tracker) Sweep() {
	now := t.now()
	t.battles.Range(func(k, v interface{}) bool {
		r := v.(*record)
		r.mu.Lock()
		if r.resolved || now.Sub(r.lastActivity) > staleAfter {
			t.retireLocked(r)
		}
		r.mu.Unlock()
		return true
	})
}

// ActiveCount returns the number of tracked battles.
func (t *Tracker) ActiveCount() int {
	n := 0
	t.battles.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

// lookup resolves a participant to its battle.
func (t *Tracker) lookup(participant uuid.UUID) (uuid.UUID, bool) {
	v, ok := t.index.Load(participant)
	if !ok {
		return uuid.Nil, false
	}
	return v.(uuid.UUID), true
}

// retireLocked removes the record's participant-index entries and then
// the record itself, so no lookup can reach a retired battle. The record
// is marked resolved so a handler still holding the pointer stays
// inert. Caller holds r.mu.
func (t *Tracker) retireLocked(r *record) {
	r.resolved = true
	for _, a := range r.actors {
		for _, c := range a.Creatures {
			t.index.Delete(c.UUID())
		}
	}
	t.battles.Delete(r.id)
}

// refreshSubjectsLocked re-snapshots both sides from the current actor
// leads and applies the Wild→NPC upgrade. Caller holds r.mu.
func (t *Tracker) refreshSubjectsLocked(r *record) {
	for _, a := range r.actors {
		c := a.lead()
		if c == nil {
			continue
		}
		snap := reward.NewSnapshot(c, t.logger)
		if a.Type == ActorPlayer {
			r.playerSubject = snap
		} else {
			r.opponentSubject = snap
			if c.NPCOwned() && r.kind != KindPvP {
				r.kind = KindNPC
			}
		}
	}
}

// firstPlayer returns the first human participant's player handle.
func firstPlayer(actors []Actor) host.Player {
	for _, a := range actors {
		if a.Type == ActorPlayer && a.Player != nil {
			return a.Player
		}
	}
	return nil
}
