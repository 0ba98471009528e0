package reward

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kasuganosora/battlerewards/cache"
)

// Ledger tracks, per player and reward identity, when a reward was last
// granted. Entries live in the cache store with a TTL equal to the
// reward's cooldown, so an expired entry and a missing entry mean the
// same thing: the player is eligible again.
type Ledger struct {
	store  cache.Store
	now    func() time.Time
	logger *zap.Logger
}

// NewLedger creates a Ledger on top of a cache store.
func NewLedger(store cache.Store, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{store: store, now: time.Now, logger: logger}
}

func ledgerKey(player uuid.UUID, rewardID string) string {
	return "cooldown:" + player.String() + ":" + rewardID
}

// Remaining returns how long the player must still wait before the
// reward identity may be granted again, or zero when eligible. Store
// errors degrade to eligible.
func (l *Ledger) Remaining(ctx context.Context, player uuid.UUID, rewardID string, cooldown time.Duration) time.Duration {
	if cooldown <= 0 {
		return 0
	}
	v, err := l.store.Get(ctx, ledgerKey(player, rewardID))
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			l.logger.Debug("cooldown lookup failed", zap.String("reward", rewardID), zap.Error(err))
		}
		return 0
	}
	lastMillis, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	elapsed := l.now().Sub(time.UnixMilli(lastMillis))
	if rem := cooldown - elapsed; rem > 0 {
		return rem
	}
	return 0
}

// Stamp records a successful grant at the current time.
func (l *Ledger) Stamp(ctx context.Context, player uuid.UUID, rewardID string, cooldown time.Duration) {
	millis := strconv.FormatInt(l.now().UnixMilli(), 10)
	if err := l.store.Set(ctx, ledgerKey(player, rewardID), millis, cooldown); err != nil {
		l.logger.Warn("cooldown stamp failed", zap.String("reward", rewardID), zap.Error(err))
	}
}
