package reward

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasuganosora/battlerewards/cache/local"
)

func newTestLedger(t *testing.T) (*Ledger, *time.Time) {
	t.Helper()
	store, err := local.New(local.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	now := time.Now().Truncate(time.Millisecond)
	l := NewLedger(store, nil)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLedger_NoStampMeansEligible(t *testing.T) {
	l, _ := newTestLedger(t)
	rem := l.Remaining(context.Background(), uuid.New(), "item_abc", 300*time.Second)
	assert.Zero(t, rem)
}

func TestLedger_RemainingAfterStamp(t *testing.T) {
	l, now := newTestLedger(t)
	player := uuid.New()

	l.Stamp(context.Background(), player, "item_abc", 300*time.Second)

	*now = now.Add(40 * time.Second)
	rem := l.Remaining(context.Background(), player, "item_abc", 300*time.Second)
	assert.Equal(t, 260*time.Second, rem)
}

func TestLedger_ExpiresAfterCooldown(t *testing.T) {
	l, now := newTestLedger(t)
	player := uuid.New()

	l.Stamp(context.Background(), player, "item_abc", 300*time.Second)
	*now = now.Add(301 * time.Second)
	assert.Zero(t, l.Remaining(context.Background(), player, "item_abc", 300*time.Second))
}

func TestLedger_ZeroCooldownNeverBlocks(t *testing.T) {
	l, _ := newTestLedger(t)
	player := uuid.New()
	l.Stamp(context.Background(), player, "cmd_xyz", 0)
	assert.Zero(t, l.Remaining(context.Background(), player, "cmd_xyz", 0))
}

func TestLedger_SlotsAreIndependent(t *testing.T) {
	l, _ := newTestLedger(t)
	alice, bob := uuid.New(), uuid.New()

	l.Stamp(context.Background(), alice, "item_abc", time.Minute)
	assert.NotZero(t, l.Remaining(context.Background(), alice, "item_abc", time.Minute))
	assert.Zero(t, l.Remaining(context.Background(), bob, "item_abc", time.Minute),
		"cooldowns are per player")
	assert.Zero(t, l.Remaining(context.Background(), alice, "item_other", time.Minute),
		"cooldowns are per reward identity")
}

func TestRuleIdentity_SharedByTypeAndMessage(t *testing.T) {
	a := Rule{Name: "a", Type: TypeCommand, Message: "same"}
	b := Rule{Name: "b", Type: TypeCommand, Message: "same"}
	c := Rule{Name: "c", Type: TypeItem, Message: "same"}

	assert.Equal(t, a.Identity(), b.Identity(),
		"rules with identical type+message share one cooldown slot")
	assert.NotEqual(t, a.Identity(), c.Identity())
}
