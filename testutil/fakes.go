// Package testutil provides fake host-engine implementations shared by
// the battle and reward tests.
package testutil

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kasuganosora/battlerewards/game/item"
	"github.com/kasuganosora/battlerewards/host"
)

// FakePlayer implements host.Player and records everything delivered to
// it. The recorders are safe for concurrent use.
type FakePlayer struct {
	ID         uuid.UUID
	PlayerName string
	Dim        string
	X, Y, Z    int

	// InventoryFull makes InsertStack fail.
	InventoryFull bool

	mu       sync.Mutex
	Inserted []item.Stack
	Dropped  []item.Stack
	Messages []string
}

// NewFakePlayer creates a player in the overworld with an empty inventory.
func NewFakePlayer(name string) *FakePlayer {
	return &FakePlayer{
		ID:         uuid.New(),
		PlayerName: name,
		Dim:        "minecraft:overworld",
	}
}

func (p *FakePlayer) UUID() uuid.UUID          { return p.ID }
func (p *FakePlayer) Name() string             { return p.PlayerName }
func (p *FakePlayer) Dimension() string        { return p.Dim }
func (p *FakePlayer) Position() (int, int, int) { return p.X, p.Y, p.Z }

func (p *FakePlayer) InsertStack(s item.Stack) bool {
	if p.InventoryFull || s.Empty() {
		return false
	}
	p.mu.Lock()
	p.Inserted = append(p.Inserted, s)
	p.mu.Unlock()
	return true
}

func (p *FakePlayer) DropStack(s item.Stack) {
	p.mu.Lock()
	p.Dropped = append(p.Dropped, s)
	p.mu.Unlock()
}

func (p *FakePlayer) SendMessage(text string) {
	p.mu.Lock()
	p.Messages = append(p.Messages, text)
	p.mu.Unlock()
}

// FakeCreature implements host.Creature.
type FakeCreature struct {
	ID          uuid.UUID
	SpeciesName string
	Lvl         int
	Health      int
	Owner       host.Player
	NPC         bool

	Props    map[string]string
	PropsErr error
}

// NewFakeCreature creates a healthy wild creature of the given species.
func NewFakeCreature(species string, level int) *FakeCreature {
	return &FakeCreature{
		ID:          uuid.New(),
		SpeciesName: species,
		Lvl:         level,
		Health:      10,
		Props:       map[string]string{"species": species},
	}
}

func (c *FakeCreature) UUID() uuid.UUID         { return c.ID }
func (c *FakeCreature) Species() string         { return c.SpeciesName }
func (c *FakeCreature) Level() int              { return c.Lvl }
func (c *FakeCreature) CurrentHealth() int      { return c.Health }
func (c *FakeCreature) OwnerPlayer() host.Player { return c.Owner }
func (c *FakeCreature) NPCOwned() bool          { return c.NPC }

func (c *FakeCreature) Properties() (map[string]string, error) {
	if c.PropsErr != nil {
		return nil, c.PropsErr
	}
	return c.Props, nil
}

// FakeExecutor implements host.CommandExecutor and records commands.
// Safe for concurrent use.
type FakeExecutor struct {
	mu       sync.Mutex
	Commands []string
	Err      error
}

func (e *FakeExecutor) Execute(cmd string, _ host.Player) error {
	if e.Err != nil {
		return e.Err
	}
	e.mu.Lock()
	e.Commands = append(e.Commands, cmd)
	e.mu.Unlock()
	return nil
}

// CommandCount returns how many commands executed so far.
func (e *FakeExecutor) CommandCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Commands)
}

// FakeParty implements host.PartyStore.
type FakeParty map[uuid.UUID]host.Creature

func (p FakeParty) FirstCreature(player uuid.UUID) (host.Creature, bool) {
	c, ok := p[player]
	return c, ok
}
