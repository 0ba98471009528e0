// Package host defines the boundary to the game engine the plugin runs
// inside. The core never talks to engine internals directly; it receives
// these interfaces at construction time, and tests substitute fakes.
package host

import (
	"github.com/google/uuid"

	"github.com/kasuganosora/battlerewards/game/item"
)

// Player is a connected human player.
type Player interface {
	UUID() uuid.UUID
	Name() string

	// Dimension returns the identifier of the world the player is
	// currently in, e.g. "minecraft:overworld".
	Dimension() string

	// Position returns the player's block coordinates.
	Position() (x, y, z int)

	// InsertStack tries to put an item stack into the player's
	// inventory. Returns false when the inventory is full.
	InsertStack(stack item.Stack) bool

	// DropStack drops an item stack into the world at the player's feet.
	DropStack(stack item.Stack)

	// SendMessage delivers a formatted rich-text message to the player.
	SendMessage(text string)
}

// Creature is one creature participating in a battle.
type Creature interface {
	UUID() uuid.UUID
	Species() string
	Level() int
	CurrentHealth() int

	// OwnerPlayer returns the owning player, or nil for wild and
	// NPC-owned creatures.
	OwnerPlayer() Player

	// NPCOwned reports whether the creature belongs to an NPC entity.
	NPCOwned() bool

	// Properties extracts the creature's dynamic attribute set
	// (species, level, types, IVs/EVs, form, ...). May fail; callers
	// must fall back to a best-effort default snapshot.
	Properties() (map[string]string, error)
}

// CommandExecutor runs a server command on behalf of a player.
type CommandExecutor interface {
	Execute(command string, player Player) error
}

// PartyStore looks up a player's stored creature party outside of any
// battle. Used by the condition-listing command.
type PartyStore interface {
	FirstCreature(player uuid.UUID) (Creature, bool)
}
