// Package battle tracks in-progress battles from start to resolution and
// attributes terminal outcomes to the reward engine.
package battle

import (
	"github.com/google/uuid"

	"github.com/kasuganosora/battlerewards/host"
)

// Kind classifies an encounter.
type Kind int

const (
	KindWild Kind = iota
	KindNPC
	KindPvP
)

func (k Kind) String() string {
	switch k {
	case KindNPC:
		return "npc"
	case KindPvP:
		return "pvp"
	default:
		return "wild"
	}
}

// ActorType identifies who controls a battle participant.
type ActorType int

const (
	ActorPlayer ActorType = iota
	ActorWild
	ActorNPC
)

// Actor is one side of a battle: a controller plus its creatures.
// Player is non-nil only for ActorPlayer actors.
type Actor struct {
	ID        uuid.UUID
	Type      ActorType
	Player    host.Player
	Creatures []host.Creature
}

// lead returns the actor's first creature, or nil.
func (a Actor) lead() host.Creature {
	if len(a.Creatures) == 0 {
		return nil
	}
	return a.Creatures[0]
}

// hasConsciousCreature reports whether any of the actor's creatures can
// still fight. Distinguishes a forfeit from a loss.
func (a Actor) hasConsciousCreature() bool {
	for _, c := range a.Creatures {
		if c.CurrentHealth() > 0 {
			return true
		}
	}
	return false
}

// classify decides the battle kind from the finalized actor list: PvP if
// more than one human, otherwise NPC when an NPC controls or owns a
// participant, otherwise Wild.
func classify(actors []Actor) Kind {
	players := 0
	for _, a := range actors {
		if a.Type == ActorPlayer {
			players++
		}
	}
	if players > 1 {
		return KindPvP
	}
	for _, a := range actors {
		if a.Type == ActorWild {
			return KindWild
		}
	}
	for _, a := range actors {
		if a.Type == ActorNPC {
			return KindNPC
		}
		if a.Type != ActorPlayer {
			for _, c := range a.Creatures {
				if c.NPCOwned() {
					return KindNPC
				}
			}
		}
	}
	return KindWild
}
