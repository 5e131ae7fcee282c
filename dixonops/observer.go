package dixonops

// Copyright (c) 2025 Colin McRae

import (
	"math/big"

	jww "github.com/spf13/jwalterweatherman"
)

// EventKind labels the stages of a factorization that emit events.
type EventKind int

const (
	RelationAccepted EventKind = iota
	CollectionFinished
	DependencyFound
	CongruenceExtracted
	DivisorFound
	TrivialCongruence
	BoundEscalated
)

func (k EventKind) String() string {
	switch k {
	case RelationAccepted:
		return "relation accepted"
	case CollectionFinished:
		return "collection finished"
	case DependencyFound:
		return "dependency found"
	case CongruenceExtracted:
		return "congruence extracted"
	case DivisorFound:
		return "divisor found"
	case TrivialCongruence:
		return "trivial congruence"
	case BoundEscalated:
		return "bound escalated"
	default:
		return "unknown event"
	}
}

// An Event is one observation of the factorizer's progress on a residue.
// Only the fields relevant to its Kind are set.
type Event struct {
	Kind      EventKind
	Residue   *big.Int
	Z         *big.Int // RelationAccepted
	Relations int      // RelationAccepted, CollectionFinished
	Selection []int    // DependencyFound
	X, Y      *big.Int // CongruenceExtracted
	Divisor   *big.Int // DivisorFound
	Bound     uint32   // BoundEscalated
}

// An Observer receives events as they happen. Observers are optional: the
// factorizer treats a nil Observer as disabled, and no observer ever
// affects control flow. Emit may be called concurrently from the relation
// samplers.
type Observer interface {
	Emit(event Event)
}

// A LogObserver writes events through jwalterweatherman at DEBUG level.
type LogObserver struct{}

func (LogObserver) Emit(event Event) {
	switch event.Kind {
	case RelationAccepted:
		jww.DEBUG.Printf("residue %v: %s for z = %v (%d held)",
			event.Residue, event.Kind, event.Z, event.Relations)
	case CollectionFinished:
		jww.DEBUG.Printf("residue %v: %s with %d relations",
			event.Residue, event.Kind, event.Relations)
	case DependencyFound:
		jww.DEBUG.Printf("residue %v: %s among rows %v",
			event.Residue, event.Kind, event.Selection)
	case CongruenceExtracted:
		jww.DEBUG.Printf("residue %v: %s, x = %v, y = %v",
			event.Residue, event.Kind, event.X, event.Y)
	case DivisorFound:
		jww.DEBUG.Printf("residue %v: %s, divisor = %v",
			event.Residue, event.Kind, event.Divisor)
	case TrivialCongruence:
		jww.DEBUG.Printf("residue %v: %s", event.Residue, event.Kind)
	case BoundEscalated:
		jww.DEBUG.Printf("residue %v: %s to %d", event.Residue, event.Kind, event.Bound)
	default:
		jww.DEBUG.Printf("residue %v: %s", event.Residue, event.Kind)
	}
}

// emit forwards an event to obs unless observation is disabled.
func emit(obs Observer, event Event) {
	if obs != nil {
		obs.Emit(event)
	}
}
