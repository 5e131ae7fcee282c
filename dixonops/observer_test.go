package dixonops

// Copyright (c) 2025 Colin McRae

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/predrag3141/dixon/conf"
)

// recordingObserver collects events for inspection. Emit can be called
// concurrently by the sampling workers.
type recordingObserver struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingObserver) Emit(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) countOf(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, event := range r.events {
		if event.Kind == kind {
			count++
		}
	}
	return count
}

func TestObserverSeesProgress(t *testing.T) {
	observer := &recordingObserver{}
	params := conf.DefaultParams()

	factors, err := FactorizeWithParams(big.NewInt(13195), &params, observer)
	require.NoError(t, err)
	require.Len(t, factors, 4)

	// Splitting 13195 into four primes requires at least one divisor per
	// split, and every divisor follows an extracted congruence built from
	// collected relations.
	require.Greater(t, observer.countOf(RelationAccepted), 0)
	require.Greater(t, observer.countOf(CollectionFinished), 0)
	require.Greater(t, observer.countOf(CongruenceExtracted), 0)
	require.GreaterOrEqual(t, observer.countOf(DivisorFound), 1)
}

func TestNilObserverIsDisabled(t *testing.T) {
	// emit on a nil observer must be a no-op, not a panic.
	emit(nil, Event{Kind: DivisorFound, Divisor: big.NewInt(3)})

	factors, err := FactorizeWithParams(big.NewInt(77), nil, nil)
	require.NoError(t, err)
	require.Len(t, factors, 2)
}

func TestLogObserverHandlesAllKinds(t *testing.T) {
	kinds := []EventKind{
		RelationAccepted, CollectionFinished, DependencyFound,
		CongruenceExtracted, DivisorFound, TrivialCongruence, BoundEscalated,
		EventKind(99),
	}
	observer := LogObserver{}
	for _, kind := range kinds {
		require.NotEqual(t, "", kind.String())
		observer.Emit(Event{
			Kind:    kind,
			Residue: big.NewInt(77),
			Z:       big.NewInt(10),
			X:       big.NewInt(3),
			Y:       big.NewInt(4),
			Divisor: big.NewInt(7),
			Bound:   30,
		})
	}
}
