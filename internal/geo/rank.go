package geo

import (
	"cmp"
	"fmt"
	"slices"
)

// Locatable is implemented by records that may carry a coordinate.
// The boolean is false when the record has no usable location.
type Locatable interface {
	Coordinate() (Coordinate, bool)
}

// Ranked pairs an entity with its distance from the reference point.
// DistanceKm is nil when the entity is unlocated, when no reference was
// given, or when the entity's coordinate was invalid (Err is set then).
type Ranked[T any] struct {
	Entity     T
	DistanceKm *float64
	Err        error
}

// Located reports whether a distance was computed for the entry.
func (r Ranked[T]) Located() bool {
	return r.DistanceKm != nil
}

type rankConfig struct {
	abortOnInvalid bool
}

// RankOption tunes RankByProximity.
type RankOption func(*rankConfig)

// AbortOnInvalid makes RankByProximity fail the whole call on the first
// entity with an invalid coordinate instead of ranking it as unlocated.
func AbortOnInvalid() RankOption {
	return func(c *rankConfig) {
		c.abortOnInvalid = true
	}
}

// RankByProximity computes the distance from reference to every located
// entity and orders the result nearest first. Entities without a distance
// follow all located ones in their original relative order, and equal
// distances keep input order.
//
// A nil reference returns the entities in input order with no distances.
// An invalid reference fails the call with ErrInvalidCoordinate.
func RankByProximity[T Locatable](reference *Coordinate, entities []T, opts ...RankOption) ([]Ranked[T], error) {
	var cfg rankConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	ranked := make([]Ranked[T], len(entities))
	for i, e := range entities {
		ranked[i] = Ranked[T]{Entity: e}
	}

	if reference == nil {
		return ranked, nil
	}

	ref := *reference
	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("rank by proximity: reference: %w", err)
	}

	for i := range ranked {
		loc, ok := ranked[i].Entity.Coordinate()
		if !ok {
			continue
		}

		d, err := HaversineDistanceKm(ref, loc)
		if err != nil {
			if cfg.abortOnInvalid {
				return nil, fmt.Errorf("rank by proximity: entity %d: %w", i, err)
			}
			ranked[i].Err = err
			continue
		}
		ranked[i].DistanceKm = &d
	}

	slices.SortStableFunc(ranked, compareRanked[T])
	return ranked, nil
}

func compareRanked[T any](a, b Ranked[T]) int {
	switch {
	case a.DistanceKm == nil && b.DistanceKm == nil:
		return 0
	case a.DistanceKm == nil:
		return 1
	case b.DistanceKm == nil:
		return -1
	}
	return cmp.Compare(*a.DistanceKm, *b.DistanceKm)
}
