// Package directory filters, ranks and registers businesses on top of the
// business store.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"communityconnect.org/directorydb"
	"communityconnect.org/internal/geo"
	"communityconnect.org/internal/logging"
)

const (
	// DefaultRating is given to every newly registered business.
	DefaultRating = 4.5
	// DefaultStripSize is the number of businesses in the featured and
	// nearby strips when no limit is requested.
	DefaultStripSize = 3
	// MaxLimit caps any requested strip size.
	MaxLimit = 100
)

// ErrNotFound is returned when a business does not exist.
var ErrNotFound = errors.New("business not found")

// Store is the persistence the Manager needs. *directorydb.Client
// implements it.
type Store interface {
	ListBusinesses(ctx context.Context) ([]directorydb.Business, error)
	ListBusinessesWithinBounds(ctx context.Context, bounds geo.Bounds) ([]directorydb.Business, error)
	GetBusiness(ctx context.Context, id int64) (directorydb.Business, error)
	InsertBusiness(ctx context.Context, b directorydb.Business) (directorydb.Business, error)
}

// Listing is a business as presented to a browser: the stored record plus
// its distance and compass direction from the reference point, when known.
type Listing struct {
	directorydb.Business
	DistanceKm *float64
	Direction  string
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	// Search matches a case-insensitive substring of the name or category.
	Search string
	// Category must equal the business category exactly.
	Category string
	// Reference, when set, orders the result by distance from it.
	Reference *geo.Coordinate
}

func (f Filter) matches(b directorydb.Business) bool {
	if f.Category != "" && b.Category != f.Category {
		return false
	}
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(b.Name), q) ||
		strings.Contains(strings.ToLower(b.Category), q)
}

// NearbyQuery describes a proximity search.
type NearbyQuery struct {
	// Reference defaults to the manager's configured location.
	Reference *geo.Coordinate
	// RadiusKm drops businesses farther away than this. Zero means no limit.
	RadiusKm float64
	// Limit defaults to DefaultStripSize and is capped at MaxLimit.
	Limit int
}

// Manager serves directory queries. It is safe for concurrent use.
type Manager struct {
	store           Store
	defaultLocation geo.Coordinate
	logger          *slog.Logger
}

// NewManager returns a Manager over store. defaultLocation is the reference
// point used by Nearby when the caller does not supply one.
func NewManager(store Store, defaultLocation geo.Coordinate, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:           store,
		defaultLocation: defaultLocation,
		logger:          logger.With(slog.String("component", "directory")),
	}
}

// DefaultLocation returns the configured reference point.
func (m *Manager) DefaultLocation() geo.Coordinate {
	return m.defaultLocation
}

// List returns the businesses matching f in id order, or nearest first when
// f.Reference is set.
func (m *Manager) List(ctx context.Context, f Filter) ([]Listing, error) {
	all, err := m.store.ListBusinesses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}

	matched := make([]directorydb.Business, 0, len(all))
	for _, b := range all {
		if f.matches(b) {
			matched = append(matched, b)
		}
	}

	listings, err := m.rank(ctx, f.Reference, matched)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	return listings, nil
}

// Get returns a single business without distance information.
func (m *Manager) Get(ctx context.Context, id int64) (Listing, error) {
	b, err := m.store.GetBusiness(ctx, id)
	if errors.Is(err, directorydb.ErrNotFound) {
		return Listing{}, ErrNotFound
	}
	if err != nil {
		return Listing{}, fmt.Errorf("get business %d: %w", id, err)
	}
	return Listing{Business: b}, nil
}

// Create validates nb and stores it with the default rating and no reviews.
// Invalid input is reported as a *ValidationError.
func (m *Manager) Create(ctx context.Context, nb NewBusiness) (Listing, error) {
	b, err := nb.toBusiness()
	if err != nil {
		return Listing{}, err
	}
	b.CreatedAt = time.Now().UTC()

	stored, err := m.store.InsertBusiness(ctx, b)
	if err != nil {
		return Listing{}, fmt.Errorf("create business: %w", err)
	}

	logging.LogOperation(logging.FromContext(ctx), "business_created",
		slog.Int64("business_id", stored.ID),
		slog.String("category", stored.Category),
		slog.Bool("located", stored.Latitude != nil))

	return Listing{Business: stored}, nil
}

// Nearby returns located businesses nearest first, at most q.Limit of them.
func (m *Manager) Nearby(ctx context.Context, q NearbyQuery) ([]Listing, error) {
	ref := m.defaultLocation
	if q.Reference != nil {
		ref = *q.Reference
	}
	limit := clampLimit(q.Limit)

	var (
		candidates []directorydb.Business
		err        error
	)
	if q.RadiusKm > 0 {
		candidates, err = m.store.ListBusinessesWithinBounds(ctx, geo.BoundsAround(ref, q.RadiusKm))
	} else {
		candidates, err = m.store.ListBusinesses(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("nearby businesses: %w", err)
	}

	listings, err := m.rank(ctx, &ref, candidates)
	if err != nil {
		return nil, fmt.Errorf("nearby businesses: %w", err)
	}

	nearby := make([]Listing, 0, min(limit, len(listings)))
	for _, l := range listings {
		// Listings are sorted nearest first with unlocated ones at the end.
		if l.DistanceKm == nil || (q.RadiusKm > 0 && *l.DistanceKm > q.RadiusKm) {
			break
		}
		nearby = append(nearby, l)
		if len(nearby) == limit {
			break
		}
	}
	return nearby, nil
}

// Featured returns the first limit businesses in id order.
func (m *Manager) Featured(ctx context.Context, limit int) ([]Listing, error) {
	all, err := m.store.ListBusinesses(ctx)
	if err != nil {
		return nil, fmt.Errorf("featured businesses: %w", err)
	}

	n := min(clampLimit(limit), len(all))
	featured := make([]Listing, n)
	for i := range featured {
		featured[i] = Listing{Business: all[i]}
	}
	return featured, nil
}

// Categories returns the category catalog.
func (m *Manager) Categories() []Category {
	return Categories()
}

func (m *Manager) rank(ctx context.Context, ref *geo.Coordinate, businesses []directorydb.Business) ([]Listing, error) {
	ranked, err := geo.RankByProximity(ref, businesses)
	if err != nil {
		return nil, err
	}

	listings := make([]Listing, len(ranked))
	for i, r := range ranked {
		if r.Err != nil {
			m.logger.WarnContext(ctx, "business has an invalid coordinate",
				slog.Int64("business_id", r.Entity.ID),
				slog.String("error", r.Err.Error()))
		}

		l := Listing{Business: r.Entity, DistanceKm: r.DistanceKm}
		if r.Located() {
			loc, _ := r.Entity.Coordinate()
			l.Direction = geo.CompassDirection(*ref, loc)
		}
		listings[i] = l
	}
	return listings, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultStripSize
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
