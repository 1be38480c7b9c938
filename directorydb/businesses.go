package directorydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"communityconnect.org/internal/geo"
)

// ErrNotFound is returned when no business matches the requested id.
var ErrNotFound = errors.New("business not found")

// Business is a row of the businesses table
type Business struct {
	ID          int64
	Name        string
	Category    string
	Location    string // free-form street address
	Description string
	Phone       string
	WhatsApp    string
	Hours       string
	Image       *string
	Rating      float64
	ReviewCount int
	Latitude    *float64
	Longitude   *float64
	CreatedAt   time.Time
}

// Coordinate implements geo.Locatable. A business with only one of latitude
// and longitude set is unlocated.
func (b Business) Coordinate() (geo.Coordinate, bool) {
	return geo.FromOptional(b.Latitude, b.Longitude)
}

const businessColumns = `id, name, category, location, description, phone, whatsapp, hours,
	image, rating, review_count, latitude, longitude, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBusiness(row rowScanner) (Business, error) {
	var (
		b        Business
		image    sql.NullString
		lat, lon sql.NullFloat64
	)
	err := row.Scan(
		&b.ID, &b.Name, &b.Category, &b.Location, &b.Description, &b.Phone, &b.WhatsApp, &b.Hours,
		&image, &b.Rating, &b.ReviewCount, &lat, &lon, &b.CreatedAt,
	)
	if err != nil {
		return Business{}, err
	}
	if image.Valid {
		b.Image = &image.String
	}
	if lat.Valid {
		b.Latitude = &lat.Float64
	}
	if lon.Valid {
		b.Longitude = &lon.Float64
	}
	return b, nil
}

func collectBusinesses(rows *sql.Rows) ([]Business, error) {
	businesses := []Business{}
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning business: %w", err)
		}
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating businesses: %w", err)
	}
	return businesses, nil
}

// ListBusinesses returns every business ordered by id.
func (c *Client) ListBusinesses(ctx context.Context) ([]Business, error) {
	rows, err := c.DB.QueryContext(ctx, `SELECT `+businessColumns+` FROM businesses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing businesses: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	return collectBusinesses(rows)
}

// ListBusinessesWithinBounds returns located businesses inside the box,
// ordered by id.
func (c *Client) ListBusinessesWithinBounds(ctx context.Context, bounds geo.Bounds) ([]Business, error) {
	query := c.q(`SELECT ` + businessColumns + ` FROM businesses
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		AND latitude BETWEEN ? AND ?
		AND longitude BETWEEN ? AND ?
		ORDER BY id`)

	rows, err := c.DB.QueryContext(ctx, query, bounds.MinLat, bounds.MaxLat, bounds.MinLon, bounds.MaxLon)
	if err != nil {
		return nil, fmt.Errorf("error listing businesses within bounds: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	return collectBusinesses(rows)
}

// GetBusiness returns the business with the given id, or ErrNotFound.
func (c *Client) GetBusiness(ctx context.Context, id int64) (Business, error) {
	row := c.DB.QueryRowContext(ctx, c.q(`SELECT `+businessColumns+` FROM businesses WHERE id = ?`), id)
	b, err := scanBusiness(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Business{}, ErrNotFound
	}
	if err != nil {
		return Business{}, fmt.Errorf("error fetching business %d: %w", id, err)
	}
	return b, nil
}

// InsertBusiness stores b and returns it with the id assigned by the
// database. The id of the argument is ignored; CreatedAt defaults to now.
func (c *Client) InsertBusiness(ctx context.Context, b Business) (Business, error) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	query := c.q(`INSERT INTO businesses (
			name, category, location, description, phone, whatsapp, hours,
			image, rating, review_count, latitude, longitude, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := c.DB.QueryRowContext(ctx, query,
		b.Name, b.Category, b.Location, b.Description, b.Phone, b.WhatsApp, b.Hours,
		b.Image, b.Rating, b.ReviewCount, b.Latitude, b.Longitude, b.CreatedAt,
	).Scan(&b.ID)
	if err != nil {
		return Business{}, fmt.Errorf("error inserting business: %w", err)
	}
	return b, nil
}

// CountBusinesses returns the number of stored businesses.
func (c *Client) CountBusinesses(ctx context.Context) (int, error) {
	var n int
	if err := c.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM businesses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting businesses: %w", err)
	}
	return n, nil
}
