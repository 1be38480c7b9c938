package directorydb

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"communityconnect.org/internal/logging"
)

// BusinessSeed is one entry of a seed file.
type BusinessSeed struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Phone       string    `json:"phone"`
	WhatsApp    string    `json:"whatsapp"`
	Hours       string    `json:"hours"`
	Image       *string   `json:"image"`
	Rating      *float64  `json:"rating"`
	ReviewCount *int      `json:"review_count"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
}

// SeedFromJSON upserts the businesses listed in the JSON file at path and
// returns how many were written. Existing rows with the same id are replaced.
func (c *Client) SeedFromJSON(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("seed businesses: read %q: %w", path, err)
	}

	var seeds []BusinessSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return 0, fmt.Errorf("seed businesses: parse json: %w", err)
	}

	return c.SeedBusinesses(ctx, seeds)
}

// SeedBusinesses upserts seeds inside a single transaction.
func (c *Client) SeedBusinesses(ctx context.Context, seeds []BusinessSeed) (int, error) {
	rows := make([]Business, 0, len(seeds))
	for i, s := range seeds {
		b, err := s.toBusiness()
		if err != nil {
			return 0, fmt.Errorf("seed businesses: entry %d: %w", i+1, err)
		}
		rows = append(rows, b)
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed businesses: begin tx: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "seed_businesses")

	stmt, err := tx.PrepareContext(ctx, c.q(`INSERT INTO businesses (
			id, name, category, location, description, phone, whatsapp, hours,
			image, rating, review_count, latitude, longitude, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			location = excluded.location,
			description = excluded.description,
			phone = excluded.phone,
			whatsapp = excluded.whatsapp,
			hours = excluded.hours,
			image = excluded.image,
			rating = excluded.rating,
			review_count = excluded.review_count,
			latitude = excluded.latitude,
			longitude = excluded.longitude`))
	if err != nil {
		return 0, fmt.Errorf("seed businesses: prepare insert: %w", err)
	}
	defer logging.SafeCloseWithLogging(stmt, c.logger, "seed_businesses_stmt")

	for _, b := range rows {
		_, err := stmt.ExecContext(ctx,
			b.ID, b.Name, b.Category, b.Location, b.Description, b.Phone, b.WhatsApp, b.Hours,
			b.Image, b.Rating, b.ReviewCount, b.Latitude, b.Longitude, b.CreatedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("seed businesses: insert id=%d: %w", b.ID, err)
		}
	}

	// Explicit ids bypass the Postgres sequence; move it past the seeded rows.
	if c.config.Driver == Postgres && len(rows) > 0 {
		_, err := tx.ExecContext(ctx,
			`SELECT setval(pg_get_serial_sequence('businesses', 'id'), (SELECT MAX(id) FROM businesses))`)
		if err != nil {
			return 0, fmt.Errorf("seed businesses: advance id sequence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed businesses: commit tx: %w", err)
	}

	logging.LogOperation(c.logger, "businesses_seeded", slog.Int("count", len(rows)))
	return len(rows), nil
}

func (s BusinessSeed) toBusiness() (Business, error) {
	if s.ID <= 0 {
		return Business{}, fmt.Errorf("invalid id %d", s.ID)
	}
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return Business{}, fmt.Errorf("id=%d: name cannot be empty", s.ID)
	}
	category := strings.TrimSpace(s.Category)
	if category == "" {
		return Business{}, fmt.Errorf("id=%d: category cannot be empty", s.ID)
	}
	if (s.Latitude == nil) != (s.Longitude == nil) {
		return Business{}, fmt.Errorf("id=%d: latitude and longitude must be given together", s.ID)
	}

	b := Business{
		ID:          s.ID,
		Name:        name,
		Category:    category,
		Location:    strings.TrimSpace(s.Location),
		Description: strings.TrimSpace(s.Description),
		Phone:       strings.TrimSpace(s.Phone),
		WhatsApp:    strings.TrimSpace(s.WhatsApp),
		Hours:       strings.TrimSpace(s.Hours),
		Image:       s.Image,
		Rating:      4.5,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		CreatedAt:   s.CreatedAt,
	}
	if s.Rating != nil {
		b.Rating = *s.Rating
	}
	if s.ReviewCount != nil {
		b.ReviewCount = *s.ReviewCount
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	return b, nil
}
