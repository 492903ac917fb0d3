package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/presidentialapts/reservation-api/internal/model"
)

// ApartmentRepo persists apartments.  Public pages browse by slug;
// admin endpoints manage the records by id.
type ApartmentRepo struct {
	db *sql.DB
}

// NewApartmentRepo returns an ApartmentRepo bound to the given database.
func NewApartmentRepo(db *sql.DB) *ApartmentRepo { return &ApartmentRepo{db: db} }

const apartmentColumns = `id, slug, name, description, max_guests, price_per_night, currency,
	is_active, created_at, updated_at`

// List returns apartments ordered by name.  When activeOnly is set,
// inactive apartments are excluded (the public browse case).
func (r *ApartmentRepo) List(ctx context.Context, activeOnly bool) ([]model.Apartment, error) {
	q := `SELECT ` + apartmentColumns + ` FROM apartments`
	if activeOnly {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Apartment, 0)
	for rows.Next() {
		a, err := scanApartment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches an apartment by id; sql.ErrNoRows when unknown.
func (r *ApartmentRepo) GetByID(ctx context.Context, id string) (*model.Apartment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+apartmentColumns+` FROM apartments WHERE id = ? LIMIT 1`, id)
	a, err := scanApartment(row)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetBySlug fetches an apartment by its URL slug; sql.ErrNoRows when unknown.
func (r *ApartmentRepo) GetBySlug(ctx context.Context, slug string) (*model.Apartment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+apartmentColumns+` FROM apartments WHERE slug = ? LIMIT 1`, slug)
	a, err := scanApartment(row)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new apartment, assigning a UUID and timestamps.
// A duplicate slug surfaces as ErrConflict.
func (r *ApartmentRepo) Create(ctx context.Context, a *model.Apartment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	const q = `INSERT INTO apartments
		(id, slug, name, description, max_guests, price_per_night, currency, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		a.ID, a.Slug, a.Name, nullStr(a.Description),
		nullInt(a.MaxGuests), nullFloat(a.PricePerNight), nullStr(a.Currency),
		a.IsActive, now, now)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrConflict
	}
	return err
}

// Update overwrites the mutable fields of an apartment and refreshes
// updated_at.  sql.ErrNoRows is returned when the id is unknown.
func (r *ApartmentRepo) Update(ctx context.Context, a *model.Apartment) error {
	a.UpdatedAt = time.Now().UTC()
	const q = `UPDATE apartments
		SET slug = ?, name = ?, description = ?, max_guests = ?, price_per_night = ?,
		    currency = ?, is_active = ?, updated_at = ?
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q,
		a.Slug, a.Name, nullStr(a.Description),
		nullInt(a.MaxGuests), nullFloat(a.PricePerNight), nullStr(a.Currency),
		a.IsActive, a.UpdatedAt, a.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish a missing row from a no-op update.
		if _, err := r.GetByID(ctx, a.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an apartment.  Idempotent like reservation deletion.
func (r *ApartmentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM apartments WHERE id = ?`, id)
	return err
}

func scanApartment(row rowScanner) (model.Apartment, error) {
	var (
		a           model.Apartment
		description sql.NullString
		maxGuests   sql.NullInt64
		price       sql.NullFloat64
		currency    sql.NullString
	)
	err := row.Scan(
		&a.ID, &a.Slug, &a.Name, &description, &maxGuests, &price, &currency,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return model.Apartment{}, err
	}
	a.Description = description.String
	a.MaxGuests = int(maxGuests.Int64)
	a.PricePerNight = price.Float64
	a.Currency = currency.String
	return a, nil
}
