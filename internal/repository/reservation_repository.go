package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/presidentialapts/reservation-api/internal/model"
)

// ReservationRepo provides CRUD, filtered listing and overlap scans
// for reservations.  All timestamps are stored in UTC.  Filters are
// pushed into SQL WHERE clauses backed by the secondary indexes on
// apartment_id, room_id and created_at rather than filtered in
// memory.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions
// that span the availability re-check and the insert.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, apartment_id, room_id, guest_name, guest_email, guest_phone,
	check_in, check_out, guests_count, notes, status, total_amount, currency, tags,
	created_at, updated_at`

// ListQuery defines filters, ordering and pagination for List.  Page
// is 1-indexed.  Filters combine conjunctively; Tags matches when the
// reservation carries any of the requested labels.
type ListQuery struct {
	Page        int
	Limit       int
	Keyword     string
	Tags        []string
	ApartmentID string
	RoomID      string
	Order       string // "asc" or "desc"; defaults to desc (newest first)
}

// buildListFilter translates a ListQuery into a WHERE condition and
// its arguments.  Kept as a pure function so the clause construction
// can be tested without a database.
func buildListFilter(q ListQuery) (string, []any) {
	where := []string{}
	args := []any{}

	if q.ApartmentID != "" {
		where = append(where, "apartment_id = ?")
		args = append(args, q.ApartmentID)
	}
	if q.RoomID != "" {
		where = append(where, "room_id = ?")
		args = append(args, q.RoomID)
	}
	if q.Keyword != "" {
		kw := "%" + strings.ToLower(q.Keyword) + "%"
		where = append(where, `(LOWER(guest_name) LIKE ? OR LOWER(COALESCE(guest_email,'')) LIKE ?
			OR LOWER(COALESCE(guest_phone,'')) LIKE ? OR LOWER(COALESCE(notes,'')) LIKE ?)`)
		args = append(args, kw, kw, kw, kw)
	}
	if len(q.Tags) > 0 {
		ors := make([]string, 0, len(q.Tags))
		for _, t := range q.Tags {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			ors = append(ors, "FIND_IN_SET(?, COALESCE(tags,'')) > 0")
			args = append(args, t)
		}
		if len(ors) > 0 {
			where = append(where, "("+strings.Join(ors, " OR ")+")")
		}
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}
	return cond, args
}

// List returns one page of reservations matching the query plus the
// total count of the full filtered set.  Results are ordered by
// created_at, newest first unless Order is "asc".
func (r *ReservationRepo) List(ctx context.Context, q ListQuery) ([]model.Reservation, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	cond, args := buildListFilter(q)

	var total int64
	countSQL := `SELECT COUNT(*) FROM reservations WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dir := "DESC"
	if strings.EqualFold(q.Order, "asc") {
		dir = "ASC"
	}
	dataSQL := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE ` + cond + `
		ORDER BY created_at ` + dir + `, id ` + dir + `
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), q.Limit, (q.Page-1)*q.Limit)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0, q.Limit)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID fetches a reservation by id.  sql.ErrNoRows is returned
// when no such reservation exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ? LIMIT 1`, id)
	res, err := scanReservation(row)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Create inserts a new reservation outside a transaction.  It assigns
// a UUID, defaults the status to pending and stamps created_at and
// updated_at with the same instant.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	return r.create(ctx, r.db, res)
}

// CreateTx is Create inside the scope of an existing transaction.
// The caller must commit or rollback.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	return r.create(ctx, tx, res)
}

// execer abstracts *sql.DB and *sql.Tx for writes.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *ReservationRepo) create(ctx context.Context, ex execer, res *model.Reservation) error {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	if res.Status == "" {
		res.Status = model.StatusPending
	}
	now := time.Now().UTC()
	res.CreatedAt = now
	res.UpdatedAt = now

	const q = `INSERT INTO reservations
		(id, apartment_id, room_id, guest_name, guest_email, guest_phone,
		 check_in, check_out, guests_count, notes, status, total_amount, currency, tags,
		 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := ex.ExecContext(ctx, q,
		res.ID, res.ApartmentID, nullStr(res.RoomID),
		res.Guest.Name, nullStr(res.Guest.Email), nullStr(res.Guest.Phone),
		res.CheckIn.UTC(), res.CheckOut.UTC(),
		nullInt(res.GuestsCount), nullStr(res.Notes), string(res.Status),
		nullFloat(res.TotalAmount), nullStr(res.Currency), nullStr(encodeTags(res.Tags)),
		now, now,
	)
	return err
}

// Patch describes a shallow update: nil fields are left untouched,
// non-nil fields overwrite the stored value.  updated_at is refreshed
// on every call regardless of which fields are present.
type Patch struct {
	RoomID      *string
	GuestName   *string
	GuestEmail  *string
	GuestPhone  *string
	CheckIn     *time.Time
	CheckOut    *time.Time
	GuestsCount *int
	Notes       *string
	Status      *model.Status
	TotalAmount *float64
	Currency    *string
	Tags        *[]string
}

// Update merges the patch onto the stored record and returns the
// refreshed row.  sql.ErrNoRows is returned when the id is unknown.
// created_at and id are never touched.
func (r *ReservationRepo) Update(ctx context.Context, id string, p Patch) (*model.Reservation, error) {
	set := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	add := func(col string, v any) {
		set = append(set, col+" = ?")
		args = append(args, v)
	}
	if p.RoomID != nil {
		add("room_id", nullStr(*p.RoomID))
	}
	if p.GuestName != nil {
		add("guest_name", *p.GuestName)
	}
	if p.GuestEmail != nil {
		add("guest_email", nullStr(*p.GuestEmail))
	}
	if p.GuestPhone != nil {
		add("guest_phone", nullStr(*p.GuestPhone))
	}
	if p.CheckIn != nil {
		add("check_in", p.CheckIn.UTC())
	}
	if p.CheckOut != nil {
		add("check_out", p.CheckOut.UTC())
	}
	if p.GuestsCount != nil {
		add("guests_count", nullInt(*p.GuestsCount))
	}
	if p.Notes != nil {
		add("notes", nullStr(*p.Notes))
	}
	if p.Status != nil {
		add("status", string(*p.Status))
	}
	if p.TotalAmount != nil {
		add("total_amount", nullFloat(*p.TotalAmount))
	}
	if p.Currency != nil {
		add("currency", nullStr(*p.Currency))
	}
	if p.Tags != nil {
		add("tags", nullStr(encodeTags(*p.Tags)))
	}

	q := `UPDATE reservations SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, append(args, id)...); err != nil {
		return nil, err
	}
	// RowsAffected is zero both for an unknown id and for a no-op
	// patch, so check existence via the read back instead.
	return r.GetByID(ctx, id)
}

// Delete removes a reservation.  It is idempotent: deleting an id
// that does not exist is not an error.
func (r *ReservationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	return err
}

// ListOverlapping returns the reservations in scope whose stored date
// range intersects [checkIn, checkOut).  Scope follows the room-first
// rule; with neither id set every reservation is a candidate.  No
// status filter is applied: cancelled and completed rows still block.
func (r *ReservationRepo) ListOverlapping(ctx context.Context, apartmentID, roomID string, checkIn, checkOut time.Time) ([]model.Reservation, error) {
	return r.listOverlapping(ctx, r.db, apartmentID, roomID, checkIn, checkOut, false)
}

// ListOverlappingTx is ListOverlapping with SELECT ... FOR UPDATE so
// the create path can lock the conflicting rows and re-validate
// availability inside the same transaction.
func (r *ReservationRepo) ListOverlappingTx(ctx context.Context, tx *sql.Tx, apartmentID, roomID string, checkIn, checkOut time.Time) ([]model.Reservation, error) {
	return r.listOverlapping(ctx, tx, apartmentID, roomID, checkIn, checkOut, true)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *ReservationRepo) listOverlapping(ctx context.Context, qr querier, apartmentID, roomID string, checkIn, checkOut time.Time, forUpdate bool) ([]model.Reservation, error) {
	where := []string{"check_in < ?", "? < check_out"}
	args := []any{checkOut.UTC(), checkIn.UTC()}
	switch {
	case roomID != "":
		where = append(where, "room_id = ?")
		args = append(args, roomID)
	case apartmentID != "":
		where = append(where, "apartment_id = ?")
		args = append(args, apartmentID)
	}

	q := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY check_in, id`
	if forUpdate {
		q += ` FOR UPDATE`
	}
	rows, err := qr.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (model.Reservation, error) {
	var (
		res         model.Reservation
		roomID      sql.NullString
		guestEmail  sql.NullString
		guestPhone  sql.NullString
		guestsCount sql.NullInt64
		notes       sql.NullString
		status      string
		totalAmount sql.NullFloat64
		currency    sql.NullString
		tags        sql.NullString
	)
	err := row.Scan(
		&res.ID, &res.ApartmentID, &roomID,
		&res.Guest.Name, &guestEmail, &guestPhone,
		&res.CheckIn, &res.CheckOut,
		&guestsCount, &notes, &status, &totalAmount, &currency, &tags,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return model.Reservation{}, err
	}
	res.RoomID = roomID.String
	res.Guest.Email = guestEmail.String
	res.Guest.Phone = guestPhone.String
	res.GuestsCount = int(guestsCount.Int64)
	res.Notes = notes.String
	res.Status = model.Status(status)
	res.TotalAmount = totalAmount.Float64
	res.Currency = currency.String
	res.Tags = decodeTags(tags.String)
	return res, nil
}

// encodeTags stores labels as a comma-separated list so FIND_IN_SET
// can match them server-side.  Commas inside a tag are stripped.
func encodeTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(strings.ReplaceAll(t, ",", " "))
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return strings.Join(cleaned, ",")
}

func decodeTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

func nullFloat(f float64) any {
	if f == 0 {
		return nil
	}
	return f
}
