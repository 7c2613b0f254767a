package db

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/roomcull/internal/model"
	"github.com/udisondev/roomcull/internal/voxel"
)

var (
	ErrMarkerExists   = errors.New("marker already placed at anchor")
	ErrMarkerNotFound = errors.New("marker not found")
	ErrAnchorRange    = errors.New("anchor outside the stored coordinate range")
)

const uniqueViolation = "23505"

// MarkerRepository persists room markers.
type MarkerRepository struct {
	pool *pgxpool.Pool
}

// NewMarkerRepository creates a new marker repository
func NewMarkerRepository(pool *pgxpool.Pool) *MarkerRepository {
	return &MarkerRepository{pool: pool}
}

// LoadAll loads all markers in placement order.
func (r *MarkerRepository) LoadAll(ctx context.Context) ([]*model.Marker, error) {
	query := `
		SELECT marker_id, x, y, z, created_at
		FROM room_markers
		ORDER BY created_at, marker_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading all markers: %w", err)
	}
	defer rows.Close()

	var markers []*model.Marker
	for rows.Next() {
		var (
			id        uuid.UUID
			x, y, z   int32
			createdAt time.Time
		)
		if err := rows.Scan(&id, &x, &y, &z, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning marker row: %w", err)
		}
		markers = append(markers, model.RestoreMarker(id, voxel.C(int(x), int(y), int(z)), createdAt))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating marker rows: %w", err)
	}

	return markers, nil
}

// Save inserts m. A second marker on the same anchor returns ErrMarkerExists.
// Columns are INTEGER, so anchors beyond int32 return ErrAnchorRange.
func (r *MarkerRepository) Save(ctx context.Context, m *model.Marker) error {
	a := m.Anchor()
	if !fitsInt32(a.X) || !fitsInt32(a.Y) || !fitsInt32(a.Z) {
		return fmt.Errorf("saving marker at %v: %w", a, ErrAnchorRange)
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO room_markers (marker_id, x, y, z, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.ID(), int32(a.X), int32(a.Y), int32(a.Z), m.CreatedAt(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("saving marker at %v: %w", a, ErrMarkerExists)
		}
		return fmt.Errorf("saving marker %s: %w", m.ID(), err)
	}
	return nil
}

// Delete removes the marker with id.
func (r *MarkerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM room_markers WHERE marker_id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting marker %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting marker %s: %w", id, ErrMarkerNotFound)
	}
	return nil
}

func fitsInt32(v int) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}
