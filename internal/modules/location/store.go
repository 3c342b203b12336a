// README: Location store backed by Redis GEO and Postgres snapshots.
package location

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"speedyrider/internal/types"
)

var ErrNoPosition = errors.New("no live position for rider")

const geoKey = "riders:geo"

// Store keeps the live position in a redis GEO set and appends periodic
// snapshots to postgres. A nil db skips snapshots (mock mode keeps live
// tracking only).
type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewStore(db *pgxpool.Pool, redis *redis.Client) *Store {
	return &Store{db: db, redis: redis}
}

func (s *Store) SetGeo(ctx context.Context, id types.ID, pos types.Point) error {
	return s.redis.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      string(id),
		Longitude: pos.Lng,
		Latitude:  pos.Lat,
	}).Err()
}

func (s *Store) GetGeo(ctx context.Context, id types.ID) (types.Point, error) {
	locs, err := s.redis.GeoPos(ctx, geoKey, string(id)).Result()
	if err != nil {
		return types.Point{}, err
	}
	if len(locs) == 0 || locs[0] == nil {
		return types.Point{}, ErrNoPosition
	}
	return types.Point{Lat: locs[0].Latitude, Lng: locs[0].Longitude}, nil
}

func (s *Store) AppendSnapshot(ctx context.Context, snap Snapshot) error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO rider_location_snapshots (rider_id, lat, lng, recorded_at)
		VALUES ($1, $2, $3, $4)`,
		snap.RiderID, snap.Position.Lat, snap.Position.Lng, snap.RecordedAt,
	)
	return err
}
