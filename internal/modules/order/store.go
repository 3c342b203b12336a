// README: Order store contract plus the PostgreSQL implementation.
package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"speedyrider/internal/types"
)

// Mutation carries the optional field writes an UpdateStatus may apply
// alongside the status change.
type Mutation struct {
	RiderID       *types.ID
	Distance      *string
	EstimatedTime *string
	PaymentMethod *string
	PaymentStatus *PaymentStatus
	PODPhotoURL   *string
	PODLocation   *types.Point
}

// Store abstracts order persistence. PGStore is the production
// implementation; MemStore backs tests and the no-database mock mode.
type Store interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id types.ID) (*Order, error)
	ListByRider(ctx context.Context, riderID types.ID) ([]*Order, error)
	ListPending(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, mut Mutation) (bool, error)
	AppendEvent(ctx context.Context, e *Event) error
	ListEvents(ctx context.Context, orderID types.ID) ([]Event, error)
}

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, o *Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO orders (
			id, rider_id, customer_name, customer_phone,
			pickup_address, delivery_address, items, special_instructions,
			status, status_version, total_amount, currency,
			distance, estimated_time, barcode, otp,
			payment_status, created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11, $12,
			$13, $14, $15, $16,
			$17, $18
		)`,
		string(o.ID),
		toStringPtr(o.RiderID),
		o.CustomerName,
		o.CustomerPhone,
		o.PickupAddress,
		o.DeliveryAddress,
		items,
		o.SpecialInstructions,
		string(o.Status),
		o.StatusVersion,
		o.TotalAmount.Amount,
		o.TotalAmount.Currency,
		o.Distance,
		o.EstimatedTime,
		o.Barcode,
		o.OTP,
		string(o.PaymentStatus),
		o.CreatedAt,
	)
	return err
}

func (s *PGStore) Get(ctx context.Context, id types.ID) (*Order, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, rider_id, customer_name, customer_phone,
		       pickup_address, delivery_address, items, special_instructions,
		       status, status_version, total_amount, currency,
		       distance, estimated_time, barcode, otp,
		       payment_method, payment_status,
		       pod_photo_url, pod_lat, pod_lng,
		       created_at, accepted_at, picked_up_at, verified_at, paid_at, completed_at
		FROM orders
		WHERE id = $1`, string(id),
	)
	return scanOrder(row)
}

func (s *PGStore) ListByRider(ctx context.Context, riderID types.ID) ([]*Order, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, rider_id, customer_name, customer_phone,
		       pickup_address, delivery_address, items, special_instructions,
		       status, status_version, total_amount, currency,
		       distance, estimated_time, barcode, otp,
		       payment_method, payment_status,
		       pod_photo_url, pod_lat, pod_lng,
		       created_at, accepted_at, picked_up_at, verified_at, paid_at, completed_at
		FROM orders
		WHERE rider_id = $1
		ORDER BY created_at DESC`, string(riderID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (s *PGStore) ListPending(ctx context.Context) ([]*Order, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, rider_id, customer_name, customer_phone,
		       pickup_address, delivery_address, items, special_instructions,
		       status, status_version, total_amount, currency,
		       distance, estimated_time, barcode, otp,
		       payment_method, payment_status,
		       pod_photo_url, pod_lat, pod_lng,
		       created_at, accepted_at, picked_up_at, verified_at, paid_at, completed_at
		FROM orders
		WHERE status = 'pending'
		ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (s *PGStore) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, mut Mutation) (bool, error) {
	var podLat, podLng *float64
	if mut.PODLocation != nil {
		podLat = &mut.PODLocation.Lat
		podLng = &mut.PODLocation.Lng
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET status = $1,
		    status_version = status_version + 1,
		    rider_id = COALESCE($2, rider_id),
		    distance = COALESCE($3, distance),
		    estimated_time = COALESCE($4, estimated_time),
		    payment_method = COALESCE($5, payment_method),
		    payment_status = COALESCE($6, payment_status),
		    pod_photo_url = COALESCE($7, pod_photo_url),
		    pod_lat = COALESCE($8, pod_lat),
		    pod_lng = COALESCE($9, pod_lng),
		    accepted_at = CASE WHEN $1 = 'accepted' THEN NOW() ELSE accepted_at END,
		    picked_up_at = CASE WHEN $1 = 'picked_up' THEN NOW() ELSE picked_up_at END,
		    verified_at = CASE WHEN $1 = 'verified' THEN NOW() ELSE verified_at END,
		    paid_at = CASE WHEN $1 = 'payment_collected' THEN NOW() ELSE paid_at END,
		    completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END,
		    updated_at = NOW()
		WHERE id = $10 AND status = $11 AND status_version = $12`,
		string(to),
		toStringPtr(mut.RiderID),
		mut.Distance,
		mut.EstimatedTime,
		mut.PaymentMethod,
		paymentStatusPtr(mut.PaymentStatus),
		mut.PODPhotoURL,
		podLat,
		podLng,
		string(id),
		string(from),
		version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PGStore) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO order_status_events (
			order_id, from_status, to_status, action, actor_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.OrderID),
		string(e.FromStatus),
		string(e.ToStatus),
		string(e.Action),
		toStringPtr(e.ActorID),
		e.CreatedAt,
	)
	return err
}

func (s *PGStore) ListEvents(ctx context.Context, orderID types.ID) ([]Event, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, order_id, from_status, to_status, action, actor_id, created_at
		FROM order_status_events
		WHERE order_id = $1
		ORDER BY id`, string(orderID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var actorID sql.NullString
		if err := rows.Scan(&e.ID, &e.OrderID, &e.FromStatus, &e.ToStatus, &e.Action, &actorID, &e.CreatedAt); err != nil {
			return nil, err
		}
		if actorID.Valid {
			a := types.ID(actorID.String)
			e.ActorID = &a
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var o Order
	var riderID, paymentMethod, podPhotoURL sql.NullString
	var podLat, podLng sql.NullFloat64
	var items []byte
	var acceptedAt, pickedUpAt, verifiedAt, paidAt, completedAt sql.NullTime

	err := row.Scan(
		&o.ID, &riderID, &o.CustomerName, &o.CustomerPhone,
		&o.PickupAddress, &o.DeliveryAddress, &items, &o.SpecialInstructions,
		&o.Status, &o.StatusVersion, &o.TotalAmount.Amount, &o.TotalAmount.Currency,
		&o.Distance, &o.EstimatedTime, &o.Barcode, &o.OTP,
		&paymentMethod, &o.PaymentStatus,
		&podPhotoURL, &podLat, &podLng,
		&o.CreatedAt, &acceptedAt, &pickedUpAt, &verifiedAt, &paidAt, &completedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, err
		}
	}
	if riderID.Valid {
		r := types.ID(riderID.String)
		o.RiderID = &r
	}
	if paymentMethod.Valid {
		o.PaymentMethod = &paymentMethod.String
	}
	if podPhotoURL.Valid {
		o.PODPhotoURL = &podPhotoURL.String
	}
	if podLat.Valid && podLng.Valid {
		o.PODLocation = &types.Point{Lat: podLat.Float64, Lng: podLng.Float64}
	}
	o.AcceptedAt = toTimePtr(acceptedAt)
	o.PickedUpAt = toTimePtr(pickedUpAt)
	o.VerifiedAt = toTimePtr(verifiedAt)
	o.PaidAt = toTimePtr(paidAt)
	o.CompletedAt = toTimePtr(completedAt)
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]*Order, error) {
	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func toStringPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func paymentStatusPtr(v *PaymentStatus) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func toTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
