// README: Rider auth service (phone + MPIN login, session resolution).
package rider

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"speedyrider/internal/types"
)

var (
	ErrInvalidCredentials = errors.New("invalid phone or MPIN")
	ErrThrottled          = errors.New("too many failed attempts")
)

type Service struct {
	store    Store
	sessions *Sessions
	throttle *Throttle
}

func NewService(store Store, sessions *Sessions, throttle *Throttle) *Service {
	return &Service{store: store, sessions: sessions, throttle: throttle}
}

type LoginResult struct {
	Token string
	Rider *Rider
}

// Login checks the MPIN against the stored bcrypt hash. Failures feed the
// throttle; an unknown phone and a wrong MPIN are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, phone, mpin string) (*LoginResult, error) {
	if phone == "" || mpin == "" {
		return nil, ErrInvalidCredentials
	}
	if s.throttle != nil {
		wait, err := s.throttle.Wait(ctx, phone)
		if err != nil {
			return nil, err
		}
		if wait > 0 {
			return nil, ErrThrottled
		}
	}

	r, err := s.store.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.recordFailure(ctx, phone)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(r.MPINHash), []byte(mpin)) != nil {
		s.recordFailure(ctx, phone)
		return nil, ErrInvalidCredentials
	}
	if s.throttle != nil {
		_ = s.throttle.RecordSuccess(ctx, phone)
	}

	token, err := s.sessions.Create(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	_ = s.store.TouchLastSeen(ctx, r.ID, time.Now())
	return &LoginResult{Token: token, Rider: r}, nil
}

// ResolveSession maps a bearer token to the rider it belongs to and refreshes
// last_seen. The http auth middleware calls this on every request.
func (s *Service) ResolveSession(ctx context.Context, token string) (types.ID, error) {
	id, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return "", err
	}
	_ = s.store.TouchLastSeen(ctx, id, time.Now())
	return id, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Rider, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) recordFailure(ctx context.Context, phone string) {
	if s.throttle != nil {
		_ = s.throttle.RecordFailure(ctx, phone)
	}
}

// HashMPIN wraps bcrypt for registration and seeding.
func HashMPIN(mpin string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(mpin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
