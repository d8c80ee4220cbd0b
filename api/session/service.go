package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is deliberately generic: the login response never
// reveals which of username or password was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

type Service struct {
	repo  *Repository
	store Store
	ttl   time.Duration
}

func NewService(db *gorm.DB, store Store, ttl time.Duration) *Service {
	return &Service{
		repo:  NewRepository(db),
		store: store,
		ttl:   ttl,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login validates credentials and establishes a server-side session.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*SessionModel, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByUsername(req.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sess := &SessionModel{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		IsDev:     user.IsDev,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %v", err)
	}

	return sess, nil
}

// Logout destroys the session named by token. Unknown or blank tokens are
// not an error: logout is idempotent.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, token)
}

// Resolve maps a cookie token to a Principal. Returns nil when the token
// does not name a live session.
func (s *Service) Resolve(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, nil
	}
	sess, err := s.store.Get(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Principal{ID: sess.UserID, Username: sess.Username, IsDev: sess.IsDev}, nil
}

// PurgeExpired removes dead sessions from the store.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.store.PurgeExpired(ctx)
}
