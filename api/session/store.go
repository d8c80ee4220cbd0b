package session

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrSessionNotFound is returned by a Store when the token does not name a
// live session.
var ErrSessionNotFound = errors.New("session not found")

// Store holds server-side sessions. The GORM implementation is the default;
// a Redis implementation is used when a Redis URL is configured.
type Store interface {
	Save(ctx context.Context, s *SessionModel) error
	Get(ctx context.Context, token string) (*SessionModel, error)
	Delete(ctx context.Context, token string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

// GormStore keeps sessions in the sessions table.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Save(ctx context.Context, sess *SessionModel) error {
	return s.DB.WithContext(ctx).Create(sess).Error
}

func (s *GormStore) Get(ctx context.Context, token string) (*SessionModel, error) {
	var sess SessionModel
	err := s.DB.WithContext(ctx).Where("token = ?", token).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if time.Now().After(sess.ExpiresAt) {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (s *GormStore) Delete(ctx context.Context, token string) error {
	return s.DB.WithContext(ctx).Where("token = ?", token).Delete(&SessionModel{}).Error
}

// PurgeExpired removes sessions past their expiry. Run by the cron service.
func (s *GormStore) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.DB.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&SessionModel{})
	return res.RowsAffected, res.Error
}
