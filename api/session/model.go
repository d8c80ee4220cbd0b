package session

import (
	"time"

	"github.com/labstack/echo/v4"
)

const UsersTableName = "users"
const SessionsTableName = "sessions"

// UserModel is a row in the users table. Passwords are stored as bcrypt
// hashes, never plaintext.
type UserModel struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	HashedPassword string    `gorm:"not null" json:"-"`
	IsDev          bool      `gorm:"not null;default:false" json:"is_dev"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"-"`
}

func (UserModel) TableName() string {
	return UsersTableName
}

// SessionModel is a server-side session record named by an opaque token.
// The token is the only thing the cookie carries.
type SessionModel struct {
	Token     string    `gorm:"primaryKey" json:"-"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	IsDev     bool      `json:"is_dev"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (SessionModel) TableName() string {
	return SessionsTableName
}

// Principal is the authenticated identity threaded through request context.
type Principal struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	IsDev    bool   `json:"isDev"`
}

// ContextKey is where the middleware stashes the resolved Principal.
const ContextKey = "principal"

// FromContext returns the request's Principal, or nil when unauthenticated.
func FromContext(c echo.Context) *Principal {
	p, _ := c.Get(ContextKey).(*Principal)
	return p
}
