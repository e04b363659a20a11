package users

import (
	"context"
	"fmt"
)

// Logger is the structured logging surface: a message followed by
// alternating key/value pairs, matching go-logger's signature.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*User, string, error)
	Logout(token string) error
	Verify(ctx context.Context, token string) (*User, error)
}

// UserService is the CRUD surface over user records
type UserService interface {
	List(ctx context.Context, limit, offset int) ([]*User, int, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, username, email, password string) (*User, error)
	Update(ctx context.Context, id int64, change UserUpdate) (*User, error)
	Delete(ctx context.Context, id int64) (*User, error)
}

// Config holds service options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
	GetContextKey() string
	GetTokenLookup() string
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) { d.print("ERR", msg, args) }
func (d defLogger) Warn(msg string, args ...any)  { d.print("WRN", msg, args) }
func (d defLogger) Info(msg string, args ...any)  { d.print("INF", msg, args) }
func (d defLogger) Debug(msg string, args ...any) { d.print("DBG", msg, args) }

func (d defLogger) print(level, msg string, args []any) {
	if len(args) == 0 {
		fmt.Printf("[%s] USERS %s\n", level, msg)
		return
	}
	fmt.Printf("[%s] USERS %s %v\n", level, msg, args)
}
