package users

import (
	"context"

	"github.com/goliatone/go-errors"
)

// DefaultPageSize is the page size used when the caller does not provide one.
const DefaultPageSize = 5

// UserUpdate carries partial update semantics: nil fields are left unchanged.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
	Active   *bool
}

// Manager implements UserService on top of the Users repository.
type Manager struct {
	repo   Users
	logger Logger
}

var _ UserService = (*Manager)(nil)

// NewManager creates a user management service.
func NewManager(repo Users) *Manager {
	return &Manager{
		repo:   repo,
		logger: defLogger{},
	}
}

func (m *Manager) WithLogger(logger Logger) *Manager {
	m.logger = logger
	return m
}

// List returns a page of active users and the total active count. Out of
// range pagination values are clamped rather than passed to the store.
func (m *Manager) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return m.repo.List(ctx, limit, offset)
}

func (m *Manager) GetByID(ctx context.Context, id int64) (*User, error) {
	return m.repo.GetByID(ctx, id)
}

// Create registers a user. Username and email must be unique across all
// users, active or not; the pre-checks produce friendly errors, and the
// storage constraint backstops concurrent creates.
func (m *Manager) Create(ctx context.Context, username, email, password string) (*User, error) {
	if err := m.ensureAvailable(ctx, "email", email, 0); err != nil {
		return nil, err
	}
	if err := m.ensureAvailable(ctx, "username", username, 0); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		m.logger.Error("create user hash error", "error", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	record := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Active:       true,
	}

	return m.repo.Create(ctx, record)
}

// Update applies a partial update. A username/email colliding with a
// different user fails; a user's own unchanged values pass. A new password
// is always rehashed before it is written.
func (m *Manager) Update(ctx context.Context, id int64, change UserUpdate) (*User, error) {
	record, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var columns []string

	if change.Email != nil {
		if err := m.ensureAvailable(ctx, "email", *change.Email, id); err != nil {
			return nil, err
		}
		record.Email = *change.Email
		columns = append(columns, "email")
	}

	if change.Username != nil {
		if err := m.ensureAvailable(ctx, "username", *change.Username, id); err != nil {
			return nil, err
		}
		record.Username = *change.Username
		columns = append(columns, "username")
	}

	if change.Password != nil {
		hash, err := HashPassword(*change.Password)
		if err != nil {
			m.logger.Error("update user hash error", "error", err)
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
		}
		record.PasswordHash = hash
		columns = append(columns, "password_hash")
	}

	if change.Active != nil {
		record.Active = *change.Active
		columns = append(columns, "active")
	}

	if len(columns) == 0 {
		return record, nil
	}

	return m.repo.Update(ctx, record, columns...)
}

// Delete hard-deletes the row and returns the removed record.
func (m *Manager) Delete(ctx context.Context, id int64) (*User, error) {
	record, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := m.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	return record, nil
}

func (m *Manager) ensureAvailable(ctx context.Context, column, value string, excludeID int64) error {
	taken, err := m.repo.FieldTaken(ctx, column, value, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return NewDuplicateFieldError(column, excludeID > 0)
	}
	return nil
}
