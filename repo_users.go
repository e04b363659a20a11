package users

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Users is the repository over the users table.
type Users interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]*User, int, error)
	Create(ctx context.Context, record *User) (*User, error)
	Update(ctx context.Context, record *User, columns ...string) (*User, error)
	Delete(ctx context.Context, id int64) error
	FieldTaken(ctx context.Context, column, value string, excludeID int64) (bool, error)
}

type usersRepo struct {
	db *bun.DB
}

var _ Users = (*usersRepo)(nil)

// NewUsersRepository creates a bun-backed Users repository.
func NewUsersRepository(db *bun.DB) Users {
	return &usersRepo{db: db}
}

func (r *usersRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	record := &User{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, r.selectErr(err, map[string]any{"id": id})
	}
	return record, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	record := &User{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, r.selectErr(err, map[string]any{"email": email})
	}
	return record, nil
}

// List returns a page of active users ordered by ascending id, plus the
// total count of active users ignoring pagination.
func (r *usersRepo) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	records := make([]*User, 0, limit)
	total, err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.active = ?", true).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CategoryInternal, "failed to list users")
	}
	return records, total, nil
}

func (r *usersRepo) Create(ctx context.Context, record *User) (*User, error) {
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		if IsUniqueViolation(err) {
			return nil, NewDuplicateFieldError(uniqueViolationField(err), false)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to insert user")
	}
	return record, nil
}

// Update writes only the named columns, then re-reads the row so callers get
// the persisted state.
func (r *usersRepo) Update(ctx context.Context, record *User, columns ...string) (*User, error) {
	if len(columns) == 0 {
		return r.GetByID(ctx, record.ID)
	}

	record.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	res, err := r.db.NewUpdate().
		Model(record).
		Column(columns...).
		Where("id = ?", record.ID).
		Exec(ctx)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, NewDuplicateFieldError(uniqueViolationField(err), true)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update user")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrUserNotFound
	}

	return r.GetByID(ctx, record.ID)
}

func (r *usersRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete user")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// FieldTaken reports whether any user other than excludeID already holds the
// given value in the given column. excludeID <= 0 means no exclusion. This is
// only a friendly pre-check; the unique constraint is the real guard.
func (r *usersRepo) FieldTaken(ctx context.Context, column, value string, excludeID int64) (bool, error) {
	q := r.db.NewSelect().
		Model((*User)(nil)).
		Where(fmt.Sprintf("?TableAlias.%s = ?", column), value)

	if excludeID > 0 {
		q = q.Where("?TableAlias.id != ?", excludeID)
	}

	exists, err := q.Exists(ctx)
	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to check field uniqueness")
	}
	return exists, nil
}

func (r *usersRepo) selectErr(err error, metadata map[string]any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound.Clone().WithMetadata(metadata)
	}
	return errors.Wrap(err, errors.CategoryInternal, "failed to query user")
}
