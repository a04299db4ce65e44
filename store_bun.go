package users

import (
	"context"
	"database/sql"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// userRow is the persistence shape of a record. The domain User type stays
// free of ORM tags; this row type is the only thing bun sees.
type userRow struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID             string `bun:"id,pk"`
	Email          string `bun:"email,notnull,unique"`
	FirstName      string `bun:"first_name"`
	LastName       string `bun:"last_name"`
	OrganizationID string `bun:"organization_id"`
	IsAdmin        bool   `bun:"is_admin,notnull,default:false"`
	PasswordHash   string `bun:"password_hash,notnull"`
}

func (r userRow) toUser() User {
	return User{
		ID:             r.ID,
		Email:          r.Email,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		OrganizationID: r.OrganizationID,
		IsAdmin:        r.IsAdmin,
	}
}

// BunStore is a Store backed by a bun.DB. Email uniqueness rides on the
// table's unique constraint, so concurrent creates race safely at the
// database instead of in application code.
type BunStore struct {
	db     *bun.DB
	genID  IDGenerator
	logger Logger
}

type BunStoreOption func(*BunStore)

func WithBunIDGenerator(gen IDGenerator) BunStoreOption {
	return func(s *BunStore) {
		if gen != nil {
			s.genID = gen
		}
	}
}

func WithBunLogger(logger Logger) BunStoreOption {
	return func(s *BunStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewBunStore(db *bun.DB, opts ...BunStoreOption) *BunStore {
	s := &BunStore{
		db:     db,
		genID:  func(string) (string, error) { return uuid.NewString(), nil },
		logger: defLogger{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Init creates the users table if needed.
func (s *BunStore) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().
		Model((*userRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to create users table")
	}
	return nil
}

func (s *BunStore) FindAll(ctx context.Context) ([]User, error) {
	var rows []userRow
	if err := s.db.NewSelect().Model(&rows).Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to list users")
	}

	out := make([]User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toUser())
	}
	return out, nil
}

func (s *BunStore) FindByAttributes(ctx context.Context, filter Filter) ([]User, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	var rows []userRow
	q := s.db.NewSelect().Model(&rows)
	for key, value := range filter {
		q = q.Where("? = ?", bun.Ident(key), value)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to filter users")
	}

	out := make([]User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toUser())
	}
	return out, nil
}

func (s *BunStore) GetByID(ctx context.Context, id string) (*User, error) {
	row := new(userRow)
	err := s.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to load user")
	}

	user := row.toUser()
	return &user, nil
}

func (s *BunStore) GetByIDs(ctx context.Context, ids []string) ([]User, error) {
	if len(ids) == 0 {
		return []User{}, nil
	}

	var rows []userRow
	err := s.db.NewSelect().
		Model(&rows).
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to load users")
	}

	byID := make(map[string]User, len(rows))
	for _, row := range rows {
		byID[row.ID] = row.toUser()
	}

	// Results come back in input order, absent ids skipped.
	out := make([]User, 0, len(ids))
	for _, id := range ids {
		if user, ok := byID[id]; ok {
			out = append(out, user)
		}
	}
	return out, nil
}

func (s *BunStore) GetAuthRecordByEmail(ctx context.Context, email string) (*AuthUser, error) {
	row := new(userRow)
	err := s.db.NewSelect().
		Model(row).
		Where("lower(email) = lower(?)", strings.TrimSpace(email)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to load auth record")
	}

	return &AuthUser{
		ID:             row.ID,
		Email:          row.Email,
		OrganizationID: row.OrganizationID,
		IsAdmin:        row.IsAdmin,
		PasswordHash:   row.PasswordHash,
	}, nil
}

func (s *BunStore) Create(ctx context.Context, data NewUser) (*User, error) {
	id, err := s.genID(data.Email)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "id generation failed")
	}

	row := &userRow{
		ID:             id,
		Email:          data.Email,
		FirstName:      data.FirstName,
		LastName:       data.LastName,
		OrganizationID: data.OrganizationID,
		IsAdmin:        data.IsAdmin,
		PasswordHash:   data.PasswordHash,
	}

	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, errWithMetadata(ErrDuplicateEmail, map[string]any{"email": data.Email})
		}
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to create user")
	}

	user := row.toUser()
	return &user, nil
}

func (s *BunStore) Update(ctx context.Context, id string, data NewUser) (*User, error) {
	row := &userRow{
		ID:             id,
		Email:          data.Email,
		FirstName:      data.FirstName,
		LastName:       data.LastName,
		OrganizationID: data.OrganizationID,
		IsAdmin:        data.IsAdmin,
	}

	res, err := s.db.NewUpdate().
		Model(row).
		Column("email", "first_name", "last_name", "organization_id", "is_admin").
		WherePK().
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errWithMetadata(ErrDuplicateEmail, map[string]any{"email": data.Email})
		}
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to update user")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to update user")
	}

	if affected == 0 {
		return nil, errWithMetadata(ErrUserNotFound, map[string]any{"id": id})
	}

	user := row.toUser()
	return &user, nil
}

func (s *BunStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.NewDelete().
		Model((*userRow)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to delete user")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to delete user")
	}

	if affected == 0 {
		return errWithMetadata(ErrUserNotFound, map[string]any{"id": id})
	}

	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
