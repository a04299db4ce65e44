package users

import (
	"context"
)

// UserService fronts a Store with the application-level rules that do not
// belong in storage: duplicate email pre-checks on create and password
// hashing for plaintext input.
type UserService struct {
	store  Store
	logger Logger
}

func NewUserService(store Store) *UserService {
	return &UserService{
		store:  store,
		logger: defLogger{},
	}
}

func (s *UserService) WithLogger(logger Logger) *UserService {
	s.logger = logger
	return s
}

func (s *UserService) FindAll(ctx context.Context) ([]User, error) {
	return s.store.FindAll(ctx)
}

func (s *UserService) FindByAttributes(ctx context.Context, filter Filter) ([]User, error) {
	return s.store.FindByAttributes(ctx, filter)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*User, error) {
	return s.store.GetByID(ctx, id)
}

func (s *UserService) GetByIDs(ctx context.Context, ids []string) ([]User, error) {
	return s.store.GetByIDs(ctx, ids)
}

// GetByEmail returns the directory record for email, or nil when absent.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*User, error) {
	record, err := s.store.GetAuthRecordByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return s.store.GetByID(ctx, record.ID)
}

// CreateUser hashes the plaintext password and persists a new record. The
// email is checked before the write so callers get ErrDuplicateEmail even on
// stores whose Create cannot enforce uniqueness transactionally on its own.
func (s *UserService) CreateUser(ctx context.Context, data NewUser, password string) (*User, error) {
	existing, err := s.store.GetAuthRecordByEmail(ctx, data.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errWithMetadata(ErrDuplicateEmail, map[string]any{"email": data.Email})
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	data.PasswordHash = hash
	return s.store.Create(ctx, data)
}

// UpdateUser replaces the directory fields of a record. The stored password
// hash is never touched here; credential changes go through a dedicated
// flow.
func (s *UserService) UpdateUser(ctx context.Context, id string, data NewUser) (*User, error) {
	return s.store.Update(ctx, id, data)
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
