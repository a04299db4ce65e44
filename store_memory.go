package users

import (
	"context"
	"encoding/json"
	"io/fs"
	"strings"
	"sync"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// IDGenerator produces identifiers for new records. The email of the record
// being created is available for deterministic schemes.
type IDGenerator func(email string) (string, error)

type memoryRecord struct {
	User
	PasswordHash string
}

// MemoryStore is an in-memory Store. All methods are safe for concurrent
// use. Email uniqueness is enforced under the store's own write lock.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	byEmail map[string]string
	genID   IDGenerator
	logger  Logger
}

type MemoryStoreOption func(*MemoryStore) error

// WithIDGenerator installs a custom identifier scheme. On collision the
// store retries, falling back to random identifiers.
func WithIDGenerator(gen IDGenerator) MemoryStoreOption {
	return func(s *MemoryStore) error {
		if gen != nil {
			s.genID = gen
		}
		return nil
	}
}

func WithLogger(logger Logger) MemoryStoreOption {
	return func(s *MemoryStore) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// WithFixtureFS seeds the store from a JSON fixture file. Records keep the
// identifiers the fixture assigns them.
func WithFixtureFS(fsys fs.FS, path string) MemoryStoreOption {
	return func(s *MemoryStore) error {
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return errors.Wrap(err, errors.CategoryOperation, "failed to read fixture file").
				WithMetadata(map[string]any{"path": path})
		}

		var fixtures []struct {
			ID             string `json:"id"`
			Email          string `json:"email"`
			FirstName      string `json:"first_name"`
			LastName       string `json:"last_name"`
			OrganizationID string `json:"organization_id"`
			IsAdmin        bool   `json:"is_admin"`
			PasswordHash   string `json:"password_hash"`
		}

		if err := json.Unmarshal(raw, &fixtures); err != nil {
			return errors.Wrap(err, errors.CategoryOperation, "failed to parse fixture file").
				WithMetadata(map[string]any{"path": path})
		}

		for _, f := range fixtures {
			record := memoryRecord{
				User: User{
					ID:             f.ID,
					Email:          f.Email,
					FirstName:      f.FirstName,
					LastName:       f.LastName,
					OrganizationID: f.OrganizationID,
					IsAdmin:        f.IsAdmin,
				},
				PasswordHash: f.PasswordHash,
			}
			s.records[record.ID] = record
			s.byEmail[normalizeEmail(record.Email)] = record.ID
		}

		return nil
	}
}

// NewMemoryStore creates an empty store and applies the given options.
func NewMemoryStore(opts ...MemoryStoreOption) (*MemoryStore, error) {
	s := &MemoryStore{
		records: map[string]memoryRecord{},
		byEmail: map[string]string{},
		genID:   func(string) (string, error) { return uuid.NewString(), nil },
		logger:  defLogger{},
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *MemoryStore) FindAll(ctx context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, record.User)
	}
	return out, nil
}

func (s *MemoryStore) FindByAttributes(ctx context.Context, filter Filter) ([]User, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0)
	for _, record := range s.records {
		if matchesFilter(record.User, filter) {
			out = append(out, record.User)
		}
	}
	return out, nil
}

func matchesFilter(u User, filter Filter) bool {
	for key, want := range filter {
		var have any
		switch key {
		case "id":
			have = u.ID
		case "email":
			have = u.Email
		case "first_name":
			have = u.FirstName
		case "last_name":
			have = u.LastName
		case "organization_id":
			have = u.OrganizationID
		case "is_admin":
			have = u.IsAdmin
		}
		if have != want {
			return false
		}
	}
	return true
}

func (s *MemoryStore) GetByID(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, nil
	}

	user := record.User
	return &user, nil
}

func (s *MemoryStore) GetByIDs(ctx context.Context, ids []string) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(ids))
	for _, id := range ids {
		if record, ok := s.records[id]; ok {
			out = append(out, record.User)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetAuthRecordByEmail(ctx context.Context, email string) (*AuthUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, nil
	}

	record := s.records[id]
	return &AuthUser{
		ID:             record.ID,
		Email:          record.Email,
		OrganizationID: record.OrganizationID,
		IsAdmin:        record.IsAdmin,
		PasswordHash:   record.PasswordHash,
	}, nil
}

func (s *MemoryStore) Create(ctx context.Context, data NewUser) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(data.Email)
	if _, taken := s.byEmail[key]; taken {
		return nil, errWithMetadata(ErrDuplicateEmail, map[string]any{"email": data.Email})
	}

	id, err := s.nextID(data.Email)
	if err != nil {
		return nil, err
	}

	record := memoryRecord{
		User: User{
			ID:             id,
			Email:          data.Email,
			FirstName:      data.FirstName,
			LastName:       data.LastName,
			OrganizationID: data.OrganizationID,
			IsAdmin:        data.IsAdmin,
		},
		PasswordHash: data.PasswordHash,
	}

	s.records[id] = record
	s.byEmail[key] = id

	user := record.User
	return &user, nil
}

// nextID runs the configured generator, retrying on collision and falling
// back to random identifiers when the generator keeps colliding. Callers
// must hold the write lock.
func (s *MemoryStore) nextID(email string) (string, error) {
	for i := 0; i < 3; i++ {
		id, err := s.genID(email)
		if err != nil {
			return "", errors.Wrap(err, errors.CategoryInternal, "id generation failed")
		}
		if _, taken := s.records[id]; !taken {
			return id, nil
		}
		s.logger.Warn("id collision for generated id, retrying")
	}

	for {
		id := uuid.NewString()
		if _, taken := s.records[id]; !taken {
			return id, nil
		}
	}
}

func (s *MemoryStore) Update(ctx context.Context, id string, data NewUser) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return nil, errWithMetadata(ErrUserNotFound, map[string]any{"id": id})
	}

	newKey := normalizeEmail(data.Email)
	oldKey := normalizeEmail(record.Email)
	if newKey != oldKey {
		if _, taken := s.byEmail[newKey]; taken {
			return nil, errWithMetadata(ErrDuplicateEmail, map[string]any{"email": data.Email})
		}
		delete(s.byEmail, oldKey)
		s.byEmail[newKey] = id
	}

	record.User = User{
		ID:             id,
		Email:          data.Email,
		FirstName:      data.FirstName,
		LastName:       data.LastName,
		OrganizationID: data.OrganizationID,
		IsAdmin:        data.IsAdmin,
	}
	s.records[id] = record

	user := record.User
	return &user, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return errWithMetadata(ErrUserNotFound, map[string]any{"id": id})
	}

	delete(s.byEmail, normalizeEmail(record.Email))
	delete(s.records, id)
	return nil
}
