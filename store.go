package users

import "context"

// Filter selects records by exact attribute match. Keys must name a known
// record field; see FilterableAttributes.
type Filter map[string]any

// FilterableAttributes lists the record fields FindByAttributes accepts.
var FilterableAttributes = []string{
	"id",
	"email",
	"first_name",
	"last_name",
	"organization_id",
	"is_admin",
}

func validateFilter(filter Filter) error {
	for key := range filter {
		known := false
		for _, attr := range FilterableAttributes {
			if key == attr {
				known = true
				break
			}
		}
		if !known {
			return errWithMetadata(ErrInvalidFilter, map[string]any{"attribute": key})
		}
	}
	return nil
}

// Store is the repository contract for user records.
//
// Reads treat absence as a value: GetByID and GetAuthRecordByEmail return
// (nil, nil) for a missing record, and GetByIDs silently skips unknown ids.
// Writes treat absence as an error: Update and Delete return ErrUserNotFound
// when the target id does not exist.
type Store interface {
	// FindAll returns every record. The slice is never nil.
	FindAll(ctx context.Context) ([]User, error)

	// FindByAttributes returns the records matching every filter entry.
	// An empty filter matches everything; an unknown attribute name is
	// ErrInvalidFilter.
	FindByAttributes(ctx context.Context, filter Filter) ([]User, error)

	// GetByID returns the record for id, or nil when absent.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByIDs returns the records for ids, in input order, skipping ids
	// that resolve to nothing. Duplicated input ids yield duplicated
	// output records.
	GetByIDs(ctx context.Context, ids []string) ([]User, error)

	// GetAuthRecordByEmail returns the credential record for email, or nil
	// when absent.
	GetAuthRecordByEmail(ctx context.Context, email string) (*AuthUser, error)

	// Create persists a new record, assigning its identifier. A taken
	// email is ErrDuplicateEmail.
	Create(ctx context.Context, data NewUser) (*User, error)

	// Update replaces the directory fields of the record with the given
	// id, preserving the stored password hash. A missing id is
	// ErrUserNotFound.
	Update(ctx context.Context, id string, data NewUser) (*User, error)

	// Delete removes the record with the given id. A missing id is
	// ErrUserNotFound.
	Delete(ctx context.Context, id string) error
}
