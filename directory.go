package users

import (
	"context"
)

// Directory applies the visibility rules between a caller and the records in
// the store:
//
//   - admins see every record
//   - everyone else sees only their own organization
//   - anonymous callers see nothing
//
// Denied and absent are indistinguishable on reads: both come back as nil or
// an empty list, never as an authorization error.
type Directory struct {
	store  Store
	logger Logger
}

func NewDirectory(store Store) *Directory {
	return &Directory{
		store:  store,
		logger: defLogger{},
	}
}

func (d *Directory) WithLogger(logger Logger) *Directory {
	d.logger = logger
	return d
}

// GetProfile projects the caller's own claims. It never consults the store:
// the token is the source of truth for the session's identity.
func (d *Directory) GetProfile(caller *SessionUser) *Profile {
	if caller == nil {
		return nil
	}

	profile := Profile(*caller)
	return &profile
}

// GetUserDetails returns the record for id if the caller may see it. Not
// visible and not found are the same nil.
func (d *Directory) GetUserDetails(ctx context.Context, caller *SessionUser, id string) (*User, error) {
	if caller == nil {
		return nil, nil
	}

	user, err := d.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, nil
	}

	if caller.IsAdmin {
		return user, nil
	}

	if user.OrganizationID != caller.OrganizationID {
		return nil, nil
	}

	return user, nil
}

// ListUsers returns the records the caller may see. The slice is never nil.
func (d *Directory) ListUsers(ctx context.Context, caller *SessionUser) ([]User, error) {
	if caller == nil {
		return []User{}, nil
	}

	if caller.IsAdmin {
		return d.store.FindAll(ctx)
	}

	return d.store.FindByAttributes(ctx, Filter{
		"organization_id": caller.OrganizationID,
	})
}

// ListUsersByIDs resolves a batch of ids to the records the caller may see,
// in input order. Invisible and unknown ids are skipped the same way.
func (d *Directory) ListUsersByIDs(ctx context.Context, caller *SessionUser, ids []string) ([]User, error) {
	if caller == nil {
		return []User{}, nil
	}

	found, err := d.store.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	if caller.IsAdmin {
		return found, nil
	}

	out := make([]User, 0, len(found))
	for _, user := range found {
		if user.OrganizationID == caller.OrganizationID {
			out = append(out, user)
		}
	}
	return out, nil
}
