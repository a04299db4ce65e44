package users

// User is a directory record. It is a value object: the store hands out
// copies, never shared pointers into its own state. The password hash is
// deliberately not part of this type; authentication uses AuthUser.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	OrganizationID string `json:"organization_id"`
	IsAdmin        bool   `json:"is_admin"`
}

// FullName joins first and last name with a single space.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// AuthUser is the store-internal record variant carrying the password hash.
// It never leaves the authentication flow.
type AuthUser struct {
	ID             string
	Email          string
	OrganizationID string
	IsAdmin        bool
	PasswordHash   string
}

// NewUser is the data required to create a user. The store assigns the
// identifier; the password hash is supplied pre-hashed by the caller.
type NewUser struct {
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	OrganizationID string `json:"organization_id"`
	IsAdmin        bool   `json:"is_admin"`
	PasswordHash   string `json:"-"`
}

// SessionUser is the claim set decoded from a verified session token: the
// authorization subject. A nil *SessionUser means an anonymous caller.
//
// None of the fields use omitempty: the token's user claim must always
// carry is_admin, false included.
type SessionUser struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	OrganizationID string `json:"organization_id"`
	IsAdmin        bool   `json:"is_admin"`
}

// Profile is the self-view a caller gets of its own identity. It shares the
// SessionUser shape and is only ever derived from the caller's own claims.
type Profile SessionUser

// SessionUserFromAuthRecord projects an auth record to session claims,
// dropping the password hash.
func SessionUserFromAuthRecord(record AuthUser) SessionUser {
	return SessionUser{
		ID:             record.ID,
		Email:          record.Email,
		OrganizationID: record.OrganizationID,
		IsAdmin:        record.IsAdmin,
	}
}

// PublicUser is the directory projection exposed to other users. The
// organization is exposed only indirectly through authorization, and the
// admin flag only on Profile.
type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

// PublicUserFrom builds the public projection of a record.
func PublicUserFrom(u User) PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
	}
}

// PublicUsersFrom maps a record list to its public projection. It always
// returns a non nil slice so list endpoints serialize to [] and not null.
func PublicUsersFrom(list []User) []PublicUser {
	out := make([]PublicUser, 0, len(list))
	for _, u := range list {
		out = append(out, PublicUserFrom(u))
	}
	return out
}
