package users_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	users "github.com/goliatone/go-users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionClaims_JSON(t *testing.T) {
	now := time.Unix(1700000000, 0)
	claims := users.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		User: users.SessionUser{
			ID:             "user-1",
			Email:          "cloe@example.com",
			OrganizationID: "org-1",
			IsAdmin:        false,
		},
	}

	raw, err := json.Marshal(claims)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))

	assert.Equal(t, "user-1", payload["sub"])
	assert.Equal(t, float64(1700003600), payload["exp"])

	user, ok := payload["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user-1", user["id"])
	assert.Equal(t, "cloe@example.com", user["email"])
	assert.Equal(t, "org-1", user["organization_id"])

	// is_admin must serialize even when false
	val, present := user["is_admin"]
	require.True(t, present)
	assert.Equal(t, false, val)
}

func TestSessionClaims_Accessors(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	claims := &users.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-2",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		User: users.SessionUser{ID: "user-1"},
	}

	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, now.Add(time.Hour), claims.Expires())
	assert.Equal(t, now, claims.IssuedAt())

	t.Run("falls back to subject without user claim", func(t *testing.T) {
		empty := &users.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-2"},
		}
		assert.Equal(t, "user-2", empty.UserID())
		assert.True(t, empty.Expires().IsZero())
	})
}
