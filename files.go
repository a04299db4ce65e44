package users

import "embed"

// FixturesPath is where the embedded seed data lives inside FixturesFS.
const FixturesPath = "data/fixtures/users.json"

//go:embed data/fixtures/users.json
var FixturesFS embed.FS
