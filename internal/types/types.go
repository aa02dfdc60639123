// Package types holds the records exchanged between the HTTP layer and the
// storage backends. Keeping them in one place prevents import cycles:
// handlers and storage can both import types without depending on each
// other.
//
// Both records are loosely typed: every field is a pointer, so a field the
// client did not send stays nil and is stored and returned as JSON null.
// Nothing is required.
package types

// Profile is the single user profile of a deployment.
//
// ID is generated by the service (a random UUID) when the profile is created,
// so it is stored as the document's _id string as-is.
type Profile struct {
	ID       *string `json:"id"       bson:"_id,omitempty"`
	Username *string `json:"username" bson:"username"`
	Role     *string `json:"role"     bson:"role"`
	Color    *string `json:"color"    bson:"color"`
}

// Tank is a tank placed at a location.
//
// ID is assigned by the store. MongoDB hands out an ObjectID, which is
// rendered to clients as its 24-character hex string.
type Tank struct {
	ID       *string  `json:"id"`
	Location *string  `json:"location"`
	Lat      *float64 `json:"lat"`
	Long     *float64 `json:"long"`
}

// String returns a pointer to s. Handy for building records in code and
// tests, since every record field is optional.
func String(s string) *string { return &s }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }
