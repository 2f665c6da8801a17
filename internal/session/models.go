package session

import "time"

// Session is the record stored against a token for the lifetime of a login.
// Expiry is owned by the store's TTL, not by the payload, because validation
// slides the window forward on every hit.
type Session struct {
	BreederID int       `json:"breeder_id"`
	CreatedAt time.Time `json:"created_at"`
}
