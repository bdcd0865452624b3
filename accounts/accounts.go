package accounts

import "time"

// Account is the minimal record the user pool keeps per registered user.
// Username is the store key and is immutable after registration.
type Account struct {
	Username  string    `json:"username"`
	Password  string    `json:"-"` // stored as-is, never verified or serialized
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
