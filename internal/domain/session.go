package domain

import "time"

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session carries the remote API token. Expiry is enforced by the API and by
// the cookie lifetime, never checked here.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

func (s Session) Valid() bool { return s.Token != "" }
