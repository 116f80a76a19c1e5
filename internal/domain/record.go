// internal/domain/record.go
package domain

import "time"

// Record represents one account's last-login state as read from the
// login database. The uid is not stored in the on-disk record; it is the
// record's ordinal position in the file and is attached here by the
// caller, along with the username when one is known.
type Record struct {
	UID       uint32    `json:"uid"`
	Username  string    `json:"username,omitempty"`
	Line      string    `json:"line,omitempty"`       // terminal the login came from
	Host      string    `json:"host,omitempty"`       // originating host, when the layout records one
	LastLogin time.Time `json:"last_login,omitempty"` // zero when the account has never logged in
}

// NeverLoggedIn reports whether the record carries no login at all.
func (r *Record) NeverLoggedIn() bool {
	return r.LastLogin.IsZero()
}

// LoginTime converts a raw epoch-seconds value from the database into a
// time.Time. A stored zero conventionally means "never logged in" and
// maps to the zero time.
func LoginTime(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

// NewRecord creates an empty record for an account that has never
// logged in.
func NewRecord(uid uint32, username string) *Record {
	return &Record{UID: uid, Username: username}
}
