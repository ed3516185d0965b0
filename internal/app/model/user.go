package model

// Session is the current authenticated identity. At most one exists at a
// time; login and register replace it wholesale, profile updates patch it
// field by field, logout clears it.
type Session struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ProfileUpdate carries the patchable session fields. Nil means
// "leave unchanged".
type ProfileUpdate struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Avatar *string `json:"avatar"`
}
