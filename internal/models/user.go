package models

// User is a room participant's live presence: the identity peers see
// next to a remote cursor. ID equals the connection id assigned at
// upgrade time; Color is assigned on join and used for cursor display.
// Cursor coordinates are stored as reported and may transiently fall
// outside the grid.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Color    string `json:"color"`
	CursorX  int    `json:"cursorX"`
	CursorY  int    `json:"cursorY"`
}

// Account is a registered user as stored by the persistence layer.
// The password hash never leaves the server.
type Account struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	CreatedAt    int64  `json:"createdAt"`
}
