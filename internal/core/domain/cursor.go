package domain

import (
	"encoding/base64"
	"encoding/json"
)

// CursorVersion is the current cursor format version.
const CursorVersion = 1

// CursorKey is the cursor store key for the drive change stream.
const CursorKey = "drive.start_page_token"

// Cursor tracks the position in the drive change stream.
type Cursor struct {
	// Version is the cursor format version for future compatibility.
	Version int `json:"v"`

	// StartPageToken is the token to pass to the next delta listing.
	StartPageToken string `json:"start_page_token"`
}

// NewCursor creates a cursor at the given start token.
func NewCursor(startPageToken string) *Cursor {
	return &Cursor{
		Version:        CursorVersion,
		StartPageToken: startPageToken,
	}
}

// Encode serialises the cursor to a base64 string for storage.
func (c *Cursor) Encode() string {
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeCursor deserialises a cursor from a base64 string.
// An empty string decodes to an empty cursor.
func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return NewCursor(""), nil
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var cursor Cursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, ErrInvalidCursor
	}

	// Version check for future migrations
	if cursor.Version > CursorVersion {
		return nil, ErrInvalidCursor
	}

	return &cursor, nil
}

// IsEmpty returns true if the cursor has no sync state.
func (c *Cursor) IsEmpty() bool {
	return c.StartPageToken == ""
}
