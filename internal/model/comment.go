package model

import "time"

// Comment is feedback left on an item by a user who has actually used
// it.  AuthorName is resolved from the users table when comments are
// read back.
type Comment struct {
	ID         int64     `json:"id"`         // comments.id
	Text       string    `json:"text"`       // comments.text
	ItemID     int64     `json:"itemId"`     // comments.item_id
	AuthorID   int64     `json:"-"`          // comments.author_id
	AuthorName string    `json:"authorName"` // users.name of the author
	Created    time.Time `json:"created"`    // comments.created_at
}
