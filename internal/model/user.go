package model

// User represents a marketplace participant as stored in the `users`
// table.  A user may own items, book items owned by others and post item
// requests.
//
// Fields:
//  ID    – primary key identifier of the user.
//  Name  – display name.
//  Email – unique email address (compared case-insensitively).
type User struct {
	ID    int64  `json:"id"`    // users.id
	Name  string `json:"name"`  // users.name
	Email string `json:"email"` // users.email
}

// UserPatch carries a partial user update.  A nil field means "not
// present in the request" and leaves the stored value untouched.
type UserPatch struct {
	Name  *string
	Email *string
}

// Apply copies every present field of the patch onto u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}
