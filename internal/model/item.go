package model

// Item is a thing a user offers for rent.  Items belong to exactly one
// owner and may point back to the item request they were listed for.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – short item name.
//  Description – free-text description used by search.
//  Available   – whether new bookings may be created for the item.
//  OwnerID     – user who listed the item.
//  RequestID   – item request this item fulfils (nil if none).
type Item struct {
	ID          int64  `json:"id"`                  // items.id
	Name        string `json:"name"`                // items.name
	Description string `json:"description"`         // items.description
	Available   bool   `json:"available"`           // items.is_available
	OwnerID     int64  `json:"ownerId"`             // items.owner_id
	RequestID   *int64 `json:"requestId,omitempty"` // items.request_id (nullable)
}

// NewItem holds the values supplied when an owner lists an item.
type NewItem struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// ItemPatch is a partial item update.  Only non-nil fields are applied.
type ItemPatch struct {
	Name        *string
	Description *string
	Available   *bool
}

// Apply copies every present field of the patch onto it.
func (p ItemPatch) Apply(it *Item) {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Available != nil {
		it.Available = *p.Available
	}
}

// BookingRef is the compact booking projection shown on an item to its
// owner (last and next booking).
type BookingRef struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// ItemView is an item as rendered to a viewer: comments are always
// included, last/next bookings only when the viewer owns the item.
type ItemView struct {
	Item
	LastBooking *BookingRef `json:"lastBooking"`
	NextBooking *BookingRef `json:"nextBooking"`
	Comments    []Comment   `json:"comments"`
}
