package model

import "time"

// ItemRequest is a user's description of an item they would like to
// rent but that nobody has listed yet.  Items answering the request
// reference it through Item.RequestID.
type ItemRequest struct {
	ID          int64     `json:"id"`          // requests.id
	Description string    `json:"description"` // requests.description
	RequesterID int64     `json:"requesterId"` // requests.requester_id
	Created     time.Time `json:"created"`     // requests.created_at
}

// ItemRequestView is a request together with the items listed for it.
type ItemRequestView struct {
	ItemRequest
	Items []Item `json:"items"`
}
