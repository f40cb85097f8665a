// Package dto declares the request bodies accepted by the server and
// re-validated by the gateway.
package dto

import (
	"fmt"
	"strings"
	"time"
)

// localLayout is the ISO local date-time form, read as UTC.
const localLayout = "2006-01-02T15:04:05"

// Timestamp accepts RFC 3339 or a zone-less ISO local date-time.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		return fmt.Errorf("timestamp must not be empty")
	}
	if v, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = v.UTC()
		return nil
	}
	v, err := time.ParseInLocation(localLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("timestamp %q: want RFC 3339 or %s", s, localLayout)
	}
	t.Time = v
	return nil
}

type UserCreate struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"required,email"`
}

// UserPatch is a partial update; absent fields stay nil.
type UserPatch struct {
	Name  *string `json:"name" validate:"omitempty,notblank"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type ItemCreate struct {
	Name        string `json:"name" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId" validate:"omitempty,gt=0"`
}

type ItemPatch struct {
	Name        *string `json:"name" validate:"omitempty,notblank"`
	Description *string `json:"description" validate:"omitempty,notblank"`
	Available   *bool   `json:"available"`
}

type BookingCreate struct {
	ItemID int64      `json:"itemId" validate:"required,gt=0"`
	Start  *Timestamp `json:"start" validate:"required"`
	End    *Timestamp `json:"end" validate:"required"`
}

// CheckTimes enforces the gateway's stricter rule: the booking starts
// no earlier than now and ends after it starts.
func (b BookingCreate) CheckTimes(now time.Time) error {
	if b.Start.Before(now) {
		return fmt.Errorf("start must not be in the past")
	}
	if !b.End.After(b.Start.Time) {
		return fmt.Errorf("end must be after start")
	}
	return nil
}

type RequestCreate struct {
	Description string `json:"description" validate:"notblank"`
}

type CommentCreate struct {
	Text string `json:"text" validate:"notblank"`
}
