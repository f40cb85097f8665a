package service

import (
	"fmt"
	"time"

	"github.com/iliyamo/shareit/internal/model"
)

// NewPage validates optional paging parameters.  When either value is
// absent the page is unbounded; otherwise from must be >= 0 and size
// > 0.
func NewPage(from, size *int) (model.Page, error) {
	if from == nil || size == nil {
		return model.Page{}, nil
	}
	if *from < 0 {
		return model.Page{}, fmt.Errorf("%w: from must not be negative", ErrInvalidArgument)
	}
	if *size <= 0 {
		return model.Page{}, fmt.Errorf("%w: size must be positive", ErrInvalidArgument)
	}
	return model.Page{From: *from, Size: *size}, nil
}

// Clock returns the current instant.  Services default to UTC wall
// time; tests substitute a fixed clock.
type Clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }
