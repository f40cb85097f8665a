package mysql

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestBookingListQuery(t *testing.T) {
	tests := []struct {
		name     string
		q        repository.BookingQuery
		contains []string
		absent   []string
	}{
		{
			name:     "booker all",
			q:        repository.BookingQuery{BookerID: 7, State: model.StateAll, Now: now},
			contains: []string{"`b`.`booker_id` = ?", "ORDER BY `b`.`start_at` DESC, `b`.`id` DESC"},
			absent:   []string{"LIMIT", "`i`.`owner_id` = ?"},
		},
		{
			name:     "owner current",
			q:        repository.BookingQuery{OwnerID: 3, State: model.StateCurrent, Now: now},
			contains: []string{"`i`.`owner_id` = ?", "`b`.`start_at` <= ?", "`b`.`end_at` > ?"},
		},
		{
			name:     "past",
			q:        repository.BookingQuery{BookerID: 1, State: model.StatePast, Now: now},
			contains: []string{"`b`.`end_at` < ?"},
		},
		{
			name:     "future",
			q:        repository.BookingQuery{BookerID: 1, State: model.StateFuture, Now: now},
			contains: []string{"`b`.`start_at` > ?"},
		},
		{
			name:     "waiting paged",
			q:        repository.BookingQuery{BookerID: 1, State: model.StateWaiting, Now: now, Page: model.Page{From: 20, Size: 10}},
			contains: []string{"`b`.`status` = ?", "LIMIT ?", "OFFSET ?"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := bookingListQuery(tt.q).ToSQL()
			require.NoError(t, err)
			assert.Contains(t, query, "INNER JOIN `items` AS `i`")
			assert.Contains(t, query, "INNER JOIN `users` AS `u`")
			for _, frag := range tt.contains {
				assert.Contains(t, query, frag)
			}
			for _, frag := range tt.absent {
				assert.NotContains(t, query, frag)
			}
			assert.NotEmpty(t, args)
		})
	}
}

func TestBookingListQueryStatusArg(t *testing.T) {
	_, args, err := bookingListQuery(repository.BookingQuery{
		OwnerID: 3, State: model.StateRejected, Now: now,
	}).ToSQL()
	require.NoError(t, err)
	assert.Contains(t, args, "REJECTED")
	assert.Contains(t, args, int64(3))
}

func TestSearchQuery(t *testing.T) {
	query, args, err := searchQuery("50%_off", model.Page{From: 5, Size: 5}).ToSQL()
	require.NoError(t, err)
	assert.Contains(t, query, "`is_available` IS TRUE")
	assert.Contains(t, query, "(`name` LIKE ?) OR (`description` LIKE ?)")
	assert.NotContains(t, query, "BINARY")
	assert.Contains(t, query, "ORDER BY `id` ASC")
	assert.Contains(t, args, `%50\%\_off%`)
}

func TestOthersQuery(t *testing.T) {
	query, args, err := othersQuery(4, model.Page{}).ToSQL()
	require.NoError(t, err)
	assert.Contains(t, query, "`requester_id` != ?")
	assert.Contains(t, query, "ORDER BY `created_at` DESC, `id` DESC")
	assert.NotContains(t, query, "LIMIT")
	assert.Equal(t, []interface{}{int64(4)}, args)
}

func TestAdjacentQuery(t *testing.T) {
	query, args, err := adjacentQuery(9, colEnd.Gt(now), colEnd.Asc()).ToSQL()
	require.NoError(t, err)
	assert.Contains(t, query, "`b`.`end_at` > ?")
	assert.Contains(t, query, "ORDER BY `b`.`end_at` ASC, `b`.`id` ASC")
	assert.Contains(t, query, "LIMIT ?")
	assert.Contains(t, args, "APPROVED")
}

func TestCommentsQuery(t *testing.T) {
	query, _, err := commentsQuery(2).ToSQL()
	require.NoError(t, err)
	assert.Contains(t, query, "`u`.`name` AS `author_name`")
	assert.Contains(t, query, "ORDER BY `c`.`created_at` DESC, `c`.`id` DESC")
}

func TestStatusUpdate(t *testing.T) {
	query, args, err := statusUpdate(5, model.StatusWaiting, model.StatusApproved).ToSQL()
	require.NoError(t, err)
	assert.Contains(t, query, "UPDATE `bookings` SET `status`=?")
	assert.Contains(t, query, "`id` = ?")
	assert.Contains(t, query, "`status` = ?")
	assert.Equal(t, []interface{}{"APPROVED", int64(5), "WAITING"}, args)
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(fmt.Errorf("scan: %w", sql.ErrNoRows)), repository.ErrNotFound)
	assert.ErrorIs(t, translate(&mysqldrv.MySQLError{Number: 1062}), repository.ErrEmailExists)
	assert.ErrorIs(t, translate(&mysqldrv.MySQLError{Number: 1451}), repository.ErrReferenced)
	assert.ErrorIs(t, translate(&mysqldrv.MySQLError{Number: 1452}), repository.ErrNotFound)

	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
}
