package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

// bookingRow is one booking joined with its item and booker.
type bookingRow struct {
	ID       int64     `db:"id"`
	Start    time.Time `db:"start_at"`
	End      time.Time `db:"end_at"`
	ItemID   int64     `db:"item_id"`
	BookerID int64     `db:"booker_id"`
	Status   string    `db:"status"`

	ItemName        string        `db:"item_name"`
	ItemDescription string        `db:"item_description"`
	ItemAvailable   bool          `db:"item_available"`
	ItemOwnerID     int64         `db:"item_owner_id"`
	ItemRequestID   sql.NullInt64 `db:"item_request_id"`

	BookerName  string `db:"booker_name"`
	BookerEmail string `db:"booker_email"`
}

func (r bookingRow) model() model.Booking {
	item := itemRow{
		ID:          r.ItemID,
		Name:        r.ItemName,
		Description: r.ItemDescription,
		Available:   r.ItemAvailable,
		OwnerID:     r.ItemOwnerID,
		RequestID:   r.ItemRequestID,
	}.model()
	booker := model.User{ID: r.BookerID, Name: r.BookerName, Email: r.BookerEmail}
	return model.Booking{
		ID:       r.ID,
		Start:    r.Start.UTC(),
		End:      r.End.UTC(),
		ItemID:   r.ItemID,
		BookerID: r.BookerID,
		Status:   model.BookingStatus(r.Status),
		Item:     &item,
		Booker:   &booker,
	}
}

func bookingModels(rows []bookingRow) []model.Booking {
	out := make([]model.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.model())
	}
	return out
}

var (
	colID     = goqu.I("b.id")
	colStart  = goqu.I("b.start_at")
	colEnd    = goqu.I("b.end_at")
	colItem   = goqu.I("b.item_id")
	colBooker = goqu.I("b.booker_id")
	colStatus = goqu.I("b.status")
	colOwner  = goqu.I("i.owner_id")
)

// bookingSelect joins bookings with items and users so a single query
// returns the booking together with its relations.
func bookingSelect() *goqu.SelectDataset {
	return from(goqu.T("bookings").As("b")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(colItem))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(colBooker))).
		Select(
			colID, colStart, colEnd, colItem, colBooker, colStatus,
			goqu.I("i.name").As("item_name"),
			goqu.I("i.description").As("item_description"),
			goqu.I("i.is_available").As("item_available"),
			colOwner.As("item_owner_id"),
			goqu.I("i.request_id").As("item_request_id"),
			goqu.I("u.name").As("booker_name"),
			goqu.I("u.email").As("booker_email"),
		)
}

type bookingRepo struct{ q sqlx.ExtContext }

func (r bookingRepo) Create(ctx context.Context, b *model.Booking) error {
	id, err := insertID(ctx, r.q, insertInto("bookings").Rows(goqu.Record{
		"start_at":  b.Start.UTC(),
		"end_at":    b.End.UTC(),
		"item_id":   b.ItemID,
		"booker_id": b.BookerID,
		"status":    string(b.Status),
	}))
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r bookingRepo) Get(ctx context.Context, id int64) (model.Booking, error) {
	var row bookingRow
	if err := get(ctx, r.q, &row, bookingSelect().Where(colID.Eq(id))); err != nil {
		return model.Booking{}, err
	}
	return row.model(), nil
}

// UpdateStatus only matches a row still in status from, so of two
// concurrent decisions the second affects no row.
func (r bookingRepo) UpdateStatus(ctx context.Context, id int64, from, to model.BookingStatus) error {
	err := execOne(ctx, r.q, statusUpdate(id, from, to))
	if errors.Is(err, repository.ErrNotFound) {
		return repository.ErrStaleState
	}
	return err
}

func statusUpdate(id int64, from, to model.BookingStatus) *goqu.UpdateDataset {
	return update("bookings").
		Set(goqu.Record{"status": string(to)}).
		Where(goqu.C("id").Eq(id), goqu.C("status").Eq(string(from)))
}

func (r bookingRepo) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.q, deleteFrom("bookings").Where(goqu.C("id").Eq(id)))
}

func (r bookingRepo) List(ctx context.Context, q repository.BookingQuery) ([]model.Booking, error) {
	var rows []bookingRow
	if err := selectAll(ctx, r.q, &rows, bookingListQuery(q)); err != nil {
		return nil, err
	}
	return bookingModels(rows), nil
}

func (r bookingRepo) ListByItemAndBooker(ctx context.Context, itemID, bookerID int64) ([]model.Booking, error) {
	var rows []bookingRow
	ds := bookingSelect().
		Where(colItem.Eq(itemID), colBooker.Eq(bookerID)).
		Order(colStart.Desc(), colID.Desc())
	if err := selectAll(ctx, r.q, &rows, ds); err != nil {
		return nil, err
	}
	return bookingModels(rows), nil
}

func (r bookingRepo) LastApproved(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	return r.first(ctx, adjacentQuery(itemID, colEnd.Lt(now.UTC()), colEnd.Desc()))
}

func (r bookingRepo) NextApproved(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	return r.first(ctx, adjacentQuery(itemID, colEnd.Gt(now.UTC()), colEnd.Asc()))
}

func (r bookingRepo) first(ctx context.Context, ds *goqu.SelectDataset) (*model.Booking, error) {
	var row bookingRow
	err := get(ctx, r.q, &row, ds)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b := row.model()
	return &b, nil
}

// bookingListQuery renders a BookingQuery: the booker or owner filter,
// the state filter at q.Now, newest start first, then the page.
func bookingListQuery(q repository.BookingQuery) *goqu.SelectDataset {
	ds := bookingSelect()
	if q.BookerID != 0 {
		ds = ds.Where(colBooker.Eq(q.BookerID))
	}
	if q.OwnerID != 0 {
		ds = ds.Where(colOwner.Eq(q.OwnerID))
	}
	if cond := stateCondition(q.State, q.Now.UTC()); cond != nil {
		ds = ds.Where(cond)
	}
	return paginate(ds.Order(colStart.Desc(), colID.Desc()), q.Page)
}

func stateCondition(state model.BookingState, now time.Time) exp.Expression {
	if st, ok := state.Status(); ok {
		return colStatus.Eq(string(st))
	}
	switch state {
	case model.StateCurrent:
		return goqu.And(colStart.Lte(now), colEnd.Gt(now))
	case model.StatePast:
		return colEnd.Lt(now)
	case model.StateFuture:
		return colStart.Gt(now)
	}
	return nil
}

func adjacentQuery(itemID int64, cond exp.Expression, order exp.OrderedExpression) *goqu.SelectDataset {
	return bookingSelect().
		Where(colItem.Eq(itemID), colStatus.Eq(string(model.StatusApproved)), cond).
		Order(order, colID.Asc()).
		Limit(1)
}
