package mysql

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/shareit/internal/model"
)

var requestColumns = []interface{}{"id", "description", "requester_id", "created_at"}

type requestRow struct {
	ID          int64     `db:"id"`
	Description string    `db:"description"`
	RequesterID int64     `db:"requester_id"`
	Created     time.Time `db:"created_at"`
}

func (r requestRow) model() model.ItemRequest {
	return model.ItemRequest{
		ID:          r.ID,
		Description: r.Description,
		RequesterID: r.RequesterID,
		Created:     r.Created.UTC(),
	}
}

func requestModels(rows []requestRow) []model.ItemRequest {
	out := make([]model.ItemRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.model())
	}
	return out
}

type requestRepo struct{ q sqlx.ExtContext }

func (r requestRepo) Create(ctx context.Context, req *model.ItemRequest) error {
	id, err := insertID(ctx, r.q, insertInto("requests").Rows(goqu.Record{
		"description":  req.Description,
		"requester_id": req.RequesterID,
		"created_at":   req.Created.UTC(),
	}))
	if err != nil {
		return err
	}
	req.ID = id
	return nil
}

func (r requestRepo) Get(ctx context.Context, id int64) (model.ItemRequest, error) {
	var row requestRow
	if err := get(ctx, r.q, &row, from("requests").Select(requestColumns...).Where(goqu.C("id").Eq(id))); err != nil {
		return model.ItemRequest{}, err
	}
	return row.model(), nil
}

func (r requestRepo) ListByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
	var rows []requestRow
	ds := from("requests").Select(requestColumns...).
		Where(goqu.C("requester_id").Eq(requesterID)).
		Order(goqu.C("created_at").Desc(), goqu.C("id").Desc())
	if err := selectAll(ctx, r.q, &rows, ds); err != nil {
		return nil, err
	}
	return requestModels(rows), nil
}

func (r requestRepo) ListOthers(ctx context.Context, requesterID int64, page model.Page) ([]model.ItemRequest, error) {
	var rows []requestRow
	if err := selectAll(ctx, r.q, &rows, othersQuery(requesterID, page)); err != nil {
		return nil, err
	}
	return requestModels(rows), nil
}

func othersQuery(requesterID int64, page model.Page) *goqu.SelectDataset {
	ds := from("requests").Select(requestColumns...).
		Where(goqu.C("requester_id").Neq(requesterID)).
		Order(goqu.C("created_at").Desc(), goqu.C("id").Desc())
	return paginate(ds, page)
}
