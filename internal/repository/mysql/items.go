package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/shareit/internal/model"
)

var itemColumns = []interface{}{"id", "name", "description", "is_available", "owner_id", "request_id"}

type itemRow struct {
	ID          int64         `db:"id"`
	Name        string        `db:"name"`
	Description string        `db:"description"`
	Available   bool          `db:"is_available"`
	OwnerID     int64         `db:"owner_id"`
	RequestID   sql.NullInt64 `db:"request_id"`
}

func (r itemRow) model() model.Item {
	it := model.Item{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Available:   r.Available,
		OwnerID:     r.OwnerID,
	}
	if r.RequestID.Valid {
		id := r.RequestID.Int64
		it.RequestID = &id
	}
	return it
}

func itemModels(rows []itemRow) []model.Item {
	out := make([]model.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.model())
	}
	return out
}

func nullID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

type itemRepo struct{ q sqlx.ExtContext }

func (r itemRepo) Create(ctx context.Context, it *model.Item) error {
	id, err := insertID(ctx, r.q, insertInto("items").Rows(goqu.Record{
		"name":         it.Name,
		"description":  it.Description,
		"is_available": it.Available,
		"owner_id":     it.OwnerID,
		"request_id":   nullID(it.RequestID),
	}))
	if err != nil {
		return err
	}
	it.ID = id
	return nil
}

func (r itemRepo) Get(ctx context.Context, id int64) (model.Item, error) {
	var row itemRow
	if err := get(ctx, r.q, &row, from("items").Select(itemColumns...).Where(goqu.C("id").Eq(id))); err != nil {
		return model.Item{}, err
	}
	return row.model(), nil
}

func (r itemRepo) Update(ctx context.Context, it model.Item) error {
	_, err := exec(ctx, r.q, update("items").
		Set(goqu.Record{
			"name":         it.Name,
			"description":  it.Description,
			"is_available": it.Available,
		}).
		Where(goqu.C("id").Eq(it.ID)))
	return err
}

func (r itemRepo) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.q, deleteFrom("items").Where(goqu.C("id").Eq(id)))
}

func (r itemRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	var rows []itemRow
	ds := from("items").Select(itemColumns...).
		Where(goqu.C("owner_id").Eq(ownerID)).
		Order(goqu.C("id").Asc())
	if err := selectAll(ctx, r.q, &rows, ds); err != nil {
		return nil, err
	}
	return itemModels(rows), nil
}

func (r itemRepo) Search(ctx context.Context, text string, page model.Page) ([]model.Item, error) {
	var rows []itemRow
	if err := selectAll(ctx, r.q, &rows, searchQuery(text, page)); err != nil {
		return nil, err
	}
	return itemModels(rows), nil
}

func (r itemRepo) ListByRequests(ctx context.Context, requestIDs []int64) ([]model.Item, error) {
	if len(requestIDs) == 0 {
		return []model.Item{}, nil
	}
	var rows []itemRow
	ds := from("items").Select(itemColumns...).
		Where(goqu.C("request_id").In(requestIDs)).
		Order(goqu.C("id").Asc())
	if err := selectAll(ctx, r.q, &rows, ds); err != nil {
		return nil, err
	}
	return itemModels(rows), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchQuery matches available items whose name or description
// contains text.  The mysql dialect renders ILike as a plain LIKE,
// which is case-insensitive under the table collation.
func searchQuery(text string, page model.Page) *goqu.SelectDataset {
	pattern := "%" + likeEscaper.Replace(text) + "%"
	ds := from("items").Select(itemColumns...).
		Where(
			goqu.C("is_available").IsTrue(),
			goqu.Or(
				goqu.C("name").ILike(pattern),
				goqu.C("description").ILike(pattern),
			),
		).
		Order(goqu.C("id").Asc())
	return paginate(ds, page)
}

func paginate(ds *goqu.SelectDataset, page model.Page) *goqu.SelectDataset {
	if page.Unbounded() {
		return ds
	}
	return ds.Limit(uint(page.Size)).Offset(uint(page.From))
}
