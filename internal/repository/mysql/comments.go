package mysql

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/shareit/internal/model"
)

type commentRow struct {
	ID         int64     `db:"id"`
	Text       string    `db:"text"`
	ItemID     int64     `db:"item_id"`
	AuthorID   int64     `db:"author_id"`
	AuthorName string    `db:"author_name"`
	Created    time.Time `db:"created_at"`
}

type commentRepo struct{ q sqlx.ExtContext }

func (r commentRepo) Create(ctx context.Context, c *model.Comment) error {
	id, err := insertID(ctx, r.q, insertInto("comments").Rows(goqu.Record{
		"text":       c.Text,
		"item_id":    c.ItemID,
		"author_id":  c.AuthorID,
		"created_at": c.Created.UTC(),
	}))
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r commentRepo) ListByItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
	var rows []commentRow
	if err := selectAll(ctx, r.q, &rows, commentsQuery(itemID)); err != nil {
		return nil, err
	}
	out := make([]model.Comment, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.Comment{
			ID:         row.ID,
			Text:       row.Text,
			ItemID:     row.ItemID,
			AuthorID:   row.AuthorID,
			AuthorName: row.AuthorName,
			Created:    row.Created.UTC(),
		})
	}
	return out, nil
}

func commentsQuery(itemID int64) *goqu.SelectDataset {
	return from(goqu.T("comments").As("c")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("c.author_id")))).
		Select(
			goqu.I("c.id"), goqu.I("c.text"), goqu.I("c.item_id"), goqu.I("c.author_id"),
			goqu.I("u.name").As("author_name"), goqu.I("c.created_at"),
		).
		Where(goqu.I("c.item_id").Eq(itemID)).
		Order(goqu.I("c.created_at").Desc(), goqu.I("c.id").Desc())
}
