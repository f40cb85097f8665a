package mysql

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/shareit/internal/model"
)

type userRow struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
}

func (r userRow) model() model.User {
	return model.User{ID: r.ID, Name: r.Name, Email: r.Email}
}

type userRepo struct{ q sqlx.ExtContext }

func (r userRepo) Create(ctx context.Context, u *model.User) error {
	id, err := insertID(ctx, r.q, insertInto("users").Rows(goqu.Record{
		"name":  u.Name,
		"email": u.Email,
	}))
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (r userRepo) Get(ctx context.Context, id int64) (model.User, error) {
	var row userRow
	err := get(ctx, r.q, &row, from("users").Select("id", "name", "email").Where(goqu.C("id").Eq(id)))
	if err != nil {
		return model.User{}, err
	}
	return row.model(), nil
}

func (r userRepo) List(ctx context.Context) ([]model.User, error) {
	var rows []userRow
	if err := selectAll(ctx, r.q, &rows, from("users").Select("id", "name", "email").Order(goqu.C("id").Asc())); err != nil {
		return nil, err
	}
	out := make([]model.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.model())
	}
	return out, nil
}

// Update does not report a missing row: MySQL counts only changed rows
// as affected, so callers load the user first.
func (r userRepo) Update(ctx context.Context, u model.User) error {
	_, err := exec(ctx, r.q, update("users").
		Set(goqu.Record{"name": u.Name, "email": u.Email}).
		Where(goqu.C("id").Eq(u.ID)))
	return err
}

func (r userRepo) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.q, deleteFrom("users").Where(goqu.C("id").Eq(id)))
}

func (r userRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.q, "users", id)
}

func exists(ctx context.Context, q sqlx.QueryerContext, table string, id int64) (bool, error) {
	var n int64
	if err := get(ctx, q, &n, from(table).Select(goqu.COUNT("*")).Where(goqu.C("id").Eq(id))); err != nil {
		return false, err
	}
	return n > 0, nil
}
