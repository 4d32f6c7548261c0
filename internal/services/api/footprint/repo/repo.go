// Package repo provides postgres access for footprint scan summaries
package repo

import (
	"context"

	"footprint/internal/modkit/repokit"
	perr "footprint/internal/platform/errors"

	"github.com/google/uuid"
)

// ResultRow is one persisted scan summary
type ResultRow struct {
	ID             uuid.UUID
	UserID         string
	Score          int
	BreachCount    int
	PlatformsFound string
	Summary        string
}

// Repo is the minimal persistence surface for footprint
type Repo interface {
	InsertResult(ctx context.Context, row ResultRow) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) InsertResult(ctx context.Context, row ResultRow) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	const sql = `
insert into footprint_results (id, user_id, score, breach_count, platforms_found, summary, created_at)
values ($1, $2, $3, $4, $5, $6, now())
`
	_, err := r.q.Exec(ctx, sql, row.ID, row.UserID, row.Score, row.BreachCount, row.PlatformsFound, row.Summary)
	return perr.FromPostgres(err, "insert footprint result failed")
}

func (r *queries) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	const sql = `
delete from footprint_results
where user_id = $1
`
	tag, err := r.q.Exec(ctx, sql, userID)
	if err != nil {
		return 0, perr.FromPostgres(err, "delete footprint results failed")
	}
	return tag.RowsAffected(), nil
}
