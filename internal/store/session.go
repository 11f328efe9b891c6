package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const sessionTable = "study_sessions"

// sessionRow is the scanned form of a study_sessions row.
type sessionRow struct {
	ID        string `sql:"id"`
	Mode      string `sql:"mode"`
	StartedAt int64  `sql:"started_at"`
	EndedAt   int64  `sql:"ended_at"`
	DeckSize  int    `sql:"deck_size"`
	Answered  int    `sql:"answered"`
	Correct   int    `sql:"correct"`
	Completed bool   `sql:"completed"`
}

var sessionColumns = []string{
	"id", "mode", "started_at", "ended_at", "deck_size", "answered", "correct", "completed",
}

// sessionRepo implements SessionRepo using the ent SQL builder.
type sessionRepo struct {
	drv *entsql.Driver
}

func (r *sessionRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.drv.Dialect())
}

func (r *sessionRepo) Append(ctx context.Context, rec SessionRecord) error {
	query, args := r.builder().Insert(sessionTable).
		Columns(sessionColumns...).
		Values(
			rec.ID,
			rec.Mode,
			rec.StartedAt.UTC().UnixMilli(),
			rec.EndedAt.UTC().UnixMilli(),
			rec.DeckSize,
			rec.Answered,
			rec.Correct,
			rec.Completed,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("append session: %w", err)
	}
	return nil
}

func (r *sessionRepo) Recent(ctx context.Context, limit int) ([]SessionRecord, error) {
	b := r.builder()
	sel := b.Select(sessionColumns...).
		From(b.Table(sessionTable)).
		OrderBy(entsql.Desc("ended_at"), entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var scanned []sessionRow
	if err := entsql.ScanSlice(rows, &scanned); err != nil {
		return nil, fmt.Errorf("scan sessions: %w", err)
	}

	out := make([]SessionRecord, len(scanned))
	for i, row := range scanned {
		out[i] = SessionRecord{
			ID:        row.ID,
			Mode:      row.Mode,
			StartedAt: time.UnixMilli(row.StartedAt).UTC(),
			EndedAt:   time.UnixMilli(row.EndedAt).UTC(),
			DeckSize:  row.DeckSize,
			Answered:  row.Answered,
			Correct:   row.Correct,
			Completed: row.Completed,
		}
	}
	return out, nil
}

// Prune keeps the newest sessions in Recent order, so ties on ended_at
// are broken by id. A non-positive keep is a no-op.
func (r *sessionRepo) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	b := r.builder()
	newest := b.Select("id").
		From(b.Table(sessionTable)).
		OrderBy(entsql.Desc("ended_at"), entsql.Desc("id")).
		Limit(keep)

	query, args := b.Delete(sessionTable).
		Where(entsql.NotIn("id", newest)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("prune sessions: %w", err)
	}
	return nil
}

func (r *sessionRepo) Clear(ctx context.Context) error {
	query, args := r.builder().Delete(sessionTable).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	return nil
}
