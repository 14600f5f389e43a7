package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"enrolladmin/internal/resource"
	"enrolladmin/internal/sandbox"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const schema = `
CREATE TABLE IF NOT EXISTS sandbox_records (
	resource text   NOT NULL,
	id       bigint NOT NULL,
	doc      jsonb  NOT NULL,
	search   text   NOT NULL,
	PRIMARY KEY (resource, id)
)`

// Records serves the sandbox resources from postgres
type Records struct {
	db *pgxpool.Pool
}

var _ sandbox.Backend = (*Records)(nil)

func NewRecords(db *pgxpool.Pool) *Records {
	return &Records{db: db}
}

// Migrate creates the records table
func (r *Records) Migrate(ctx context.Context) error {
	_, err := r.db.Exec(ctx, schema)
	return err
}

// Seed loads the generated data set into an empty table and returns the
// number of rows inserted. A table that already holds rows is left alone.
func (r *Records) Seed(ctx context.Context, seed int64) (int64, error) {
	data, err := sandbox.Generate(seed)
	if err != nil {
		return 0, err
	}

	var inserted int64
	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `LOCK TABLE sandbox_records IN EXCLUSIVE MODE`); err != nil {
			return err
		}
		var n int
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM sandbox_records`).Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		var rows [][]any
		for _, t := range resource.Types {
			for _, raw := range data[t] {
				rows = append(rows, []any{string(t), gjson.GetBytes(raw, "id").Int(), string(raw), sandbox.SearchText(t, raw)})
			}
		}
		inserted, err = tx.CopyFrom(ctx,
			pgx.Identifier{"sandbox_records"},
			[]string{"resource", "id", "doc", "search"},
			pgx.CopyFromRows(rows),
		)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("seed records: %w", err)
	}
	log.Debug().Int64("seed", seed).Int64("rows", inserted).Msg("sandbox records seeded")
	return inserted, nil
}

// List searches, filters and sorts in SQL; paging happens on the result so
// the bare envelope can still return every match.
func (r *Records) List(ctx context.Context, t resource.Type, req sandbox.ListRequest) (sandbox.ListResult, error) {
	if err := sandbox.CheckRequest(t, req); err != nil {
		return sandbox.ListResult{}, err
	}

	sql, args := listQuery(t, req)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return sandbox.ListResult{}, err
	}
	defer rows.Close()

	var all []json.RawMessage
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return sandbox.ListResult{}, err
		}
		all = append(all, doc)
	}
	if err := rows.Err(); err != nil {
		return sandbox.ListResult{}, err
	}
	return sandbox.Paginate(all, req), nil
}

// Delete removes one row by id
func (r *Records) Delete(ctx context.Context, t resource.Type, id int64) error {
	if !slices.Contains(resource.Types, t) {
		return sandbox.ErrUnknownResource
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM sandbox_records WHERE resource = $1 AND id = $2`, string(t), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return sandbox.ErrNotFound
	}
	log.Info().Str("resource", string(t)).Int64("id", id).Msg("sandbox record deleted")
	return nil
}

// Count returns the number of rows of a resource
func (r *Records) Count(ctx context.Context, t resource.Type) (int, error) {
	if !slices.Contains(resource.Types, t) {
		return 0, sandbox.ErrUnknownResource
	}
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM sandbox_records WHERE resource = $1`, string(t)).Scan(&n)
	return n, err
}

// listQuery mirrors the ordering of the in-memory store: nulls first,
// numbers and decimal strings by value, other text case-insensitively,
// ties by id. Keys and values are always bound as parameters.
func listQuery(t resource.Type, req sandbox.ListRequest) (string, []any) {
	args := []any{string(t)}
	param := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args)) + "::text"
	}

	var b strings.Builder
	b.WriteString(`SELECT doc FROM sandbox_records WHERE resource = $1`)
	if req.Search != "" {
		fmt.Fprintf(&b, ` AND strpos(search, %s) > 0`, param(strings.ToLower(req.Search)))
	}
	for _, k := range slices.Sorted(maps.Keys(req.Filters)) {
		v := req.Filters[k]
		if field, before, ok := sandbox.RangeFilter(k); ok {
			op := ">="
			if before {
				op = "<"
			}
			fmt.Fprintf(&b, ` AND (doc->>%s) COLLATE "C" %s %s`, param(field), op, param(v))
			continue
		}
		fmt.Fprintf(&b, ` AND doc->>%s = %s`, param(k), param(v))
	}

	if req.SortBy == "" {
		b.WriteString(` ORDER BY id`)
		return b.String(), args
	}
	dir := "ASC"
	if req.SortOrder == "desc" {
		dir = "DESC"
	}
	f := param(req.SortBy)
	fmt.Fprintf(&b, ` ORDER BY coalesce(jsonb_typeof(doc->%[1]s), 'null') <> 'null' %[2]s,`+
		` CASE WHEN jsonb_typeof(doc->%[1]s) = 'number' OR doc->>%[1]s ~ '^-?[0-9]+(\.[0-9]+)?$'`+
		` THEN (doc->>%[1]s)::numeric END %[2]s,`+
		` lower(doc->>%[1]s) COLLATE "C" %[2]s, id`, f, dir)
	return b.String(), args
}
