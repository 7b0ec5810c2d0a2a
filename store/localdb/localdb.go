// Package localdb keeps record tables in a local sqlite file. It exists
// for development and tooling: the serve command falls back to it when no
// Airtable credentials are configured, which is enough to exercise the
// whole API without network access. Fields are stored as a JSON column
// and filters are evaluated in-process after decoding.
package localdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/lbreton/showcase/store"
)

type (
	// DB implements store.Store against a sqlite file.
	DB struct {
		db *sql.DB
	}
)

// Open creates or opens the database at the given path and prepares the
// records table.
func Open(ctx context.Context, path string) (*DB, error) {
	connstr := fmt.Sprintf("file:%v?_journal=wal&mode=rwc", path)
	conn, err := sql.Open("sqlite3", connstr)
	if err != nil {
		return nil, fmt.Errorf("localdb: unable to open %v, cause %w", path, err)
	}
	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("localdb: unable to ping %v, cause %w", path, err)
	}
	d := &DB{db: conn}
	if err := d.init(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DB) init(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, `create table if not exists records (
		table_name text not null,
		record_id text not null,
		fields text not null,
		created_at text not null default (datetime('now')),
		primary key (table_name, record_id))`)
	if err != nil {
		return fmt.Errorf("localdb: unable to create records table, cause %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Create(ctx context.Context, table string, fields store.Fields) (store.Record, error) {
	id := uuid.NewString()
	buf, err := json.Marshal(fields)
	if err != nil {
		return store.Record{}, fmt.Errorf("localdb: unable to encode fields for %v, cause %w", table, err)
	}
	_, err = d.db.ExecContext(ctx, `insert into records (table_name, record_id, fields) values (?, ?, ?)`,
		table, id, string(buf))
	if err != nil {
		return store.Record{}, fmt.Errorf("localdb: unable to insert record into %v, cause %w", table, err)
	}
	return store.Record{ID: id, Fields: fields}, nil
}

func (d *DB) Find(ctx context.Context, table, id string) (store.Record, error) {
	var buf string
	err := d.db.QueryRowContext(ctx, `select fields from records where table_name = ? and record_id = ?`,
		table, id).Scan(&buf)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Record{}, store.RecordNotFound{Table: table, ID: id}
	} else if err != nil {
		return store.Record{}, fmt.Errorf("localdb: unable to load record %v from %v, cause %w", id, table, err)
	}
	fields, err := decodeFields(table, buf)
	if err != nil {
		return store.Record{}, err
	}
	return store.Record{ID: id, Fields: fields}, nil
}

func (d *DB) Update(ctx context.Context, table, id string, fields store.Fields) (store.Record, error) {
	cur, err := d.Find(ctx, table, id)
	if err != nil {
		return store.Record{}, err
	}
	for k, v := range fields {
		cur.Fields[k] = v
	}
	buf, err := json.Marshal(cur.Fields)
	if err != nil {
		return store.Record{}, fmt.Errorf("localdb: unable to encode fields for %v, cause %w", table, err)
	}
	_, err = d.db.ExecContext(ctx, `update records set fields = ? where table_name = ? and record_id = ?`,
		string(buf), table, id)
	if err != nil {
		return store.Record{}, fmt.Errorf("localdb: unable to update record %v in %v, cause %w", id, table, err)
	}
	return cur, nil
}

func (d *DB) Delete(ctx context.Context, table, id string) error {
	res, err := d.db.ExecContext(ctx, `delete from records where table_name = ? and record_id = ?`, table, id)
	if err != nil {
		return fmt.Errorf("localdb: unable to delete record %v from %v, cause %w", id, table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("localdb: unable to confirm delete of %v from %v, cause %w", id, table, err)
	}
	if n == 0 {
		return store.RecordNotFound{Table: table, ID: id}
	}
	return nil
}

func (d *DB) Select(ctx context.Context, table string, filter store.Filter) ([]store.Record, error) {
	rows, err := d.db.QueryContext(ctx, `select record_id, fields from records where table_name = ? order by created_at asc, record_id asc`, table)
	if err != nil {
		return nil, fmt.Errorf("localdb: unable to select records from %v, cause %w", table, err)
	}
	defer rows.Close()
	var out []store.Record
	for rows.Next() {
		var id, buf string
		if err := rows.Scan(&id, &buf); err != nil {
			return nil, fmt.Errorf("localdb: unable to scan record from %v, cause %w", table, err)
		}
		fields, err := decodeFields(table, buf)
		if err != nil {
			return nil, err
		}
		if filter != nil && !filter.Match(fields) {
			continue
		}
		out = append(out, store.Record{ID: id, Fields: fields})
	}
	return out, rows.Err()
}

func decodeFields(table, buf string) (store.Fields, error) {
	var fields store.Fields
	if err := json.Unmarshal([]byte(buf), &fields); err != nil {
		return nil, fmt.Errorf("localdb: corrupted fields column in %v, cause %w", table, err)
	}
	return fields, nil
}
