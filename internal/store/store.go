package store

// Package store persists compiled namespaces to a sqlite database so other
// tools can browse a compile result without re-running the compiler.

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cathalgarvey/fastac/internal/fastac"
)

const schema = `CREATE TABLE IF NOT EXISTS blocks (
	position INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	sequence TEXT NOT NULL,
	type TEXT NOT NULL,
	meta TEXT NOT NULL
)`

// Record is one persisted block row. Meta holds the block's metadata as a
// JSON blob.
type Record struct {
	Position int
	Title    string
	Sequence string
	Type     string
	Meta     string
}

func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Save writes the namespace's blocks to the sqlite database at path in
// compilation order, replacing any blocks already stored there.
func Save(path string, ns *fastac.Namespace) error {
	db, err := open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM blocks`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO blocks (position, title, sequence, type, meta) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, b := range ns.Blocks() {
		meta, err := json.Marshal(b.Meta)
		if err != nil {
			return fmt.Errorf("serializing metadata for %q: %w", b.Title, err)
		}
		if _, err := stmt.Exec(i, b.Title, b.Sequence, string(b.Type), string(meta)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Load reads every stored block back in compilation order.
func Load(path string) ([]Record, error) {
	db, err := open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT position, title, sequence, type, meta FROM blocks ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Position, &r.Title, &r.Sequence, &r.Type, &r.Meta); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
