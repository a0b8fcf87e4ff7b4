// Package store keeps spreadsheet contents in SQLite
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "github.com/glebarez/sqlite"
)

// ErrNegativeDimensions is returned when a sheet is sized below zero
var ErrNegativeDimensions = errors.New("sheet dimensions must not be negative")

// DB wraps the SQLite database connection
type DB struct {
	*sql.DB
	path string
}

// Open opens the SQLite database and creates tables if needed
func Open(dbPath string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// WAL lets the viewer read while another process writes
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, err
	}

	db := &DB{DB: sqlDB, path: dbPath}
	if err := db.createTables(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// createTables creates the necessary database tables
func (db *DB) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS sheet_meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		rows INTEGER NOT NULL,
		cols INTEGER NOT NULL
	);

	INSERT OR IGNORE INTO sheet_meta (id, rows, cols) VALUES (1, 0, 0);

	CREATE TABLE IF NOT EXISTS cells (
		row INTEGER NOT NULL,
		col INTEGER NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (row, col)
	);
	`

	_, err := db.Exec(query)
	return err
}

// Dimensions returns the sheet's row and column counts
func (db *DB) Dimensions() (rows, cols int, err error) {
	err = db.QueryRow("SELECT rows, cols FROM sheet_meta WHERE id = 1").Scan(&rows, &cols)
	return rows, cols, err
}

// SetDimensions resizes the sheet and drops cells that fall outside it
func (db *DB) SetDimensions(rows, cols int) error {
	if rows < 0 || cols < 0 {
		return ErrNegativeDimensions
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE sheet_meta SET rows = ?, cols = ? WHERE id = 1", rows, cols); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM cells WHERE row >= ? OR col >= ?", rows, cols); err != nil {
		return err
	}
	return tx.Commit()
}

// PutValue saves or updates one cell, growing the sheet to contain it
func (db *DB) PutValue(row, col int, value string) error {
	if row < 0 || col < 0 {
		return fmt.Errorf("cell (%d,%d): %w", row, col, ErrNegativeDimensions)
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
	INSERT INTO cells (row, col, value) VALUES (?, ?, ?)
	ON CONFLICT(row, col) DO UPDATE SET value = excluded.value
	`
	if _, err := tx.Exec(query, row, col, value); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"UPDATE sheet_meta SET rows = MAX(rows, ?), cols = MAX(cols, ?) WHERE id = 1",
		row+1, col+1,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// Value returns the text of one cell and whether it is set
func (db *DB) Value(row, col int) (string, bool, error) {
	var v string
	err := db.QueryRow("SELECT value FROM cells WHERE row = ? AND col = ?", row, col).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Snapshot is an in-memory copy of the sheet taken at one point in time
type Snapshot struct {
	Rows   int
	Cols   int
	values map[[2]int]string
}

// Value returns the text at (row, col), empty when unset
func (s *Snapshot) Value(row, col int) string {
	return s.values[[2]int{row, col}]
}

// Dimensions returns the row and column counts
func (s *Snapshot) Dimensions() (rows, cols int) {
	return s.Rows, s.Cols
}

// Len returns the number of non-empty cells
func (s *Snapshot) Len() int {
	return len(s.values)
}

// Snapshot reads the whole sheet in one transaction
func (db *DB) Snapshot() (*Snapshot, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	snap := &Snapshot{values: make(map[[2]int]string)}
	if err := tx.QueryRow("SELECT rows, cols FROM sheet_meta WHERE id = 1").Scan(&snap.Rows, &snap.Cols); err != nil {
		return nil, err
	}

	rows, err := tx.Query("SELECT row, col, value FROM cells WHERE row < ? AND col < ?", snap.Rows, snap.Cols)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r, c int
		var v string
		if err := rows.Scan(&r, &c, &v); err != nil {
			return nil, err
		}
		snap.values[[2]int{r, c}] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Seed replaces the sheet with a rows x cols demo: column letters across
// row 0, row numbers down column 0 and numbers in the body
func (db *DB) Seed(rows, cols int) error {
	if rows < 0 || cols < 0 {
		return ErrNegativeDimensions
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cells"); err != nil {
		return err
	}
	if _, err := tx.Exec("UPDATE sheet_meta SET rows = ?, cols = ? WHERE id = 1", rows, cols); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO cells (row, col, value) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := seedValue(r, c)
			if v == "" {
				continue
			}
			if _, err := stmt.Exec(r, c, v); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func seedValue(row, col int) string {
	switch {
	case row == 0 && col == 0:
		return ""
	case row == 0:
		return ColumnName(col - 1)
	case col == 0:
		return strconv.Itoa(row)
	}
	return strconv.Itoa((row*31 + col*17) % 1000)
}

// ColumnName returns the spreadsheet letter name of a zero-based column:
// A..Z, AA..AZ and so on
func ColumnName(col int) string {
	if col < 0 {
		return ""
	}
	var b []byte
	for col >= 0 {
		b = append([]byte{byte('A' + col%26)}, b...)
		col = col/26 - 1
	}
	return string(b)
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
