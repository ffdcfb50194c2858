package roster

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var ErrEmployeeNotFound = errors.New("employee not found")

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS employees (
	name TEXT PRIMARY KEY,
	employee_type TEXT NOT NULL CHECK(employee_type IN ('hourly', 'salaried')),
	base_rate REAL NOT NULL CHECK(base_rate >= 0),
	paychex_name TEXT NOT NULL DEFAULT '',
	is_owner INTEGER NOT NULL DEFAULT 0,
	indirect_code TEXT NOT NULL DEFAULT '',
	direct_code TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(name string) (Employee, error) {
	row := s.db.QueryRow(
		`SELECT name, employee_type, base_rate, paychex_name, is_owner, indirect_code, direct_code
		 FROM employees WHERE name = ?;`,
		name,
	)

	emp, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return Employee{}, fmt.Errorf("query employee %q: %w", name, err)
	}
	return emp, nil
}

func (s *SQLiteStore) List() ([]Employee, error) {
	rows, err := s.db.Query(
		`SELECT name, employee_type, base_rate, paychex_name, is_owner, indirect_code, direct_code
		 FROM employees ORDER BY name;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]Employee, 0, 32)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}

	return employees, nil
}

func (s *SQLiteStore) Upsert(emp Employee) error {
	if err := validateEmployee(emp); err != nil {
		return err
	}

	_, err := s.db.Exec(
		`INSERT INTO employees (name, employee_type, base_rate, paychex_name, is_owner, indirect_code, direct_code)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			employee_type = excluded.employee_type,
			base_rate = excluded.base_rate,
			paychex_name = excluded.paychex_name,
			is_owner = excluded.is_owner,
			indirect_code = excluded.indirect_code,
			direct_code = excluded.direct_code,
			updated_at = CURRENT_TIMESTAMP;`,
		emp.Name, normalizeType(emp.Type), emp.BaseRate, emp.PaychexName, boolToInt(emp.IsOwner), emp.IndirectCode, emp.DirectCode,
	)
	if err != nil {
		return fmt.Errorf("upsert employee %q: %w", emp.Name, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(name string) error {
	result, err := s.db.Exec(`DELETE FROM employees WHERE name = ?;`, name)
	if err != nil {
		return fmt.Errorf("delete employee %q: %w", name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete employee %q: %w", name, err)
	}
	if affected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

// ReplaceAll swaps the whole roster in one transaction, the bulk-update
// path behind roster approval workflows.
func (s *SQLiteStore) ReplaceAll(employees []Employee) error {
	for _, emp := range employees {
		if err := validateEmployee(emp); err != nil {
			return err
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin roster replace: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM employees;`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear roster: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO employees (name, employee_type, base_rate, paychex_name, is_owner, indirect_code, direct_code)
		 VALUES (?, ?, ?, ?, ?, ?, ?);`,
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare roster insert: %w", err)
	}
	defer stmt.Close()

	for _, emp := range employees {
		if _, err := stmt.Exec(emp.Name, normalizeType(emp.Type), emp.BaseRate, emp.PaychexName, boolToInt(emp.IsOwner), emp.IndirectCode, emp.DirectCode); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert employee %q: %w", emp.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster replace: %w", err)
	}
	return nil
}

// Snapshot loads the full directory as the immutable per-run view.
func (s *SQLiteStore) Snapshot() (Directory, error) {
	employees, err := s.List()
	if err != nil {
		return nil, err
	}

	directory := make(Directory, len(employees))
	for _, emp := range employees {
		directory[emp.Name] = emp
	}
	return directory, nil
}

func validateEmployee(emp Employee) error {
	if emp.Name == "" {
		return fmt.Errorf("employee name is required")
	}
	if !emp.IsHourly() && !emp.IsSalaried() {
		return fmt.Errorf("employee %q has invalid type %q (valid: hourly, salaried)", emp.Name, emp.Type)
	}
	if emp.BaseRate < 0 {
		return fmt.Errorf("employee %q has negative base rate", emp.Name)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (Employee, error) {
	var (
		emp     Employee
		isOwner int
	)
	err := row.Scan(&emp.Name, &emp.Type, &emp.BaseRate, &emp.PaychexName, &isOwner, &emp.IndirectCode, &emp.DirectCode)
	if err != nil {
		return Employee{}, err
	}
	emp.IsOwner = isOwner != 0
	return emp, nil
}

func normalizeType(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
