package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/tabula-app/tabula/pkg/types"
)

var _ types.Collection = (*themesTable)(nil)

// themesTable implements types.Collection for Theme entities. Globals are
// stored as a JSON object; Renderer is an identifier resolved against the
// static renderer registry, never executed source.
type themesTable struct {
	backend *Backend
}

const selectTheme = "SELECT theme_id, readonly, name, renderer, source, globals FROM themes"

func scanTheme(row rowScanner) (*types.Theme, error) {
	var th types.Theme
	var globals string
	err := row.Scan(&th.ID, &th.Readonly, &th.Name, &th.Renderer, &th.Source, &globals)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning theme: %w", err)
	}
	th.Globals, err = unmarshalGlobals(globals)
	if err != nil {
		return nil, err
	}
	return &th, nil
}

func (t *themesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, release, err := t.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	th, err := scanTheme(db.QueryRow(selectTheme+" WHERE theme_id = ?", id))
	if err != nil {
		return nil, err
	}
	return th, nil
}

func (t *themesTable) GetAll() ([]any, error) {
	db, release, err := t.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.Query(selectTheme + " ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("fetching themes: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		th, err := scanTheme(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, th)
	}
	if results == nil {
		results = []any{}
	}
	return results, rows.Err()
}

func (t *themesTable) Create(data any) (any, error) {
	th, ok := data.(*types.Theme)
	if !ok {
		return nil, types.ErrInvalidData
	}
	if th.Name == "" {
		return nil, types.ErrInvalidName
	}
	if th.Renderer == "" {
		return nil, types.ErrInvalidData
	}
	db, release, err := t.backend.writer()
	if err != nil {
		return nil, err
	}
	defer release()

	stored := *th
	stored.ID = newUUID()
	stored.Readonly = false
	if stored.Globals == nil {
		stored.Globals = map[string]any{}
	}

	globals, err := marshalGlobals(stored.Globals)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(
		"INSERT INTO themes (theme_id, readonly, name, renderer, source, globals) VALUES (?, ?, ?, ?, ?, ?)",
		stored.ID, stored.Readonly, stored.Name, stored.Renderer, stored.Source, globals)
	if err != nil {
		return nil, fmt.Errorf("inserting theme: %w", err)
	}
	return &stored, nil
}

func (t *themesTable) Update(id string, patch any) (any, error) {
	p, ok := patch.(*types.ThemePatch)
	if !ok {
		return nil, types.ErrInvalidData
	}
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, release, err := t.backend.writer()
	if err != nil {
		return nil, err
	}
	defer release()

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning theme update: %w", err)
	}
	defer tx.Rollback()

	cur, err := scanTheme(tx.QueryRow(selectTheme+" WHERE theme_id = ?", id))
	if err != nil {
		return nil, err
	}
	if cur.Readonly {
		return nil, types.ErrReadonly
	}

	if p.Name != nil {
		cur.Name = *p.Name
	}
	if p.Renderer != nil {
		cur.Renderer = *p.Renderer
	}
	if p.Source != nil {
		cur.Source = *p.Source
	}
	if p.Globals != nil {
		cur.Globals = p.Globals
	}

	globals, err := marshalGlobals(cur.Globals)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(
		"UPDATE themes SET name = ?, renderer = ?, source = ?, globals = ? WHERE theme_id = ?",
		cur.Name, cur.Renderer, cur.Source, globals, id)
	if err != nil {
		return nil, fmt.Errorf("updating theme: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing theme update: %w", err)
	}
	return cur, nil
}

func (t *themesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, release, err := t.backend.writer()
	if err != nil {
		return err
	}
	defer release()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning theme delete: %w", err)
	}
	defer tx.Rollback()

	cur, err := scanTheme(tx.QueryRow(selectTheme+" WHERE theme_id = ?", id))
	if err != nil {
		return err
	}
	if cur.Readonly {
		return types.ErrReadonly
	}

	if _, err := tx.Exec("DELETE FROM themes WHERE theme_id = ?", id); err != nil {
		return fmt.Errorf("deleting theme: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing theme delete: %w", err)
	}
	return nil
}
