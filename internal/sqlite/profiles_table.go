package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/tabula-app/tabula/pkg/types"
)

var _ types.Collection = (*profilesTable)(nil)

// profilesTable implements types.Collection for Profile entities.
type profilesTable struct {
	backend *Backend
}

const selectProfile = "SELECT profile_id, readonly, name, categories, include_recent, num_recent, theme_id FROM profiles"

func scanProfile(row rowScanner) (*types.Profile, error) {
	var p types.Profile
	var categories string
	err := row.Scan(&p.ID, &p.Readonly, &p.Name, &categories, &p.IncludeRecent, &p.NumRecent, &p.Theme)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning profile: %w", err)
	}
	p.Categories, err = unmarshalStrings(categories)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (t *profilesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, release, err := t.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	p, err := scanProfile(db.QueryRow(selectProfile+" WHERE profile_id = ?", id))
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (t *profilesTable) GetAll() ([]any, error) {
	db, release, err := t.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.Query(selectProfile + " ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("fetching profiles: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	if results == nil {
		results = []any{}
	}
	return results, rows.Err()
}

func (t *profilesTable) Create(data any) (any, error) {
	p, ok := data.(*types.Profile)
	if !ok {
		return nil, types.ErrInvalidData
	}
	if p.Name == "" {
		return nil, types.ErrInvalidName
	}
	if p.Theme == "" || p.NumRecent < 0 {
		return nil, types.ErrInvalidData
	}
	db, release, err := t.backend.writer()
	if err != nil {
		return nil, err
	}
	defer release()

	stored := *p
	stored.ID = newUUID()
	stored.Readonly = false
	if stored.Categories == nil {
		stored.Categories = []string{}
	}

	categories, err := marshalStrings(stored.Categories)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(
		"INSERT INTO profiles (profile_id, readonly, name, categories, include_recent, num_recent, theme_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
		stored.ID, stored.Readonly, stored.Name, categories, stored.IncludeRecent, stored.NumRecent, stored.Theme)
	if err != nil {
		return nil, fmt.Errorf("inserting profile: %w", err)
	}
	return &stored, nil
}

func (t *profilesTable) Update(id string, patch any) (any, error) {
	p, ok := patch.(*types.ProfilePatch)
	if !ok {
		return nil, types.ErrInvalidData
	}
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if p.NumRecent != nil && *p.NumRecent < 0 {
		return nil, types.ErrInvalidData
	}
	if p.Theme != nil && *p.Theme == "" {
		return nil, types.ErrInvalidData
	}
	db, release, err := t.backend.writer()
	if err != nil {
		return nil, err
	}
	defer release()

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning profile update: %w", err)
	}
	defer tx.Rollback()

	cur, err := scanProfile(tx.QueryRow(selectProfile+" WHERE profile_id = ?", id))
	if err != nil {
		return nil, err
	}
	if cur.Readonly {
		return nil, types.ErrReadonly
	}

	if p.Name != nil {
		cur.Name = *p.Name
	}
	if p.Categories != nil {
		cur.Categories = p.Categories
	}
	if p.IncludeRecent != nil {
		cur.IncludeRecent = *p.IncludeRecent
	}
	if p.NumRecent != nil {
		cur.NumRecent = *p.NumRecent
	}
	if p.Theme != nil {
		cur.Theme = *p.Theme
	}

	categories, err := marshalStrings(cur.Categories)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(
		"UPDATE profiles SET name = ?, categories = ?, include_recent = ?, num_recent = ?, theme_id = ? WHERE profile_id = ?",
		cur.Name, categories, cur.IncludeRecent, cur.NumRecent, cur.Theme, id)
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing profile update: %w", err)
	}
	return cur, nil
}

func (t *profilesTable) Delete(id string) error {
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
		return fmt.Errorf("beginning profile delete: %w", err)
	}
	defer tx.Rollback()

	cur, err := scanProfile(tx.QueryRow(selectProfile+" WHERE profile_id = ?", id))
	if err != nil {
		return err
	}
	if cur.Readonly {
		return types.ErrReadonly
	}

	if _, err := tx.Exec("DELETE FROM profiles WHERE profile_id = ?", id); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing profile delete: %w", err)
	}
	return nil
}
