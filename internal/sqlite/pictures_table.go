package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/tabula-app/tabula/pkg/types"
)

var _ types.Collection = (*picturesTable)(nil)

// picturesTable implements types.Collection for Picture entities.
type picturesTable struct {
	backend *Backend
}

const selectPicture = "SELECT picture_id, readonly, name, image_data, alt_text FROM pictures"

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPicture(row rowScanner) (*types.Picture, error) {
	var p types.Picture
	err := row.Scan(&p.ID, &p.Readonly, &p.Name, &p.ImageData, &p.AltText)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning picture: %w", err)
	}
	return &p, nil
}

func (t *picturesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, release, err := t.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	p, err := scanPicture(db.QueryRow(selectPicture+" WHERE picture_id = ?", id))
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (t *picturesTable) GetAll() ([]any, error) {
	db, release, err := t.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.Query(selectPicture + " ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("fetching pictures: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		p, err := scanPicture(rows)
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

func (t *picturesTable) Create(data any) (any, error) {
	p, ok := data.(*types.Picture)
	if !ok {
		return nil, types.ErrInvalidData
	}
	if p.Name == "" {
		return nil, types.ErrInvalidName
	}
	db, release, err := t.backend.writer()
	if err != nil {
		return nil, err
	}
	defer release()

	stored := *p
	stored.ID = newUUID()
	stored.Readonly = false

	_, err = db.Exec(
		"INSERT INTO pictures (picture_id, readonly, name, image_data, alt_text) VALUES (?, ?, ?, ?, ?)",
		stored.ID, stored.Readonly, stored.Name, stored.ImageData, stored.AltText)
	if err != nil {
		return nil, fmt.Errorf("inserting picture: %w", err)
	}
	return &stored, nil
}

func (t *picturesTable) Update(id string, patch any) (any, error) {
	p, ok := patch.(*types.PicturePatch)
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
		return nil, fmt.Errorf("beginning picture update: %w", err)
	}
	defer tx.Rollback()

	cur, err := scanPicture(tx.QueryRow(selectPicture+" WHERE picture_id = ?", id))
	if err != nil {
		return nil, err
	}
	if cur.Readonly {
		return nil, types.ErrReadonly
	}

	if p.Name != nil {
		cur.Name = *p.Name
	}
	if p.ImageData != nil {
		cur.ImageData = *p.ImageData
	}
	if p.AltText != nil {
		cur.AltText = *p.AltText
	}

	_, err = tx.Exec(
		"UPDATE pictures SET name = ?, image_data = ?, alt_text = ? WHERE picture_id = ?",
		cur.Name, cur.ImageData, cur.AltText, id)
	if err != nil {
		return nil, fmt.Errorf("updating picture: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing picture update: %w", err)
	}
	return cur, nil
}

func (t *picturesTable) Delete(id string) error {
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
		return fmt.Errorf("beginning picture delete: %w", err)
	}
	defer tx.Rollback()

	cur, err := scanPicture(tx.QueryRow(selectPicture+" WHERE picture_id = ?", id))
	if err != nil {
		return err
	}
	if cur.Readonly {
		return types.ErrReadonly
	}

	if _, err := tx.Exec("DELETE FROM pictures WHERE picture_id = ?", id); err != nil {
		return fmt.Errorf("deleting picture: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing picture delete: %w", err)
	}
	return nil
}
