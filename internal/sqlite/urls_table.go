package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/tabula-app/tabula/pkg/types"
)

var _ types.Collection = (*urlsTable)(nil)

// urlsTable implements types.Collection for Url entities. The tag list is
// a JSON array in display order; the picture reference is a nullable
// column. Neither is enforced with a foreign key: both are weak
// references and deleting their targets must leave this row untouched.
type urlsTable struct {
	backend *Backend
}

const selectUrl = "SELECT url_id, readonly, name, url, tags, picture_id FROM urls"

func scanUrl(row rowScanner) (*types.Url, error) {
	var u types.Url
	var tags string
	var picture sql.NullString
	err := row.Scan(&u.ID, &u.Readonly, &u.Name, &u.Address, &tags, &picture)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning url: %w", err)
	}
	u.Tags, err = unmarshalStrings(tags)
	if err != nil {
		return nil, err
	}
	if picture.Valid {
		u.Picture = picture.String
	}
	return &u, nil
}

func pictureValue(u *types.Url) sql.NullString {
	if u.Picture == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: u.Picture, Valid: true}
}

func (t *urlsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, release, err := t.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	u, err := scanUrl(db.QueryRow(selectUrl+" WHERE url_id = ?", id))
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (t *urlsTable) GetAll() ([]any, error) {
	db, release, err := t.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.Query(selectUrl + " ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("fetching urls: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		u, err := scanUrl(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, u)
	}
	if results == nil {
		results = []any{}
	}
	return results, rows.Err()
}

func (t *urlsTable) Create(data any) (any, error) {
	u, ok := data.(*types.Url)
	if !ok {
		return nil, types.ErrInvalidData
	}
	if u.Name == "" {
		return nil, types.ErrInvalidName
	}
	if u.Address == "" {
		return nil, types.ErrInvalidData
	}
	db, release, err := t.backend.writer()
	if err != nil {
		return nil, err
	}
	defer release()

	stored := *u
	stored.ID = newUUID()
	stored.Readonly = false
	if stored.Tags == nil {
		stored.Tags = []string{}
	}

	tags, err := marshalStrings(stored.Tags)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(
		"INSERT INTO urls (url_id, readonly, name, url, tags, picture_id) VALUES (?, ?, ?, ?, ?, ?)",
		stored.ID, stored.Readonly, stored.Name, stored.Address, tags, pictureValue(&stored))
	if err != nil {
		return nil, fmt.Errorf("inserting url: %w", err)
	}
	return &stored, nil
}

func (t *urlsTable) Update(id string, patch any) (any, error) {
	p, ok := patch.(*types.UrlPatch)
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
		return nil, fmt.Errorf("beginning url update: %w", err)
	}
	defer tx.Rollback()

	cur, err := scanUrl(tx.QueryRow(selectUrl+" WHERE url_id = ?", id))
	if err != nil {
		return nil, err
	}
	if cur.Readonly {
		return nil, types.ErrReadonly
	}

	if p.Name != nil {
		cur.Name = *p.Name
	}
	if p.Address != nil {
		cur.Address = *p.Address
	}
	if p.Tags != nil {
		cur.Tags = p.Tags
	}
	if p.RemovePicture {
		cur.Picture = ""
	} else if p.Picture != nil {
		cur.Picture = *p.Picture
	}

	tags, err := marshalStrings(cur.Tags)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(
		"UPDATE urls SET name = ?, url = ?, tags = ?, picture_id = ? WHERE url_id = ?",
		cur.Name, cur.Address, tags, pictureValue(cur), id)
	if err != nil {
		return nil, fmt.Errorf("updating url: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing url update: %w", err)
	}
	return cur, nil
}

func (t *urlsTable) Delete(id string) error {
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
		return fmt.Errorf("beginning url delete: %w", err)
	}
	defer tx.Rollback()

	cur, err := scanUrl(tx.QueryRow(selectUrl+" WHERE url_id = ?", id))
	if err != nil {
		return err
	}
	if cur.Readonly {
		return types.ErrReadonly
	}

	if _, err := tx.Exec("DELETE FROM urls WHERE url_id = ?", id); err != nil {
		return fmt.Errorf("deleting url: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing url delete: %w", err)
	}
	return nil
}
