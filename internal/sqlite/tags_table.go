package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/tabula-app/tabula/pkg/types"
)

var _ types.Collection = (*tagsTable)(nil)

// tagsTable implements types.Collection for Tag entities. Synonyms are
// stored as a JSON array so their order survives round-trips.
type tagsTable struct {
	backend *Backend
}

const selectTag = "SELECT tag_id, readonly, name, synonyms FROM tags"

func scanTag(row rowScanner) (*types.Tag, error) {
	var tag types.Tag
	var synonyms string
	err := row.Scan(&tag.ID, &tag.Readonly, &tag.Name, &synonyms)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning tag: %w", err)
	}
	tag.Synonyms, err = unmarshalStrings(synonyms)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (t *tagsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, release, err := t.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	tag, err := scanTag(db.QueryRow(selectTag+" WHERE tag_id = ?", id))
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (t *tagsTable) GetAll() ([]any, error) {
	db, release, err := t.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.Query(selectTag + " ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("fetching tags: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, tag)
	}
	if results == nil {
		results = []any{}
	}
	return results, rows.Err()
}

func (t *tagsTable) Create(data any) (any, error) {
	tag, ok := data.(*types.Tag)
	if !ok {
		return nil, types.ErrInvalidData
	}
	if tag.Name == "" {
		return nil, types.ErrInvalidName
	}
	db, release, err := t.backend.writer()
	if err != nil {
		return nil, err
	}
	defer release()

	stored := *tag
	stored.ID = newUUID()
	stored.Readonly = false
	if stored.Synonyms == nil {
		stored.Synonyms = []string{}
	}

	synonyms, err := marshalStrings(stored.Synonyms)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(
		"INSERT INTO tags (tag_id, readonly, name, synonyms) VALUES (?, ?, ?, ?)",
		stored.ID, stored.Readonly, stored.Name, synonyms)
	if err != nil {
		return nil, fmt.Errorf("inserting tag: %w", err)
	}
	return &stored, nil
}

func (t *tagsTable) Update(id string, patch any) (any, error) {
	p, ok := patch.(*types.TagPatch)
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
		return nil, fmt.Errorf("beginning tag update: %w", err)
	}
	defer tx.Rollback()

	cur, err := scanTag(tx.QueryRow(selectTag+" WHERE tag_id = ?", id))
	if err != nil {
		return nil, err
	}
	if cur.Readonly {
		return nil, types.ErrReadonly
	}

	if p.Name != nil {
		cur.Name = *p.Name
	}
	if p.Synonyms != nil {
		cur.Synonyms = p.Synonyms
	}

	synonyms, err := marshalStrings(cur.Synonyms)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(
		"UPDATE tags SET name = ?, synonyms = ? WHERE tag_id = ?",
		cur.Name, synonyms, id)
	if err != nil {
		return nil, fmt.Errorf("updating tag: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing tag update: %w", err)
	}
	return cur, nil
}

func (t *tagsTable) Delete(id string) error {
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
		return fmt.Errorf("beginning tag delete: %w", err)
	}
	defer tx.Rollback()

	cur, err := scanTag(tx.QueryRow(selectTag+" WHERE tag_id = ?", id))
	if err != nil {
		return err
	}
	if cur.Readonly {
		return types.ErrReadonly
	}

	if _, err := tx.Exec("DELETE FROM tags WHERE tag_id = ?", id); err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing tag delete: %w", err)
	}
	return nil
}
