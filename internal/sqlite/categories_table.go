package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/tabula-app/tabula/pkg/types"
)

var _ types.Collection = (*categoriesTable)(nil)

// categoriesTable implements types.Collection for Category entities. The
// url list is a JSON array in display order; entries are weak references
// resolved (and tolerated when dangling) by the query layer.
type categoriesTable struct {
	backend *Backend
}

const selectCategory = "SELECT category_id, readonly, name, urls FROM categories"

func scanCategory(row rowScanner) (*types.Category, error) {
	var c types.Category
	var urls string
	err := row.Scan(&c.ID, &c.Readonly, &c.Name, &urls)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning category: %w", err)
	}
	c.Urls, err = unmarshalStrings(urls)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (t *categoriesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, release, err := t.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	c, err := scanCategory(db.QueryRow(selectCategory+" WHERE category_id = ?", id))
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (t *categoriesTable) GetAll() ([]any, error) {
	db, release, err := t.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.Query(selectCategory + " ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	if results == nil {
		results = []any{}
	}
	return results, rows.Err()
}

func (t *categoriesTable) Create(data any) (any, error) {
	c, ok := data.(*types.Category)
	if !ok {
		return nil, types.ErrInvalidData
	}
	if c.Name == "" {
		return nil, types.ErrInvalidName
	}
	db, release, err := t.backend.writer()
	if err != nil {
		return nil, err
	}
	defer release()

	stored := *c
	stored.ID = newUUID()
	stored.Readonly = false
	if stored.Urls == nil {
		stored.Urls = []string{}
	}

	urls, err := marshalStrings(stored.Urls)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(
		"INSERT INTO categories (category_id, readonly, name, urls) VALUES (?, ?, ?, ?)",
		stored.ID, stored.Readonly, stored.Name, urls)
	if err != nil {
		return nil, fmt.Errorf("inserting category: %w", err)
	}
	return &stored, nil
}

func (t *categoriesTable) Update(id string, patch any) (any, error) {
	p, ok := patch.(*types.CategoryPatch)
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
		return nil, fmt.Errorf("beginning category update: %w", err)
	}
	defer tx.Rollback()

	cur, err := scanCategory(tx.QueryRow(selectCategory+" WHERE category_id = ?", id))
	if err != nil {
		return nil, err
	}
	if cur.Readonly {
		return nil, types.ErrReadonly
	}

	if p.Name != nil {
		cur.Name = *p.Name
	}
	if p.Urls != nil {
		cur.Urls = p.Urls
	}

	urls, err := marshalStrings(cur.Urls)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(
		"UPDATE categories SET name = ?, urls = ? WHERE category_id = ?",
		cur.Name, urls, id)
	if err != nil {
		return nil, fmt.Errorf("updating category: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing category update: %w", err)
	}
	return cur, nil
}

func (t *categoriesTable) Delete(id string) error {
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
		return fmt.Errorf("beginning category delete: %w", err)
	}
	defer tx.Rollback()

	cur, err := scanCategory(tx.QueryRow(selectCategory+" WHERE category_id = ?", id))
	if err != nil {
		return err
	}
	if cur.Readonly {
		return types.ErrReadonly
	}

	if _, err := tx.Exec("DELETE FROM categories WHERE category_id = ?", id); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing category delete: %w", err)
	}
	return nil
}
