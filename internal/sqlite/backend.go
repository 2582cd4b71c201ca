package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tabula-app/tabula/pkg/types"
)

// dbFileName is the SQLite database file created inside DataDir.
const dbFileName = "tabula.db"

// Backend implements the Store interface using a single SQLite database.
// One *sql.DB handle is shared by all collections; a RWMutex serializes
// mutations against it so every check-then-act sequence observes a
// consistent snapshot.
type Backend struct {
	mu          sync.RWMutex
	attached    bool
	config      types.Config
	db          *sql.DB
	dbPath      string
	collections map[string]types.Collection
	clicks      *clickLog
}

var _ types.Store = (*Backend)(nil)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		collections: make(map[string]types.Collection),
	}
}

// Collection returns the Collection for the given name.
// Returns ErrCollectionNotFound if the name is not a standard collection.
// Returns ErrStoreDetached if the backend is not attached.
func (b *Backend) Collection(name string) (types.Collection, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	c, ok := b.collections[name]
	if !ok {
		return nil, types.ErrCollectionNotFound
	}
	return c, nil
}

// Clicks returns the append-only click-event log.
func (b *Backend) Clicks() (types.ClickLog, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.clicks, nil
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, applies the SQLite schema, runs
// the seed loader, and creates the collection accessors.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("apply indexes: %w", err)
		}
	}

	if err := loadSeedData(db); err != nil {
		db.Close()
		return fmt.Errorf("load seed data: %w", err)
	}

	b.db = db
	b.dbPath = dbPath
	b.config = config
	b.attached = true

	b.collections[types.PicturesCollection] = &picturesTable{backend: b}
	b.collections[types.TagsCollection] = &tagsTable{backend: b}
	b.collections[types.UrlsCollection] = &urlsTable{backend: b}
	b.collections[types.ThemesCollection] = &themesTable{backend: b}
	b.collections[types.CategoriesCollection] = &categoriesTable{backend: b}
	b.collections[types.ProfilesCollection] = &profilesTable{backend: b}
	b.clicks = &clickLog{backend: b}

	return nil
}

// Detach releases the database handle. After Detach, all operations
// return ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.detachLocked()
}

func (b *Backend) detachLocked() error {
	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
		b.db = nil
	}

	b.attached = false
	b.collections = make(map[string]types.Collection)
	b.clicks = nil

	return nil
}

// Destroy performs a factory reset: it detaches and deletes the database
// file, seed data included. The next Attach starts from an empty store
// and re-runs the seed loader.
func (b *Backend) Destroy() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	dbPath := b.dbPath
	if err := b.detachLocked(); err != nil {
		return err
	}
	if dbPath == "" {
		return nil
	}
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove database: %w", err)
	}
	b.dbPath = ""
	return nil
}

// reader takes the read lock and returns the database handle. The caller
// must invoke release when done.
func (b *Backend) reader() (db *sql.DB, release func(), err error) {
	b.mu.RLock()
	if !b.attached {
		b.mu.RUnlock()
		return nil, nil, types.ErrStoreDetached
	}
	return b.db, b.mu.RUnlock, nil
}

// writer takes the write lock and returns the database handle. The caller
// must invoke release when done.
func (b *Backend) writer() (db *sql.DB, release func(), err error) {
	b.mu.Lock()
	if !b.attached {
		b.mu.Unlock()
		return nil, nil, types.ErrStoreDetached
	}
	return b.db, b.mu.Unlock, nil
}

// newUUID generates a UUID v7 string for entity IDs, falling back to v4
// if v7 generation fails.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
