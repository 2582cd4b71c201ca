package types

import "errors"

// Collection provides uniform CRUD operations for a single entity type.
// Get, GetAll, Create, and Update return any; callers type-assert to the
// concrete entity struct for the collection.
type Collection interface {
	// Get retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Get(id string) (any, error)

	// GetAll returns every entity in the collection in insertion order.
	GetAll() ([]any, error)

	// Create persists a new entity. The caller-supplied ID and Readonly
	// fields are ignored: a fresh UUID v7 is generated and Readonly is
	// forced to false. Returns the stored entity including generated fields.
	Create(data any) (any, error)

	// Update merges the non-nil fields of patch onto the existing entity
	// and persists the result. Omitted fields are retained; ID and Readonly
	// can never change. Returns ErrNotFound if the entity does not exist
	// and ErrReadonly if it is a seed entity.
	Update(id string, patch any) (any, error)

	// Delete removes the entity with the given ID. Deletes never cascade:
	// references held by other entities are left dangling and tolerated at
	// resolution time. Returns ErrNotFound if the entity does not exist
	// and ErrReadonly if it is a seed entity.
	Delete(id string) error
}

// Collection operation errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrReadonly    = errors.New("entity is readonly")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidData = errors.New("invalid entity data")
	ErrInvalidName = errors.New("invalid name")
)

// Standard collection names for Store.Collection.
const (
	PicturesCollection   = "pictures"
	TagsCollection       = "tags"
	UrlsCollection       = "urls"
	ThemesCollection     = "themes"
	CategoriesCollection = "categories"
	ProfilesCollection   = "profiles"
)

// StandardCollections lists all standard collection names for enumeration.
var StandardCollections = []string{
	PicturesCollection,
	TagsCollection,
	UrlsCollection,
	ThemesCollection,
	CategoriesCollection,
	ProfilesCollection,
}
