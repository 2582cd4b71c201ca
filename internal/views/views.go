// Package views implements the derived reads that cross entity
// boundaries: URL search, tag and category membership, click-recency
// ranking, and the theme-data resolution that assembles a profile's
// render-ready tree.
//
// Every ID held by one entity pointing at another is a weak reference.
// Resolution here never fails on a dangling reference: the resolve
// helpers report a miss and the aggregators drop it, so derived views
// stay usable through partial deletes and imports. The one exception is
// a missing profile theme, which the rendering caller checks itself.
package views

import (
	"errors"
	"fmt"

	"github.com/tabula-app/tabula/pkg/types"
)

// Service answers derived queries against a Store.
type Service struct {
	store types.Store
}

// New creates a query service over the given store.
func New(store types.Store) *Service {
	return &Service{store: store}
}

// resolveUrl looks up one URL by weak reference. A missing target is a
// miss, not an error.
func (s *Service) resolveUrl(urls types.Collection, id string) (*types.Url, bool, error) {
	rec, err := urls.Get(id)
	if errors.Is(err, types.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("resolving url %s: %w", id, err)
	}
	return rec.(*types.Url), true, nil
}

// resolvePicture looks up one picture by weak reference.
func (s *Service) resolvePicture(pictures types.Collection, id string) (*types.Picture, bool, error) {
	rec, err := pictures.Get(id)
	if errors.Is(err, types.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("resolving picture %s: %w", id, err)
	}
	return rec.(*types.Picture), true, nil
}

// resolveCategory looks up one category by weak reference.
func (s *Service) resolveCategory(categories types.Collection, id string) (*types.Category, bool, error) {
	rec, err := categories.Get(id)
	if errors.Is(err, types.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("resolving category %s: %w", id, err)
	}
	return rec.(*types.Category), true, nil
}
