package views

import (
	"slices"
	"strings"

	"github.com/tabula-app/tabula/pkg/types"
)

// Search returns the URLs whose name or address contains query as a
// case-insensitive substring, in store order. An empty query matches all.
func (s *Service) Search(query string) ([]*types.Url, error) {
	urls, err := s.store.Collection(types.UrlsCollection)
	if err != nil {
		return nil, err
	}
	all, err := urls.GetAll()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	results := []*types.Url{}
	for _, rec := range all {
		u := rec.(*types.Url)
		if needle == "" ||
			strings.Contains(strings.ToLower(u.Name), needle) ||
			strings.Contains(strings.ToLower(u.Address), needle) {
			results = append(results, u)
		}
	}
	return results, nil
}

// UrlsByTag returns the URLs whose tag list contains tagID, in store order.
func (s *Service) UrlsByTag(tagID string) ([]*types.Url, error) {
	urls, err := s.store.Collection(types.UrlsCollection)
	if err != nil {
		return nil, err
	}
	all, err := urls.GetAll()
	if err != nil {
		return nil, err
	}

	results := []*types.Url{}
	for _, rec := range all {
		u := rec.(*types.Url)
		if slices.Contains(u.Tags, tagID) {
			results = append(results, u)
		}
	}
	return results, nil
}

// UrlsByCategory resolves a category's URL list to concrete records in
// list order, silently dropping IDs that no longer resolve. A missing
// category yields an empty result, not an error.
func (s *Service) UrlsByCategory(categoryID string) ([]*types.Url, error) {
	categories, err := s.store.Collection(types.CategoriesCollection)
	if err != nil {
		return nil, err
	}
	urls, err := s.store.Collection(types.UrlsCollection)
	if err != nil {
		return nil, err
	}

	cat, ok, err := s.resolveCategory(categories, categoryID)
	if err != nil {
		return nil, err
	}
	results := []*types.Url{}
	if !ok {
		return results, nil
	}
	for _, id := range cat.Urls {
		u, ok, err := s.resolveUrl(urls, id)
		if err != nil {
			return nil, err
		}
		if ok {
			results = append(results, u)
		}
	}
	return results, nil
}
