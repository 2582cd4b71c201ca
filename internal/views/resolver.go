package views

import (
	"errors"

	"github.com/tabula-app/tabula/pkg/types"
)

// ThemeDataByProfile assembles the render-ready tree for one profile:
// its categories in order, each category's surviving URLs in order, and
// each URL's picture payload when the reference resolves. Returns
// (nil, nil) when the profile does not exist. Dangling category, URL,
// and picture references are silently elided; whether the profile's
// theme exists is the rendering caller's check, not this layer's.
func (s *Service) ThemeDataByProfile(profileID string) (*types.ThemeData, error) {
	profiles, err := s.store.Collection(types.ProfilesCollection)
	if err != nil {
		return nil, err
	}
	rec, err := profiles.Get(profileID)
	if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	profile := rec.(*types.Profile)

	categories, err := s.store.Collection(types.CategoriesCollection)
	if err != nil {
		return nil, err
	}
	urls, err := s.store.Collection(types.UrlsCollection)
	if err != nil {
		return nil, err
	}
	pictures, err := s.store.Collection(types.PicturesCollection)
	if err != nil {
		return nil, err
	}

	data := &types.ThemeData{
		ProfileID:   profile.ID,
		ProfileName: profile.Name,
		ThemeID:     profile.Theme,
		Categories:  []types.ThemeCategory{},
	}

	for _, catID := range profile.Categories {
		cat, ok, err := s.resolveCategory(categories, catID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		resolved := types.ThemeCategory{
			CategoryID:  cat.ID,
			DisplayName: cat.Name,
			Urls:        []types.ThemeUrl{},
		}
		for _, urlID := range cat.Urls {
			tu, ok, err := s.resolveThemeUrl(urls, pictures, urlID)
			if err != nil {
				return nil, err
			}
			if ok {
				resolved.Urls = append(resolved.Urls, tu)
			}
		}
		data.Categories = append(data.Categories, resolved)
	}

	if profile.IncludeRecent {
		recent, err := s.recentCategory(pictures, profile.NumRecent)
		if err != nil {
			return nil, err
		}
		if recent != nil {
			data.Categories = append([]types.ThemeCategory{*recent}, data.Categories...)
		}
	}

	return data, nil
}

// resolveThemeUrl resolves one URL reference into its render-ready shape,
// embedding the picture payload when that second-level reference holds.
func (s *Service) resolveThemeUrl(urls, pictures types.Collection, urlID string) (types.ThemeUrl, bool, error) {
	u, ok, err := s.resolveUrl(urls, urlID)
	if err != nil || !ok {
		return types.ThemeUrl{}, false, err
	}
	tu := types.ThemeUrl{ID: u.ID, Name: u.Name, Address: u.Address}
	if u.Picture != "" {
		pic, ok, err := s.resolvePicture(pictures, u.Picture)
		if err != nil {
			return types.ThemeUrl{}, false, err
		}
		if ok {
			tu.Picture = pic.ImageData
		}
	}
	return tu, true, nil
}

// recentCategory builds the synthetic "Recent" category from click
// recency. Returns nil when the ranking is empty or the limit is zero:
// an empty Recent category is never shown. The category carries no
// backing ID.
func (s *Service) recentCategory(pictures types.Collection, limit int) (*types.ThemeCategory, error) {
	urls, err := s.RecentUrls(limit)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, nil
	}

	cat := &types.ThemeCategory{
		DisplayName: types.RecentCategoryName,
		Urls:        make([]types.ThemeUrl, 0, len(urls)),
	}
	for _, u := range urls {
		tu := types.ThemeUrl{ID: u.ID, Name: u.Name, Address: u.Address}
		if u.Picture != "" {
			pic, ok, err := s.resolvePicture(pictures, u.Picture)
			if err != nil {
				return nil, err
			}
			if ok {
				tu.Picture = pic.ImageData
			}
		}
		cat.Urls = append(cat.Urls, tu)
	}
	return cat, nil
}
