// Package transfer implements the export/import boundary: versioned JSON
// snapshots of every entity collection, and best-effort import layered on
// the plain Create primitive so imported records never collide with
// existing IDs.
package transfer

import (
	"time"

	"github.com/tabula-app/tabula/internal/logger"
	"github.com/tabula-app/tabula/pkg/types"
)

// Service performs exports and imports against one store.
type Service struct {
	store types.Store
	log   logger.Logger
}

// New creates a transfer service. log may be logger.Nop().
func New(store types.Store, log logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// ExportAll snapshots every record of every entity collection, readonly
// and mutable alike. Click events are excluded by design.
func (s *Service) ExportAll() (*types.Snapshot, error) {
	snap := emptySnapshot()

	if err := s.collect(types.PicturesCollection, func(rec any) {
		snap.Pictures = append(snap.Pictures, rec.(*types.Picture))
	}); err != nil {
		return nil, err
	}
	if err := s.collect(types.TagsCollection, func(rec any) {
		snap.Tags = append(snap.Tags, rec.(*types.Tag))
	}); err != nil {
		return nil, err
	}
	if err := s.collect(types.UrlsCollection, func(rec any) {
		snap.Urls = append(snap.Urls, rec.(*types.Url))
	}); err != nil {
		return nil, err
	}
	if err := s.collect(types.ThemesCollection, func(rec any) {
		snap.Themes = append(snap.Themes, rec.(*types.Theme))
	}); err != nil {
		return nil, err
	}
	if err := s.collect(types.CategoriesCollection, func(rec any) {
		snap.Categories = append(snap.Categories, rec.(*types.Category))
	}); err != nil {
		return nil, err
	}
	if err := s.collect(types.ProfilesCollection, func(rec any) {
		snap.Profiles = append(snap.Profiles, rec.(*types.Profile))
	}); err != nil {
		return nil, err
	}

	return snap, nil
}

// ExportByProfile snapshots only the records transitively reachable from
// one profile: its categories, their URLs, those URLs' tags and pictures,
// and the profile's exact theme. Dangling references along the walk are
// skipped like any other resolution gap. Returns ErrNotFound if the
// profile does not exist.
func (s *Service) ExportByProfile(profileID string) (*types.Snapshot, error) {
	profiles, err := s.store.Collection(types.ProfilesCollection)
	if err != nil {
		return nil, err
	}
	rec, err := profiles.Get(profileID)
	if err != nil {
		return nil, err
	}
	profile := rec.(*types.Profile)

	snap := emptySnapshot()
	snap.Profiles = append(snap.Profiles, profile)

	themes, err := s.store.Collection(types.ThemesCollection)
	if err != nil {
		return nil, err
	}
	if rec, err := themes.Get(profile.Theme); err == nil {
		snap.Themes = append(snap.Themes, rec.(*types.Theme))
	}

	categories, err := s.store.Collection(types.CategoriesCollection)
	if err != nil {
		return nil, err
	}
	urls, err := s.store.Collection(types.UrlsCollection)
	if err != nil {
		return nil, err
	}
	tags, err := s.store.Collection(types.TagsCollection)
	if err != nil {
		return nil, err
	}
	pictures, err := s.store.Collection(types.PicturesCollection)
	if err != nil {
		return nil, err
	}

	seenUrls := map[string]bool{}
	seenTags := map[string]bool{}
	seenPictures := map[string]bool{}

	for _, catID := range profile.Categories {
		rec, err := categories.Get(catID)
		if err != nil {
			continue
		}
		cat := rec.(*types.Category)
		snap.Categories = append(snap.Categories, cat)

		for _, urlID := range cat.Urls {
			if seenUrls[urlID] {
				continue
			}
			rec, err := urls.Get(urlID)
			if err != nil {
				continue
			}
			seenUrls[urlID] = true
			u := rec.(*types.Url)
			snap.Urls = append(snap.Urls, u)

			for _, tagID := range u.Tags {
				if seenTags[tagID] {
					continue
				}
				if rec, err := tags.Get(tagID); err == nil {
					seenTags[tagID] = true
					snap.Tags = append(snap.Tags, rec.(*types.Tag))
				}
			}
			if u.Picture != "" && !seenPictures[u.Picture] {
				if rec, err := pictures.Get(u.Picture); err == nil {
					seenPictures[u.Picture] = true
					snap.Pictures = append(snap.Pictures, rec.(*types.Picture))
				}
			}
		}
	}

	return snap, nil
}

func (s *Service) collect(name string, add func(rec any)) error {
	coll, err := s.store.Collection(name)
	if err != nil {
		return err
	}
	all, err := coll.GetAll()
	if err != nil {
		return err
	}
	for _, rec := range all {
		add(rec)
	}
	return nil
}

func emptySnapshot() *types.Snapshot {
	return &types.Snapshot{
		Version:    types.SnapshotVersion,
		ExportedAt: time.Now().UTC(),
		Pictures:   []*types.Picture{},
		Tags:       []*types.Tag{},
		Urls:       []*types.Url{},
		Themes:     []*types.Theme{},
		Categories: []*types.Category{},
		Profiles:   []*types.Profile{},
	}
}
