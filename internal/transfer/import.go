package transfer

import (
	"github.com/tabula-app/tabula/internal/logger"
	"github.com/tabula-app/tabula/pkg/types"
)

// ImportError records one record that could not be imported.
type ImportError struct {
	Collection string `json:"collection"`
	Name       string `json:"name"`
	Reason     string `json:"reason"`
}

// ImportReport summarizes one import run.
type ImportReport struct {
	Created int           `json:"created"`
	Skipped int           `json:"skipped"`
	Errors  []ImportError `json:"errors"`
}

// Import loads a snapshot into the store, best-effort. Every imported
// record goes through the plain Create primitive, so it always gets a
// fresh ID and never overwrites an existing record; references between
// records of the same snapshot are remapped to the new IDs. Records
// flagged readonly are skipped: seed content is re-created by the seed
// loader, never imported. A version mismatch is logged as a warning and
// the import proceeds anyway. Per-record failures are collected in the
// report; they never abort the run.
func (s *Service) Import(snap *types.Snapshot) (*ImportReport, error) {
	if snap == nil {
		return nil, types.ErrInvalidData
	}
	if snap.Version != types.SnapshotVersion {
		s.log.Warn("snapshot version mismatch, attempting import anyway",
			logger.String("got", snap.Version),
			logger.String("want", types.SnapshotVersion))
	}

	report := &ImportReport{Errors: []ImportError{}}

	// Leaf entities first so the ID remapping is ready when the records
	// referencing them are created. References that point outside the
	// snapshot are kept verbatim: they either resolve against the live
	// store or dangle, and dangling is tolerated everywhere.
	pictureIDs := map[string]string{}
	tagIDs := map[string]string{}
	urlIDs := map[string]string{}
	themeIDs := map[string]string{}
	categoryIDs := map[string]string{}

	pictures, err := s.store.Collection(types.PicturesCollection)
	if err != nil {
		return nil, err
	}
	for _, p := range snap.Pictures {
		if p.Readonly {
			report.Skipped++
			continue
		}
		created, err := pictures.Create(&types.Picture{
			Name: p.Name, ImageData: p.ImageData, AltText: p.AltText,
		})
		if err != nil {
			report.addError(types.PicturesCollection, p.Name, err)
			continue
		}
		pictureIDs[p.ID] = created.(*types.Picture).ID
		report.Created++
	}

	tags, err := s.store.Collection(types.TagsCollection)
	if err != nil {
		return nil, err
	}
	for _, t := range snap.Tags {
		if t.Readonly {
			report.Skipped++
			continue
		}
		created, err := tags.Create(&types.Tag{Name: t.Name, Synonyms: t.Synonyms})
		if err != nil {
			report.addError(types.TagsCollection, t.Name, err)
			continue
		}
		tagIDs[t.ID] = created.(*types.Tag).ID
		report.Created++
	}

	themes, err := s.store.Collection(types.ThemesCollection)
	if err != nil {
		return nil, err
	}
	for _, th := range snap.Themes {
		if th.Readonly {
			report.Skipped++
			continue
		}
		created, err := themes.Create(&types.Theme{
			Name: th.Name, Renderer: th.Renderer, Source: th.Source, Globals: th.Globals,
		})
		if err != nil {
			report.addError(types.ThemesCollection, th.Name, err)
			continue
		}
		themeIDs[th.ID] = created.(*types.Theme).ID
		report.Created++
	}

	urls, err := s.store.Collection(types.UrlsCollection)
	if err != nil {
		return nil, err
	}
	for _, u := range snap.Urls {
		if u.Readonly {
			report.Skipped++
			continue
		}
		created, err := urls.Create(&types.Url{
			Name:    u.Name,
			Address: u.Address,
			Tags:    remapAll(u.Tags, tagIDs),
			Picture: remap(u.Picture, pictureIDs),
		})
		if err != nil {
			report.addError(types.UrlsCollection, u.Name, err)
			continue
		}
		urlIDs[u.ID] = created.(*types.Url).ID
		report.Created++
	}

	categories, err := s.store.Collection(types.CategoriesCollection)
	if err != nil {
		return nil, err
	}
	for _, c := range snap.Categories {
		if c.Readonly {
			report.Skipped++
			continue
		}
		created, err := categories.Create(&types.Category{
			Name: c.Name, Urls: remapAll(c.Urls, urlIDs),
		})
		if err != nil {
			report.addError(types.CategoriesCollection, c.Name, err)
			continue
		}
		categoryIDs[c.ID] = created.(*types.Category).ID
		report.Created++
	}

	profiles, err := s.store.Collection(types.ProfilesCollection)
	if err != nil {
		return nil, err
	}
	for _, p := range snap.Profiles {
		if p.Readonly {
			report.Skipped++
			continue
		}
		_, err := profiles.Create(&types.Profile{
			Name:          p.Name,
			Categories:    remapAll(p.Categories, categoryIDs),
			IncludeRecent: p.IncludeRecent,
			NumRecent:     p.NumRecent,
			Theme:         remap(p.Theme, themeIDs),
		})
		if err != nil {
			report.addError(types.ProfilesCollection, p.Name, err)
			continue
		}
		report.Created++
	}

	return report, nil
}

func (r *ImportReport) addError(collection, name string, err error) {
	r.Errors = append(r.Errors, ImportError{
		Collection: collection,
		Name:       name,
		Reason:     err.Error(),
	})
}

// remap translates one reference through the old-to-new ID map, keeping
// it verbatim when the target was not part of the snapshot.
func remap(id string, ids map[string]string) string {
	if newID, ok := ids[id]; ok {
		return newID
	}
	return id
}

func remapAll(refs []string, ids map[string]string) []string {
	out := make([]string, 0, len(refs))
	for _, id := range refs {
		out = append(out, remap(id, ids))
	}
	return out
}
