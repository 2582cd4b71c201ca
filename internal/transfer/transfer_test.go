package transfer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabula-app/tabula/internal/logger"
	"github.com/tabula-app/tabula/internal/sqlite"
	"github.com/tabula-app/tabula/internal/transfer"
	"github.com/tabula-app/tabula/pkg/types"
)

func newTestStore(t *testing.T) *sqlite.Backend {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func create[T any](t *testing.T, store types.Store, name string, entity any) *T {
	t.Helper()
	col, err := store.Collection(name)
	require.NoError(t, err)
	rec, err := col.Create(entity)
	require.NoError(t, err)
	return rec.(*T)
}

func TestExportAllIncludesEverything(t *testing.T) {
	store := newTestStore(t)
	svc := transfer.New(store, logger.Nop())

	create[types.Url](t, store, types.UrlsCollection, &types.Url{Name: "mine", Address: "https://mine"})

	snap, err := svc.ExportAll()
	require.NoError(t, err)

	assert.Equal(t, types.SnapshotVersion, snap.Version)
	assert.False(t, snap.ExportedAt.IsZero())

	// Seed data plus the one user record, readonly included.
	assert.Len(t, snap.Pictures, 3)
	assert.Len(t, snap.Tags, 4)
	assert.Len(t, snap.Urls, 7)
	assert.Len(t, snap.Themes, 4)
	assert.Len(t, snap.Categories, 3)
	assert.Len(t, snap.Profiles, 1)
}

func TestExportByProfileFiltersToReachable(t *testing.T) {
	store := newTestStore(t)
	svc := transfer.New(store, logger.Nop())

	pic := create[types.Picture](t, store, types.PicturesCollection, &types.Picture{Name: "p", ImageData: "img"})
	tag := create[types.Tag](t, store, types.TagsCollection, &types.Tag{Name: "t"})
	inside := create[types.Url](t, store, types.UrlsCollection, &types.Url{
		Name: "inside", Address: "https://in", Tags: []string{tag.ID}, Picture: pic.ID,
	})
	create[types.Url](t, store, types.UrlsCollection, &types.Url{Name: "outside", Address: "https://out"})
	cat := create[types.Category](t, store, types.CategoriesCollection, &types.Category{
		Name: "c", Urls: []string{inside.ID, "dangling-url"},
	})
	theme := create[types.Theme](t, store, types.ThemesCollection, &types.Theme{Name: "th", Renderer: "grid"})
	profile := create[types.Profile](t, store, types.ProfilesCollection, &types.Profile{
		Name: "pr", Categories: []string{cat.ID}, Theme: theme.ID,
	})

	snap, err := svc.ExportByProfile(profile.ID)
	require.NoError(t, err)

	require.Len(t, snap.Profiles, 1)
	assert.Equal(t, profile.ID, snap.Profiles[0].ID)
	require.Len(t, snap.Themes, 1)
	assert.Equal(t, theme.ID, snap.Themes[0].ID)
	require.Len(t, snap.Categories, 1)
	require.Len(t, snap.Urls, 1, "only the reachable url, dangling skipped")
	assert.Equal(t, "inside", snap.Urls[0].Name)
	require.Len(t, snap.Tags, 1)
	require.Len(t, snap.Pictures, 1)
}

func TestExportByProfileMissingProfile(t *testing.T) {
	store := newTestStore(t)
	svc := transfer.New(store, logger.Nop())

	_, err := svc.ExportByProfile("no-such-profile")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestImportMintsFreshIDsAndRemapsReferences(t *testing.T) {
	source := newTestStore(t)
	svc := transfer.New(source, logger.Nop())

	pic := create[types.Picture](t, source, types.PicturesCollection, &types.Picture{Name: "p", ImageData: "img"})
	url := create[types.Url](t, source, types.UrlsCollection, &types.Url{
		Name: "u", Address: "https://u", Picture: pic.ID,
	})
	cat := create[types.Category](t, source, types.CategoriesCollection, &types.Category{
		Name: "c", Urls: []string{url.ID},
	})
	theme := create[types.Theme](t, source, types.ThemesCollection, &types.Theme{Name: "th", Renderer: "list"})
	create[types.Profile](t, source, types.ProfilesCollection, &types.Profile{
		Name: "pr", Categories: []string{cat.ID}, Theme: theme.ID,
	})

	snap, err := svc.ExportAll()
	require.NoError(t, err)

	target := newTestStore(t)
	report, err := transfer.New(target, logger.Nop()).Import(snap)
	require.NoError(t, err)

	assert.Equal(t, 5, report.Created, "the five mutable records")
	assert.Equal(t, 21, report.Skipped, "every readonly seed record")
	assert.Empty(t, report.Errors)

	// The imported profile references the imported category and theme by
	// their new IDs, and the chain resolves down to the picture.
	profiles, err := target.Collection(types.ProfilesCollection)
	require.NoError(t, err)
	all, err := profiles.GetAll()
	require.NoError(t, err)

	var imported *types.Profile
	for _, rec := range all {
		if p := rec.(*types.Profile); p.Name == "pr" {
			imported = p
		}
	}
	require.NotNil(t, imported)
	assert.NotEqual(t, theme.ID, imported.Theme, "theme reference remapped to new ID")

	themes, err := target.Collection(types.ThemesCollection)
	require.NoError(t, err)
	rec, err := themes.Get(imported.Theme)
	require.NoError(t, err)
	assert.Equal(t, "th", rec.(*types.Theme).Name)

	require.Len(t, imported.Categories, 1)
	categories, err := target.Collection(types.CategoriesCollection)
	require.NoError(t, err)
	rec, err = categories.Get(imported.Categories[0])
	require.NoError(t, err)
	importedCat := rec.(*types.Category)
	require.Len(t, importedCat.Urls, 1)

	urls, err := target.Collection(types.UrlsCollection)
	require.NoError(t, err)
	rec, err = urls.Get(importedCat.Urls[0])
	require.NoError(t, err)
	importedUrl := rec.(*types.Url)
	assert.Equal(t, "u", importedUrl.Name)
	assert.NotEqual(t, url.ID, importedUrl.ID)

	pictures, err := target.Collection(types.PicturesCollection)
	require.NoError(t, err)
	rec, err = pictures.Get(importedUrl.Picture)
	require.NoError(t, err)
	assert.Equal(t, "img", rec.(*types.Picture).ImageData)
}

func TestImportKeepsOutOfSnapshotReferencesVerbatim(t *testing.T) {
	store := newTestStore(t)

	snap := &types.Snapshot{
		Version: types.SnapshotVersion,
		Urls: []*types.Url{
			{ID: "old-url", Name: "u", Address: "https://u", Tags: []string{"external-tag"}},
		},
	}

	report, err := transfer.New(store, logger.Nop()).Import(snap)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)

	urls, err := store.Collection(types.UrlsCollection)
	require.NoError(t, err)
	all, err := urls.GetAll()
	require.NoError(t, err)

	var imported *types.Url
	for _, rec := range all {
		if u := rec.(*types.Url); u.Name == "u" {
			imported = u
		}
	}
	require.NotNil(t, imported)
	assert.Equal(t, []string{"external-tag"}, imported.Tags, "unknown reference kept verbatim")
}

func TestImportCollectsPerRecordErrors(t *testing.T) {
	store := newTestStore(t)

	snap := &types.Snapshot{
		Version: types.SnapshotVersion,
		Urls: []*types.Url{
			{ID: "bad", Name: "", Address: "https://nameless"},
			{ID: "good", Name: "ok", Address: "https://ok"},
		},
	}

	report, err := transfer.New(store, logger.Nop()).Import(snap)
	require.NoError(t, err, "per-record failures never abort the run")
	assert.Equal(t, 1, report.Created)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, types.UrlsCollection, report.Errors[0].Collection)
}

func TestImportSkipsReadonlyRecords(t *testing.T) {
	store := newTestStore(t)

	snap := &types.Snapshot{
		Version: types.SnapshotVersion,
		Tags: []*types.Tag{
			{ID: "ro", Readonly: true, Name: "seed-ish"},
			{ID: "rw", Name: "normal"},
		},
	}

	report, err := transfer.New(store, logger.Nop()).Import(snap)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Skipped)
}

func TestImportNilSnapshot(t *testing.T) {
	store := newTestStore(t)
	_, err := transfer.New(store, logger.Nop()).Import(nil)
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestImportVersionMismatchProceeds(t *testing.T) {
	store := newTestStore(t)

	snap := &types.Snapshot{
		Version: "999",
		Tags:    []*types.Tag{{ID: "t", Name: "t"}},
	}

	report, err := transfer.New(store, logger.Nop()).Import(snap)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
}
