package sqlite_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabula-app/tabula/internal/sqlite"
	"github.com/tabula-app/tabula/pkg/types"
)

// newTestBackend creates a backend attached to a temp directory.
func newTestBackend(t *testing.T) (*sqlite.Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { b.Detach() })
	return b, dir
}

func mustCollection(t *testing.T, b *sqlite.Backend, name string) types.Collection {
	t.Helper()
	col, err := b.Collection(name)
	require.NoError(t, err)
	return col
}

func TestAttachDetachLifecycle(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "attach creates data directory and database file",
			run: func(t *testing.T) {
				dir := filepath.Join(t.TempDir(), "new-data")
				b := sqlite.NewBackend()
				require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
				defer b.Detach()

				_, err := os.Stat(filepath.Join(dir, "tabula.db"))
				assert.NoError(t, err)
			},
		},
		{
			name: "double attach returns ErrAlreadyAttached",
			run: func(t *testing.T) {
				b, _ := newTestBackend(t)
				err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
				assert.ErrorIs(t, err, types.ErrAlreadyAttached)
			},
		},
		{
			name: "detach is idempotent",
			run: func(t *testing.T) {
				b, _ := newTestBackend(t)
				require.NoError(t, b.Detach())
				require.NoError(t, b.Detach())
			},
		},
		{
			name: "operations after detach return ErrStoreDetached",
			run: func(t *testing.T) {
				b, _ := newTestBackend(t)
				b.Detach()
				_, err := b.Collection(types.UrlsCollection)
				assert.ErrorIs(t, err, types.ErrStoreDetached)
				_, err = b.Clicks()
				assert.ErrorIs(t, err, types.ErrStoreDetached)
			},
		},
		{
			name: "unknown backend returns error",
			run: func(t *testing.T) {
				b := sqlite.NewBackend()
				err := b.Attach(types.Config{Backend: "postgres", DataDir: t.TempDir()})
				assert.ErrorIs(t, err, types.ErrBackendUnknown)
			},
		},
		{
			name: "empty backend returns error",
			run: func(t *testing.T) {
				b := sqlite.NewBackend()
				err := b.Attach(types.Config{Backend: "", DataDir: t.TempDir()})
				assert.ErrorIs(t, err, types.ErrBackendEmpty)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.run)
	}
}

func TestCollectionStandardNames(t *testing.T) {
	b, _ := newTestBackend(t)

	for _, name := range types.StandardCollections {
		col, err := b.Collection(name)
		require.NoError(t, err, "collection %s", name)
		require.NotNil(t, col)
	}

	_, err := b.Collection("nonsense")
	assert.ErrorIs(t, err, types.ErrCollectionNotFound)
}

func TestCreateGeneratesUniqueIDs(t *testing.T) {
	b, _ := newTestBackend(t)
	tags := mustCollection(t, b, types.TagsCollection)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		rec, err := tags.Create(&types.Tag{Name: "tag", ID: "caller-supplied", Readonly: true})
		require.NoError(t, err)
		tag := rec.(*types.Tag)

		assert.NotEqual(t, "caller-supplied", tag.ID)
		assert.False(t, tag.Readonly, "caller-supplied readonly must be ignored")
		assert.False(t, seen[tag.ID], "duplicate ID %s", tag.ID)
		seen[tag.ID] = true
	}
}

func TestReadonlyEntitiesAreImmutable(t *testing.T) {
	b, _ := newTestBackend(t)

	for _, name := range types.StandardCollections {
		col := mustCollection(t, b, name)
		all, err := col.GetAll()
		require.NoError(t, err)
		require.NotEmpty(t, all, "seed data missing in %s", name)

		// Every seed record refuses update and delete.
		id := entityID(t, all[0])
		newName := "renamed"
		var patch any
		switch name {
		case types.PicturesCollection:
			patch = &types.PicturePatch{Name: &newName}
		case types.TagsCollection:
			patch = &types.TagPatch{Name: &newName}
		case types.UrlsCollection:
			patch = &types.UrlPatch{Name: &newName}
		case types.ThemesCollection:
			patch = &types.ThemePatch{Name: &newName}
		case types.CategoriesCollection:
			patch = &types.CategoryPatch{Name: &newName}
		case types.ProfilesCollection:
			patch = &types.ProfilePatch{Name: &newName}
		}

		_, err = col.Update(id, patch)
		assert.ErrorIs(t, err, types.ErrReadonly, "update %s", name)
		err = col.Delete(id)
		assert.ErrorIs(t, err, types.ErrReadonly, "delete %s", name)
	}
}

func entityID(t *testing.T, rec any) string {
	t.Helper()
	switch e := rec.(type) {
	case *types.Picture:
		return e.ID
	case *types.Tag:
		return e.ID
	case *types.Url:
		return e.ID
	case *types.Theme:
		return e.ID
	case *types.Category:
		return e.ID
	case *types.Profile:
		return e.ID
	}
	t.Fatalf("unexpected record type %T", rec)
	return ""
}

func TestUpdateMergesInsteadOfReplacing(t *testing.T) {
	b, _ := newTestBackend(t)
	urls := mustCollection(t, b, types.UrlsCollection)

	rec, err := urls.Create(&types.Url{
		Name:    "Example",
		Address: "https://example.com",
		Tags:    []string{"t1", "t2"},
		Picture: "p1",
	})
	require.NoError(t, err)
	created := rec.(*types.Url)

	newName := "Renamed"
	rec, err = urls.Update(created.ID, &types.UrlPatch{Name: &newName})
	require.NoError(t, err)
	updated := rec.(*types.Url)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "https://example.com", updated.Address, "omitted field must be retained")
	assert.Equal(t, []string{"t1", "t2"}, updated.Tags, "omitted field must be retained")
	assert.Equal(t, "p1", updated.Picture, "omitted field must be retained")
	assert.Equal(t, created.ID, updated.ID)
}

func TestUrlPatchRemovePicture(t *testing.T) {
	b, _ := newTestBackend(t)
	urls := mustCollection(t, b, types.UrlsCollection)

	rec, err := urls.Create(&types.Url{Name: "u", Address: "https://u", Picture: "p1"})
	require.NoError(t, err)
	id := rec.(*types.Url).ID

	rec, err = urls.Update(id, &types.UrlPatch{RemovePicture: true})
	require.NoError(t, err)
	assert.Empty(t, rec.(*types.Url).Picture)
}

func TestProfileUpdateValidation(t *testing.T) {
	b, _ := newTestBackend(t)
	profiles := mustCollection(t, b, types.ProfilesCollection)

	rec, err := profiles.Create(&types.Profile{Name: "p", Theme: "some-theme", NumRecent: 3})
	require.NoError(t, err)
	id := rec.(*types.Profile).ID

	// A profile can never end up without a theme.
	empty := ""
	_, err = profiles.Update(id, &types.ProfilePatch{Theme: &empty})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	negative := -1
	_, err = profiles.Update(id, &types.ProfilePatch{NumRecent: &negative})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	// The rejected patches left the record untouched.
	rec, err = profiles.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "some-theme", rec.(*types.Profile).Theme)
	assert.Equal(t, 3, rec.(*types.Profile).NumRecent)

	other := "other-theme"
	rec, err = profiles.Update(id, &types.ProfilePatch{Theme: &other})
	require.NoError(t, err)
	assert.Equal(t, "other-theme", rec.(*types.Profile).Theme)
}

func TestDeleteDoesNotCascade(t *testing.T) {
	b, _ := newTestBackend(t)
	tags := mustCollection(t, b, types.TagsCollection)
	urls := mustCollection(t, b, types.UrlsCollection)

	tagRec, err := tags.Create(&types.Tag{Name: "doomed"})
	require.NoError(t, err)
	tagID := tagRec.(*types.Tag).ID

	urlRec, err := urls.Create(&types.Url{Name: "u", Address: "https://u", Tags: []string{tagID}})
	require.NoError(t, err)
	urlID := urlRec.(*types.Url).ID

	require.NoError(t, tags.Delete(tagID))

	// The URL record still holds the dangling reference.
	rec, err := urls.Get(urlID)
	require.NoError(t, err)
	assert.Equal(t, []string{tagID}, rec.(*types.Url).Tags)
}

func TestGetErrors(t *testing.T) {
	b, _ := newTestBackend(t)
	urls := mustCollection(t, b, types.UrlsCollection)

	_, err := urls.Get("")
	assert.ErrorIs(t, err, types.ErrInvalidID)

	_, err = urls.Get("no-such-id")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = urls.Update("no-such-id", &types.UrlPatch{})
	assert.ErrorIs(t, err, types.ErrNotFound)

	err = urls.Delete("no-such-id")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestCreateRejectsWrongTypeAndEmptyName(t *testing.T) {
	b, _ := newTestBackend(t)
	urls := mustCollection(t, b, types.UrlsCollection)

	_, err := urls.Create(&types.Tag{Name: "wrong"})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	_, err = urls.Create(&types.Url{Address: "https://nameless"})
	assert.ErrorIs(t, err, types.ErrInvalidName)
}

func TestDestroyResetsToSeedState(t *testing.T) {
	b, dir := newTestBackend(t)
	urls := mustCollection(t, b, types.UrlsCollection)

	seeded, err := urls.GetAll()
	require.NoError(t, err)

	_, err = urls.Create(&types.Url{Name: "mine", Address: "https://mine"})
	require.NoError(t, err)

	require.NoError(t, b.Destroy())
	_, err = os.Stat(filepath.Join(dir, "tabula.db"))
	assert.True(t, os.IsNotExist(err), "database file must be removed")

	// Re-attach starts from empty and re-runs the seed loader.
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	urls = mustCollection(t, b, types.UrlsCollection)
	after, err := urls.GetAll()
	require.NoError(t, err)
	assert.Len(t, after, len(seeded), "only seed data after reset")
}
