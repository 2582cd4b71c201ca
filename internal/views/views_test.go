package views_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tabula-app/tabula/internal/sqlite"
	"github.com/tabula-app/tabula/internal/views"
	"github.com/tabula-app/tabula/pkg/types"
)

// fixture wraps an attached backend and the entities a test creates
// through it.
type fixture struct {
	t       *testing.T
	backend *sqlite.Backend
	svc     *views.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return &fixture{t: t, backend: b, svc: views.New(b)}
}

func (f *fixture) collection(name string) types.Collection {
	f.t.Helper()
	col, err := f.backend.Collection(name)
	require.NoError(f.t, err)
	return col
}

func (f *fixture) createPicture(name, imageData string) *types.Picture {
	f.t.Helper()
	rec, err := f.collection(types.PicturesCollection).Create(&types.Picture{Name: name, ImageData: imageData})
	require.NoError(f.t, err)
	return rec.(*types.Picture)
}

func (f *fixture) createTag(name string) *types.Tag {
	f.t.Helper()
	rec, err := f.collection(types.TagsCollection).Create(&types.Tag{Name: name})
	require.NoError(f.t, err)
	return rec.(*types.Tag)
}

func (f *fixture) createUrl(name, address, picture string, tags ...string) *types.Url {
	f.t.Helper()
	rec, err := f.collection(types.UrlsCollection).Create(&types.Url{
		Name: name, Address: address, Picture: picture, Tags: tags,
	})
	require.NoError(f.t, err)
	return rec.(*types.Url)
}

func (f *fixture) createCategory(name string, urlIDs ...string) *types.Category {
	f.t.Helper()
	rec, err := f.collection(types.CategoriesCollection).Create(&types.Category{Name: name, Urls: urlIDs})
	require.NoError(f.t, err)
	return rec.(*types.Category)
}

func (f *fixture) createTheme(name, renderer string) *types.Theme {
	f.t.Helper()
	rec, err := f.collection(types.ThemesCollection).Create(&types.Theme{Name: name, Renderer: renderer})
	require.NoError(f.t, err)
	return rec.(*types.Theme)
}

func (f *fixture) createProfile(p *types.Profile) *types.Profile {
	f.t.Helper()
	rec, err := f.collection(types.ProfilesCollection).Create(p)
	require.NoError(f.t, err)
	return rec.(*types.Profile)
}

func (f *fixture) click(urlID string) {
	f.t.Helper()
	clicks, err := f.backend.Clicks()
	require.NoError(f.t, err)
	_, err = clicks.Record(urlID)
	require.NoError(f.t, err)
}
