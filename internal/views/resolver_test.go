package views_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabula-app/tabula/pkg/types"
)

// TestThemeDataResolution walks the full composition path: a profile
// with one category, one URL carrying a picture, and the Recent category
// enabled.
func TestThemeDataResolution(t *testing.T) {
	f := newFixture(t)

	pic := f.createPicture("Gopher", "base64-payload")
	url := f.createUrl("Go Blog", "https://u1.example", pic.ID)
	cat := f.createCategory("Favorites", url.ID)
	theme := f.createTheme("Grid", "grid")
	profile := f.createProfile(&types.Profile{
		Name:          "Personal",
		Categories:    []string{cat.ID},
		IncludeRecent: true,
		NumRecent:     5,
		Theme:         theme.ID,
	})

	f.click(url.ID)

	data, err := f.svc.ThemeDataByProfile(profile.ID)
	require.NoError(t, err)
	require.NotNil(t, data)

	assert.Equal(t, profile.ID, data.ProfileID)
	assert.Equal(t, "Personal", data.ProfileName)
	assert.Equal(t, theme.ID, data.ThemeID)
	require.Len(t, data.Categories, 2)

	// The synthetic Recent category comes first and has no backing ID.
	recent := data.Categories[0]
	assert.Equal(t, types.RecentCategoryName, recent.DisplayName)
	assert.Empty(t, recent.CategoryID)
	require.Len(t, recent.Urls, 1)
	assert.Equal(t, "Go Blog", recent.Urls[0].Name)

	resolved := data.Categories[1]
	assert.Equal(t, cat.ID, resolved.CategoryID)
	assert.Equal(t, "Favorites", resolved.DisplayName)
	require.Len(t, resolved.Urls, 1)
	assert.Equal(t, url.ID, resolved.Urls[0].ID)
	assert.Equal(t, "https://u1.example", resolved.Urls[0].Address)
	assert.Equal(t, "base64-payload", resolved.Urls[0].Picture)
}

// TestThemeDataReresolvesAfterPictureDelete checks that deleting a
// picture between two resolutions drops only the embedded payload.
func TestThemeDataReresolvesAfterPictureDelete(t *testing.T) {
	f := newFixture(t)

	pic := f.createPicture("Gopher", "payload")
	url := f.createUrl("Go Blog", "https://u1", pic.ID)
	cat := f.createCategory("Favorites", url.ID)
	theme := f.createTheme("Grid", "list")
	profile := f.createProfile(&types.Profile{
		Name: "Personal", Categories: []string{cat.ID}, Theme: theme.ID,
	})

	data, err := f.svc.ThemeDataByProfile(profile.ID)
	require.NoError(t, err)
	require.Len(t, data.Categories, 1)
	assert.Equal(t, "payload", data.Categories[0].Urls[0].Picture)

	require.NoError(t, f.collection(types.PicturesCollection).Delete(pic.ID))

	data, err = f.svc.ThemeDataByProfile(profile.ID)
	require.NoError(t, err)
	require.Len(t, data.Categories, 1)
	require.Len(t, data.Categories[0].Urls, 1, "the URL itself survives")
	assert.Empty(t, data.Categories[0].Urls[0].Picture)
}

func TestThemeDataMissingProfileIsNil(t *testing.T) {
	f := newFixture(t)

	data, err := f.svc.ThemeDataByProfile("no-such-profile")
	require.NoError(t, err)
	assert.Nil(t, data)

	data, err = f.svc.ThemeDataByProfile("")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestThemeDataDropsDanglingReferences(t *testing.T) {
	f := newFixture(t)

	kept := f.createUrl("Kept", "https://kept", "")
	doomed := f.createUrl("Doomed", "https://doomed", "")
	cat := f.createCategory("Favorites", doomed.ID, kept.ID)
	deadCat := f.createCategory("Dead", kept.ID)
	theme := f.createTheme("Grid", "grid")
	profile := f.createProfile(&types.Profile{
		Name:       "Personal",
		Categories: []string{deadCat.ID, cat.ID},
		Theme:      theme.ID,
	})

	require.NoError(t, f.collection(types.UrlsCollection).Delete(doomed.ID))
	require.NoError(t, f.collection(types.CategoriesCollection).Delete(deadCat.ID))

	data, err := f.svc.ThemeDataByProfile(profile.ID)
	require.NoError(t, err)
	require.Len(t, data.Categories, 1, "deleted category elided")
	require.Len(t, data.Categories[0].Urls, 1, "deleted url elided")
	assert.Equal(t, "Kept", data.Categories[0].Urls[0].Name)
}

func TestThemeDataRecentOmittedWhenEmpty(t *testing.T) {
	f := newFixture(t)

	theme := f.createTheme("Grid", "grid")
	profile := f.createProfile(&types.Profile{
		Name:          "Personal",
		IncludeRecent: true,
		NumRecent:     5,
		Theme:         theme.ID,
	})

	// No clicks recorded: no Recent category at all.
	data, err := f.svc.ThemeDataByProfile(profile.ID)
	require.NoError(t, err)
	assert.Empty(t, data.Categories)
}

func TestThemeDataRecentDisabled(t *testing.T) {
	f := newFixture(t)

	url := f.createUrl("Go Blog", "https://u1", "")
	cat := f.createCategory("Favorites", url.ID)
	theme := f.createTheme("Grid", "grid")
	profile := f.createProfile(&types.Profile{
		Name:          "Personal",
		Categories:    []string{cat.ID},
		IncludeRecent: false,
		NumRecent:     5,
		Theme:         theme.ID,
	})

	f.click(url.ID)
	time.Sleep(2 * time.Millisecond)

	data, err := f.svc.ThemeDataByProfile(profile.ID)
	require.NoError(t, err)
	require.Len(t, data.Categories, 1)
	assert.Equal(t, "Favorites", data.Categories[0].DisplayName)
}
