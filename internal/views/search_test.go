package views_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMatchesNameAndAddress(t *testing.T) {
	f := newFixture(t)
	f.createUrl("My Blog", "https://blog.example.com", "")
	f.createUrl("Docs", "https://docs.example.com", "")

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"matches name case-insensitively", "my blog", []string{"My Blog"}},
		{"matches address substring", "docs.example", []string{"Docs"}},
		// The seed "Mail" url lives on mail.example.com, so it matches too.
		{"substring across both fields", "example.com", []string{"Mail", "My Blog", "Docs"}},
		{"no match", "zzz-nothing", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			urls, err := f.svc.Search(tt.query)
			require.NoError(t, err)
			names := []string{}
			for _, u := range urls {
				names = append(names, u.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestSearchEmptyQueryMatchesAll(t *testing.T) {
	f := newFixture(t)
	urls, err := f.svc.Search("")
	require.NoError(t, err)
	// The six seed URLs.
	assert.Len(t, urls, 6)
}

func TestUrlsByTag(t *testing.T) {
	f := newFixture(t)
	tag := f.createTag("mine")
	f.createUrl("A", "https://a", "", tag.ID)
	f.createUrl("B", "https://b", "")
	f.createUrl("C", "https://c", "", tag.ID, "some-other-tag")

	urls, err := f.svc.UrlsByTag(tag.ID)
	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.Equal(t, "A", urls[0].Name)
	assert.Equal(t, "C", urls[1].Name)
}

func TestUrlsByTagUnknownTagIsEmpty(t *testing.T) {
	f := newFixture(t)
	urls, err := f.svc.UrlsByTag("no-such-tag")
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestUrlsByCategoryPreservesOrderAndDropsDangling(t *testing.T) {
	f := newFixture(t)
	a := f.createUrl("A", "https://a", "")
	b := f.createUrl("B", "https://b", "")
	c := f.createUrl("C", "https://c", "")
	cat := f.createCategory("mixed", b.ID, a.ID, c.ID)

	// Delete the middle entry; resolution drops it without reordering.
	require.NoError(t, f.collection("urls").Delete(a.ID))

	urls, err := f.svc.UrlsByCategory(cat.ID)
	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.Equal(t, "B", urls[0].Name)
	assert.Equal(t, "C", urls[1].Name)
}

func TestUrlsByCategoryMissingCategoryIsEmpty(t *testing.T) {
	f := newFixture(t)
	urls, err := f.svc.UrlsByCategory("no-such-category")
	require.NoError(t, err)
	assert.Empty(t, urls)
}
