package views_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentUrlsOrdersByLastClick(t *testing.T) {
	f := newFixture(t)
	a := f.createUrl("A", "https://a", "")
	b := f.createUrl("B", "https://b", "")
	c := f.createUrl("C", "https://c", "")

	f.click(a.ID)
	time.Sleep(5 * time.Millisecond)
	f.click(b.ID)
	time.Sleep(5 * time.Millisecond)
	f.click(c.ID)
	time.Sleep(5 * time.Millisecond)
	f.click(a.ID) // A again, so A outranks C.

	urls, err := f.svc.RecentUrls(10)
	require.NoError(t, err)
	require.Len(t, urls, 3)
	assert.Equal(t, "A", urls[0].Name)
	assert.Equal(t, "C", urls[1].Name)
	assert.Equal(t, "B", urls[2].Name)
}

func TestRecentUrlsSkipsDeletedAndFillsFromHistory(t *testing.T) {
	f := newFixture(t)
	a := f.createUrl("A", "https://a", "")
	b := f.createUrl("B", "https://b", "")
	c := f.createUrl("C", "https://c", "")

	f.click(a.ID)
	time.Sleep(5 * time.Millisecond)
	f.click(b.ID)
	time.Sleep(5 * time.Millisecond)
	f.click(c.ID)

	require.NoError(t, f.collection("urls").Delete(c.ID))

	// limit 2: the deleted C is skipped and A from further back fills in.
	urls, err := f.svc.RecentUrls(2)
	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.Equal(t, "B", urls[0].Name)
	assert.Equal(t, "A", urls[1].Name)
}

func TestRecentUrlsLimits(t *testing.T) {
	f := newFixture(t)
	a := f.createUrl("A", "https://a", "")
	f.click(a.ID)

	urls, err := f.svc.RecentUrls(0)
	require.NoError(t, err)
	assert.Empty(t, urls)

	urls, err = f.svc.RecentUrls(-1)
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestRecentUrlsEmptyHistory(t *testing.T) {
	f := newFixture(t)
	urls, err := f.svc.RecentUrls(5)
	require.NoError(t, err)
	assert.Empty(t, urls)
}
