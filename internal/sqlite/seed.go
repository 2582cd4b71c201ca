// This file implements built-in content seeding on backend attach: the
// fixed graph of pictures, tags, urls, categories, profiles, and themes
// every fresh store starts with.
package sqlite

import (
	"database/sql"
	"fmt"
)

// metaKeySeeded is the meta-table flag that marks seeding as complete. It
// is written in the same transaction as the seed rows, so an interrupted
// seed leaves zero seed rows and no flag and the next attach retries
// cleanly.
const metaKeySeeded = "preloaded_data_loaded"

// Single-color 1x1 PNGs used as built-in link pictures.
const (
	seedImageBlue  = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="
	seedImageGreen = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="
	seedImageAmber = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8/5+hHgAHggJ/PchI7wAAAABJRU5ErkJggg=="
)

// seedPicture, seedTag, seedUrl, seedCategory, seedProfile, and seedTheme
// describe the built-in dataset. References use the key fields below, not
// IDs: IDs are minted during seeding and the graph is wired up as it is
// inserted, so the seed set is internally consistent by construction.
type seedPicture struct {
	key       string
	name      string
	imageData string
	altText   string
}

type seedTag struct {
	key      string
	name     string
	synonyms []string
}

type seedUrl struct {
	key     string
	name    string
	address string
	tags    []string // seedTag keys
	picture string   // seedPicture key, empty for none
}

type seedCategory struct {
	key  string
	name string
	urls []string // seedUrl keys
}

type seedTheme struct {
	key      string
	name     string
	renderer string
	source   string
	globals  map[string]any
}

type seedProfile struct {
	name          string
	categories    []string // seedCategory keys
	includeRecent bool
	numRecent     int
	theme         string // seedTheme key
}

var seedPictures = []seedPicture{
	{"go", "Go gopher", seedImageBlue, "Go programming language"},
	{"news", "Newspaper", seedImageAmber, "News site"},
	{"mail", "Envelope", seedImageGreen, "Web mail"},
}

var seedTags = []seedTag{
	{"dev", "development", []string{"programming", "coding"}},
	{"news", "news", []string{"headlines", "press"}},
	{"reference", "reference", []string{"docs", "documentation"}},
	{"social", "social", []string{"community"}},
}

var seedUrls = []seedUrl{
	{"golang", "Go", "https://go.dev", []string{"dev", "reference"}, "go"},
	{"github", "GitHub", "https://github.com", []string{"dev", "social"}, ""},
	{"stdlib", "Go Packages", "https://pkg.go.dev/std", []string{"dev", "reference"}, "go"},
	{"hn", "Hacker News", "https://news.ycombinator.com", []string{"news", "dev"}, "news"},
	{"wiki", "Wikipedia", "https://en.wikipedia.org", []string{"reference"}, ""},
	{"mail", "Mail", "https://mail.example.com", []string{"social"}, "mail"},
}

var seedCategories = []seedCategory{
	{"development", "Development", []string{"golang", "github", "stdlib"}},
	{"reading", "Reading", []string{"hn", "wiki"}},
	{"daily", "Daily", []string{"mail", "hn"}},
}

var seedThemes = []seedTheme{
	{"grid", "Grid", "grid", "grid: categories as columns of tiles",
		map[string]any{"columns": 4}},
	{"list", "List", "list", "list: categories as stacked link lists", nil},
	{"compact", "Compact", "compact", "compact: single dense column", nil},
	{"plain", "Plain", "plain", "plain: unstyled fallback markup", nil},
}

var seedProfiles = []seedProfile{
	{"Default", []string{"development", "reading", "daily"}, true, 5, "grid"},
}

// loadSeedData populates the store with the built-in dataset exactly once
// across the lifetime of the persisted database. All rows carry
// readonly=1 and are inserted together with the seeded flag in a single
// transaction.
func loadSeedData(db *sql.DB) error {
	var flag string
	err := db.QueryRow("SELECT value FROM meta WHERE key = ?", metaKeySeeded).Scan(&flag)
	if err == nil && flag == "true" {
		return nil
	}
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("reading seed flag: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	pictureIDs := make(map[string]string, len(seedPictures))
	for _, p := range seedPictures {
		id := newUUID()
		pictureIDs[p.key] = id
		_, err := tx.Exec(
			"INSERT INTO pictures (picture_id, readonly, name, image_data, alt_text) VALUES (?, 1, ?, ?, ?)",
			id, p.name, p.imageData, p.altText)
		if err != nil {
			return fmt.Errorf("seeding picture %s: %w", p.name, err)
		}
	}

	tagIDs := make(map[string]string, len(seedTags))
	for _, tg := range seedTags {
		id := newUUID()
		tagIDs[tg.key] = id
		synonyms, err := marshalStrings(tg.synonyms)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			"INSERT INTO tags (tag_id, readonly, name, synonyms) VALUES (?, 1, ?, ?)",
			id, tg.name, synonyms)
		if err != nil {
			return fmt.Errorf("seeding tag %s: %w", tg.name, err)
		}
	}

	urlIDs := make(map[string]string, len(seedUrls))
	for _, u := range seedUrls {
		id := newUUID()
		urlIDs[u.key] = id
		tagList := make([]string, 0, len(u.tags))
		for _, key := range u.tags {
			tagList = append(tagList, tagIDs[key])
		}
		tags, err := marshalStrings(tagList)
		if err != nil {
			return err
		}
		var picture sql.NullString
		if u.picture != "" {
			picture = sql.NullString{String: pictureIDs[u.picture], Valid: true}
		}
		_, err = tx.Exec(
			"INSERT INTO urls (url_id, readonly, name, url, tags, picture_id) VALUES (?, 1, ?, ?, ?, ?)",
			id, u.name, u.address, tags, picture)
		if err != nil {
			return fmt.Errorf("seeding url %s: %w", u.name, err)
		}
	}

	categoryIDs := make(map[string]string, len(seedCategories))
	for _, c := range seedCategories {
		id := newUUID()
		categoryIDs[c.key] = id
		urlList := make([]string, 0, len(c.urls))
		for _, key := range c.urls {
			urlList = append(urlList, urlIDs[key])
		}
		urls, err := marshalStrings(urlList)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			"INSERT INTO categories (category_id, readonly, name, urls) VALUES (?, 1, ?, ?)",
			id, c.name, urls)
		if err != nil {
			return fmt.Errorf("seeding category %s: %w", c.name, err)
		}
	}

	themeIDs := make(map[string]string, len(seedThemes))
	for _, th := range seedThemes {
		id := newUUID()
		themeIDs[th.key] = id
		globals, err := marshalGlobals(th.globals)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			"INSERT INTO themes (theme_id, readonly, name, renderer, source, globals) VALUES (?, 1, ?, ?, ?, ?)",
			id, th.name, th.renderer, th.source, globals)
		if err != nil {
			return fmt.Errorf("seeding theme %s: %w", th.name, err)
		}
	}

	for _, p := range seedProfiles {
		categoryList := make([]string, 0, len(p.categories))
		for _, key := range p.categories {
			categoryList = append(categoryList, categoryIDs[key])
		}
		categories, err := marshalStrings(categoryList)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			"INSERT INTO profiles (profile_id, readonly, name, categories, include_recent, num_recent, theme_id) VALUES (?, 1, ?, ?, ?, ?, ?)",
			newUUID(), p.name, categories, p.includeRecent, p.numRecent, themeIDs[p.theme])
		if err != nil {
			return fmt.Errorf("seeding profile %s: %w", p.name, err)
		}
	}

	_, err = tx.Exec(
		"INSERT INTO meta (key, value) VALUES (?, 'true') ON CONFLICT(key) DO UPDATE SET value = 'true'",
		metaKeySeeded)
	if err != nil {
		return fmt.Errorf("writing seed flag: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}
