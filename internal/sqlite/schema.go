// Package sqlite implements the SQLite storage backend for Tabula.
package sqlite

// Schema DDL for all collections plus the meta table. References between
// entities are plain TEXT columns, never foreign keys: every reference is
// weak and deletes must not cascade.
const (
	createPictures = `CREATE TABLE IF NOT EXISTS pictures (
    picture_id TEXT PRIMARY KEY,
    readonly INTEGER NOT NULL DEFAULT 0,
    name TEXT NOT NULL,
    image_data TEXT NOT NULL,
    alt_text TEXT NOT NULL
);`

	createTags = `CREATE TABLE IF NOT EXISTS tags (
    tag_id TEXT PRIMARY KEY,
    readonly INTEGER NOT NULL DEFAULT 0,
    name TEXT NOT NULL,
    synonyms TEXT NOT NULL
);`

	createUrls = `CREATE TABLE IF NOT EXISTS urls (
    url_id TEXT PRIMARY KEY,
    readonly INTEGER NOT NULL DEFAULT 0,
    name TEXT NOT NULL,
    url TEXT NOT NULL,
    tags TEXT NOT NULL,
    picture_id TEXT
);`

	createThemes = `CREATE TABLE IF NOT EXISTS themes (
    theme_id TEXT PRIMARY KEY,
    readonly INTEGER NOT NULL DEFAULT 0,
    name TEXT NOT NULL,
    renderer TEXT NOT NULL,
    source TEXT NOT NULL DEFAULT '',
    globals TEXT NOT NULL DEFAULT '{}'
);`

	createCategories = `CREATE TABLE IF NOT EXISTS categories (
    category_id TEXT PRIMARY KEY,
    readonly INTEGER NOT NULL DEFAULT 0,
    name TEXT NOT NULL,
    urls TEXT NOT NULL
);`

	createProfiles = `CREATE TABLE IF NOT EXISTS profiles (
    profile_id TEXT PRIMARY KEY,
    readonly INTEGER NOT NULL DEFAULT 0,
    name TEXT NOT NULL,
    categories TEXT NOT NULL,
    include_recent INTEGER NOT NULL DEFAULT 0,
    num_recent INTEGER NOT NULL DEFAULT 0,
    theme_id TEXT NOT NULL
);`

	createClicks = `CREATE TABLE IF NOT EXISTS clicks (
    click_id TEXT PRIMARY KEY,
    url_id TEXT NOT NULL,
    timestamp TEXT NOT NULL,
    hour INTEGER NOT NULL,
    weekday INTEGER NOT NULL
);`

	createMeta = `CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`
)

// Indexes for the click log's lookup dimensions.
const (
	indexClicksUrl       = `CREATE INDEX IF NOT EXISTS idx_clicks_url_id ON clicks(url_id);`
	indexClicksTimestamp = `CREATE INDEX IF NOT EXISTS idx_clicks_timestamp ON clicks(timestamp);`
	indexClicksHour      = `CREATE INDEX IF NOT EXISTS idx_clicks_hour ON clicks(hour);`
	indexClicksWeekday   = `CREATE INDEX IF NOT EXISTS idx_clicks_weekday ON clicks(weekday);`
)

// schemaDDL lists the table creation statements in execution order.
var schemaDDL = []string{
	createPictures,
	createTags,
	createUrls,
	createThemes,
	createCategories,
	createProfiles,
	createClicks,
	createMeta,
}

// indexDDL lists the index creation statements.
var indexDDL = []string{
	indexClicksUrl,
	indexClicksTimestamp,
	indexClicksHour,
	indexClicksWeekday,
}
