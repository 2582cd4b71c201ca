package types

// RecentCategoryName is the display name of the synthetic category
// assembled from click recency. It has no backing Category record and its
// ID field is left empty so round-trip code never mistakes it for one.
const RecentCategoryName = "Recent"

// ThemeUrl is one render-ready link inside a resolved category. Picture
// holds the referenced picture's image payload only; it is empty when the
// URL has no picture or the reference dangles.
type ThemeUrl struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"url"`
	Picture string `json:"picture,omitempty"`
}

// ThemeCategory is one resolved category in a profile's view. CategoryID
// is empty for the synthetic "Recent" category.
type ThemeCategory struct {
	CategoryID  string     `json:"categoryId,omitempty"`
	DisplayName string     `json:"displayName"`
	Urls        []ThemeUrl `json:"urls"`
}

// ThemeData is the fully-resolved, render-ready tree computed for one
// profile: its categories in order, each with its surviving URLs in order
// and their picture payloads embedded.
type ThemeData struct {
	ProfileID   string          `json:"profileId"`
	ProfileName string          `json:"profileName"`
	ThemeID     string          `json:"themeId"`
	Categories  []ThemeCategory `json:"categories"`
}
