package types

// Profile is the root of one composed view: an ordered list of Category
// IDs, a required Theme, and the settings for the synthetic "Recent"
// category. Category references are weak; the Theme reference is the one
// reference whose absence is a caller-visible error, since a view cannot
// render without it.
type Profile struct {
	ID            string   `json:"id"`
	Readonly      bool     `json:"readonly"`
	Name          string   `json:"name"`
	Categories    []string `json:"categories"`
	IncludeRecent bool     `json:"includeRecentCategory"`
	NumRecent     int      `json:"numRecentToShow"`
	Theme         string   `json:"theme"`
}

// ProfilePatch describes a partial update to a Profile. Nil fields are
// retained unchanged; a non-nil empty Categories slice clears the list.
type ProfilePatch struct {
	Name          *string  `json:"name,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	IncludeRecent *bool    `json:"includeRecentCategory,omitempty"`
	NumRecent     *int     `json:"numRecentToShow,omitempty"`
	Theme         *string  `json:"theme,omitempty"`
}
