package types

// Theme selects how a profile's resolved view is rendered. Renderer names
// one of the statically-registered renderer implementations; arbitrary
// renderer code is never compiled or executed at runtime. Source is the
// display-only source representation kept for the settings UI, and Globals
// is a free-form map passed through to the renderer.
type Theme struct {
	ID       string         `json:"id"`
	Readonly bool           `json:"readonly"`
	Name     string         `json:"name"`
	Renderer string         `json:"renderer"`
	Source   string         `json:"source,omitempty"`
	Globals  map[string]any `json:"globals,omitempty"`
}

// ThemePatch describes a partial update to a Theme. Nil fields are
// retained unchanged; a non-nil Globals map replaces the whole map.
type ThemePatch struct {
	Name     *string        `json:"name,omitempty"`
	Renderer *string        `json:"renderer,omitempty"`
	Source   *string        `json:"source,omitempty"`
	Globals  map[string]any `json:"globals,omitempty"`
}
