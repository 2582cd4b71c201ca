package types

// Category groups URLs under a display name. Urls is an ordered list of
// Url IDs; order is display order and is preserved. Each reference is
// weak: deleted URLs are silently dropped at resolution time.
type Category struct {
	ID       string   `json:"id"`
	Readonly bool     `json:"readonly"`
	Name     string   `json:"name"`
	Urls     []string `json:"urls"`
}

// CategoryPatch describes a partial update to a Category. Nil fields are
// retained unchanged; a non-nil empty Urls slice clears the list.
type CategoryPatch struct {
	Name *string  `json:"name,omitempty"`
	Urls []string `json:"urls,omitempty"`
}
