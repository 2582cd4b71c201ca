package types

// Url is a single bookmark: a display name, an absolute address, an
// ordered list of Tag IDs, and an optional Picture ID. All references are
// weak: the referenced entities may have been deleted, and resolving code
// tolerates the gap by omitting the missing target from derived views.
type Url struct {
	ID       string   `json:"id"`
	Readonly bool     `json:"readonly"`
	Name     string   `json:"name"`
	Address  string   `json:"url"`
	Tags     []string `json:"tags"`
	Picture  string   `json:"picture,omitempty"`
}

// UrlPatch describes a partial update to a Url. Nil fields are retained
// unchanged. A non-nil empty Tags slice clears the tag list. Setting
// RemovePicture drops the picture reference; otherwise a non-nil Picture
// replaces it.
type UrlPatch struct {
	Name          *string  `json:"name,omitempty"`
	Address       *string  `json:"url,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Picture       *string  `json:"picture,omitempty"`
	RemovePicture bool     `json:"removePicture,omitempty"`
}
