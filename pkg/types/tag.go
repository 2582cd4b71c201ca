package types

// Tag is a label that URLs reference by ID. Synonyms is an ordered list of
// alternative spellings; order is display order and is preserved.
type Tag struct {
	ID       string   `json:"id"`
	Readonly bool     `json:"readonly"`
	Name     string   `json:"name"`
	Synonyms []string `json:"synonyms"`
}

// TagPatch describes a partial update to a Tag. Nil fields are retained
// unchanged; a non-nil empty Synonyms slice clears the list.
type TagPatch struct {
	Name     *string  `json:"name,omitempty"`
	Synonyms []string `json:"synonyms,omitempty"`
}
