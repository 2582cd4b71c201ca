package types

// Picture is an inline image payload that URLs can reference for display.
// ImageData holds the base64-encoded image bytes; AltText is the
// accessibility description shown when the image cannot render.
type Picture struct {
	ID        string `json:"id"`
	Readonly  bool   `json:"readonly"`
	Name      string `json:"name"`
	ImageData string `json:"imageData"`
	AltText   string `json:"altText"`
}

// PicturePatch describes a partial update to a Picture. Nil fields are
// retained unchanged.
type PicturePatch struct {
	Name      *string `json:"name,omitempty"`
	ImageData *string `json:"imageData,omitempty"`
	AltText   *string `json:"altText,omitempty"`
}
