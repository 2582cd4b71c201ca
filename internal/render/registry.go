// Package render holds the fixed set of theme renderers. A Theme selects
// one by its Renderer identifier; theme source is never compiled or
// executed, so a corrupted or hostile theme record can at worst pick the
// wrong renderer.
package render

import (
	"io"

	"github.com/tabula-app/tabula/pkg/types"
)

// Renderer turns resolved theme data into markup. Globals is the theme's
// free-form settings map, passed through untouched.
type Renderer interface {
	Render(w io.Writer, data *types.ThemeData, globals map[string]any) error
}

// Renderer identifiers.
const (
	RendererGrid    = "grid"
	RendererList    = "list"
	RendererCompact = "compact"
	RendererPlain   = "plain"
)

var registry = map[string]Renderer{
	RendererGrid:    &templateRenderer{tmpl: gridTemplate},
	RendererList:    &templateRenderer{tmpl: listTemplate},
	RendererCompact: &templateRenderer{tmpl: compactTemplate},
	RendererPlain:   &templateRenderer{tmpl: plainTemplate},
}

// Lookup returns the renderer for the given identifier, falling back to
// the plain renderer for unknown identifiers so a view always renders.
func Lookup(name string) Renderer {
	if r, ok := registry[name]; ok {
		return r
	}
	return registry[RendererPlain]
}

// Names returns the registered renderer identifiers.
func Names() []string {
	return []string{RendererGrid, RendererList, RendererCompact, RendererPlain}
}
