package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabula-app/tabula/internal/render"
	"github.com/tabula-app/tabula/pkg/types"
)

func sampleData() *types.ThemeData {
	return &types.ThemeData{
		ProfileID:   "p1",
		ProfileName: "Default",
		ThemeID:     "t1",
		Categories: []types.ThemeCategory{
			{
				CategoryID:  "c1",
				DisplayName: "Development",
				Urls: []types.ThemeUrl{
					{ID: "u1", Name: "Go", Address: "https://go.dev", Picture: "cGF5bG9hZA=="},
					{ID: "u2", Name: "GitHub", Address: "https://github.com"},
				},
			},
		},
	}
}

func TestLookupKnownRenderers(t *testing.T) {
	for _, name := range render.Names() {
		r := render.Lookup(name)
		require.NotNil(t, r, "renderer %s", name)

		var sb strings.Builder
		require.NoError(t, r.Render(&sb, sampleData(), nil))
		out := sb.String()
		assert.Contains(t, out, "Development", "renderer %s", name)
		assert.Contains(t, out, "https://go.dev", "renderer %s", name)
		assert.Contains(t, out, "GitHub", "renderer %s", name)
	}
}

func TestLookupUnknownFallsBackToPlain(t *testing.T) {
	r := render.Lookup("no-such-renderer")
	require.NotNil(t, r)

	var sb strings.Builder
	require.NoError(t, r.Render(&sb, sampleData(), nil))
	assert.Contains(t, sb.String(), "Development")
	assert.NotContains(t, sb.String(), "<main", "plain renderer has no layout wrapper")
}

func TestRenderEscapesContent(t *testing.T) {
	data := sampleData()
	data.Categories[0].Urls[0].Name = `<script>alert("x")</script>`

	var sb strings.Builder
	require.NoError(t, render.Lookup(render.RendererList).Render(&sb, data, nil))
	assert.NotContains(t, sb.String(), "<script>")
}

func TestRenderNilData(t *testing.T) {
	var sb strings.Builder
	err := render.Lookup(render.RendererGrid).Render(&sb, nil, nil)
	assert.Error(t, err)
}

func TestRenderGridEmbedsPicture(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, render.Lookup(render.RendererGrid).Render(&sb, sampleData(), map[string]any{"columns": 4}))
	assert.Contains(t, sb.String(), "data:image/png;base64,cGF5bG9hZA==")
}
