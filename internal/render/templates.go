package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/tabula-app/tabula/pkg/types"
)

// templateRenderer renders theme data through one parsed html/template.
type templateRenderer struct {
	tmpl *template.Template
}

// templateData is the single value handed to the templates.
type templateData struct {
	Data    *types.ThemeData
	Globals map[string]any
}

func (r *templateRenderer) Render(w io.Writer, data *types.ThemeData, globals map[string]any) error {
	if data == nil {
		return fmt.Errorf("rendering: nil theme data")
	}
	if globals == nil {
		globals = map[string]any{}
	}
	if err := r.tmpl.Execute(w, templateData{Data: data, Globals: globals}); err != nil {
		return fmt.Errorf("rendering %s: %w", r.tmpl.Name(), err)
	}
	return nil
}

var gridTemplate = template.Must(template.New("grid").Parse(`<main class="grid" data-profile="{{.Data.ProfileName}}">
{{- range .Data.Categories}}
<section class="grid-category">
<h2>{{.DisplayName}}</h2>
<div class="tiles">
{{- range .Urls}}
<a class="tile" href="{{.Address}}">{{if .Picture}}<img src="data:image/png;base64,{{.Picture}}" alt="">{{end}}<span>{{.Name}}</span></a>
{{- end}}
</div>
</section>
{{- end}}
</main>
`))

var listTemplate = template.Must(template.New("list").Parse(`<main class="list" data-profile="{{.Data.ProfileName}}">
{{- range .Data.Categories}}
<section>
<h2>{{.DisplayName}}</h2>
<ul>
{{- range .Urls}}
<li><a href="{{.Address}}">{{.Name}}</a></li>
{{- end}}
</ul>
</section>
{{- end}}
</main>
`))

var compactTemplate = template.Must(template.New("compact").Parse(`<main class="compact">
{{- range .Data.Categories}}
<details open><summary>{{.DisplayName}}</summary>
{{- range .Urls}}
<a href="{{.Address}}">{{.Name}}</a>
{{- end}}
</details>
{{- end}}
</main>
`))

var plainTemplate = template.Must(template.New("plain").Parse(`{{- range .Data.Categories}}
{{.DisplayName}}:
{{- range .Urls}}
<a href="{{.Address}}">{{.Name}}</a>
{{- end}}
{{- end}}
`))
