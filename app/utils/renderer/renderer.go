package renderer

import (
	"html/template"

	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/services/storage"
	"github.com/Rakhulsr/go-catalog/app/utils/format"
	"github.com/unrolled/render"
)

type Options struct {
	Directory     string
	IsDevelopment bool
	Assets        storage.AssetStore
}

func New(opts Options) *render.Render {
	return render.New(render.Options{
		Directory:     opts.Directory,
		Layout:        "layout",
		Extensions:    []string{".html"},
		IsDevelopment: opts.IsDevelopment,
		Funcs: []template.FuncMap{
			{
				"add":   func(a, b int) int { return a + b },
				"sub":   func(a, b int) int { return a - b },
				"price": format.Price,
				"imageURL": func(ref string) string {
					return helpers.ImageURL(opts.Assets, ref)
				},
				"imageTag": func(ref string, maxHeight int) template.HTML {
					return helpers.ImageTag(opts.Assets, ref, maxHeight)
				},
				"fieldError": func(errs map[string]string, field string) string {
					return errs[field]
				},
			},
		},
	})
}
