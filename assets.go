package formschema

import (
	"io/fs"

	"github.com/goliatone/go-formschema/pkg/renderers/vanilla"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// StylesheetFS exposes the vanilla stylesheet for mounting:
//
//	mux.Handle("/formschema/",
//	  http.StripPrefix("/formschema/",
//	    http.FileServerFS(formschema.StylesheetFS()),
//	  ),
//	)
func StylesheetFS() fs.FS {
	return vanilla.AssetsFS()
}

// EmbeddedForms exposes the bundled example forms.
func EmbeddedForms() fs.FS {
	return schema.EmbeddedFS()
}
