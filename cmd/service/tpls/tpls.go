package tpls

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed *.html
var FS embed.FS

var funcs = template.FuncMap{
	"dict": dict,
}

// dict builds a map from alternating key/value arguments for sub templates.
func dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict expects an even number of arguments")
	}
	res := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", values[i])
		}
		res[key] = values[i+1]
	}
	return res, nil
}

func Load() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(FS, "*.html"))
}
