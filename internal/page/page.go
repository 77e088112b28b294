// Package page renders a scene as a self-contained HTML document.
package page

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"regexp"
	"strconv"

	"github.com/woozymasta/feddanmap/assets"
	"github.com/woozymasta/feddanmap/internal/pipeline"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
)

var index = template.Must(template.New("index").Funcs(template.FuncMap{"num": formatNum}).Parse(assets.IndexTemplate))

// Data is the template input.
type Data struct {
	*pipeline.Scene
	CSS template.CSS
	JS  template.JS
}

// NewMinifier returns a minifier for the media types a page contains.
func NewMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	return m
}

// Build renders the scene. With m set, the stylesheet, the script and the
// document are minified.
func Build(scene *pipeline.Scene, m *minify.M) ([]byte, error) {
	style, script := assets.StyleCSS, assets.ScriptJS
	if m != nil {
		var err error
		if style, err = m.String("text/css", style); err != nil {
			return nil, fmt.Errorf("minify css: %w", err)
		}
		if script, err = m.String("text/javascript", script); err != nil {
			return nil, fmt.Errorf("minify js: %w", err)
		}
	}

	var buf bytes.Buffer
	err := index.Execute(&buf, Data{
		Scene: scene,
		CSS:   template.CSS(style),
		JS:    template.JS(script),
	})
	if err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	if m == nil {
		return buf.Bytes(), nil
	}

	out, err := m.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("minify html: %w", err)
	}
	return out, nil
}

func formatNum(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
