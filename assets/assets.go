// Package assets embeds the page template and its static resources.
package assets

import _ "embed"

//go:embed index.html.tpl
var IndexTemplate string

//go:embed style.css
var StyleCSS string

//go:embed script.js
var ScriptJS string
