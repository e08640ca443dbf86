package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/controls/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// StylesheetName is the file name of the default stylesheet inside AssetsFS.
const StylesheetName = "formkit-vanilla.css"

// TemplatesFS exposes the embedded template bundle so callers can copy and
// customise it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded stylesheet so hosts can serve it over HTTP.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

func defaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
