// Package web embeds the site's templates, static assets and content files.
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed static templates locations.yaml faq.md
var content embed.FS

// StaticFS returns the static file system.
func StaticFS() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		log.Fatalf("failed to create static sub-filesystem: %v", err)
	}
	return sub
}

// TemplatesFS returns the templates file system.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(content, "templates")
	if err != nil {
		log.Fatalf("failed to create templates sub-filesystem: %v", err)
	}
	return sub
}

// LocationsYAML returns the campus location registry source.
func LocationsYAML() []byte {
	return mustRead("locations.yaml")
}

// FAQMarkdown returns the FAQ page source.
func FAQMarkdown() []byte {
	return mustRead("faq.md")
}

func mustRead(name string) []byte {
	data, err := content.ReadFile(name)
	if err != nil {
		log.Fatalf("failed to read embedded %s: %v", name, err)
	}
	return data
}
