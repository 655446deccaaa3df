// FILE: pkg/generator/generator.go
// Starter-project assembly: renders a file set for a recommended stack and
// packs it into a ZIP archive.
package generator

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"stack-navigator-be/pkg/advisor"
)

// Project is the template input for one generated starter.
type Project struct {
	Name     string
	Slug     string
	Frontend advisor.Option
	Backend  advisor.Option
	Database advisor.Option
	Hosting  advisor.Option
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into a safe directory/package name.
func Slugify(name string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "my-project"
	}
	return s
}

type Generator struct {
	templates *template.Template
}

func New() (*Generator, error) {
	tmpl, err := template.New("starter").Parse(starterTemplates)
	if err != nil {
		return nil, fmt.Errorf("failed to parse starter templates: %w", err)
	}
	return &Generator{templates: tmpl}, nil
}

// BuildProject resolves a recommendation against the catalog. Unknown option
// ids are a contract violation from the caller, reported as an error.
func BuildProject(name string, rec *advisor.Recommendation) (*Project, error) {
	if rec == nil {
		return nil, fmt.Errorf("no recommendation to generate from")
	}

	lookup := func(c advisor.Choice) (advisor.Option, error) {
		opt := advisor.OptionByID(c.OptionID)
		if opt == nil {
			return advisor.Option{}, fmt.Errorf("unknown catalog option %q", c.OptionID)
		}
		return *opt, nil
	}

	p := &Project{Name: name, Slug: Slugify(name)}
	var err error
	if p.Frontend, err = lookup(rec.Frontend); err != nil {
		return nil, err
	}
	if p.Backend, err = lookup(rec.Backend); err != nil {
		return nil, err
	}
	if p.Database, err = lookup(rec.Database); err != nil {
		return nil, err
	}
	if p.Hosting, err = lookup(rec.Hosting); err != nil {
		return nil, err
	}
	return p, nil
}

// Archive renders the full starter file set and returns it as ZIP bytes.
// Every file sits under the project slug so the archive extracts cleanly.
func (g *Generator) Archive(p *Project) ([]byte, error) {
	files := g.fileSet(p)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range files {
		var rendered bytes.Buffer
		if err := g.templates.ExecuteTemplate(&rendered, f.template, p); err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", f.path, err)
		}

		w, err := zw.Create(p.Slug + "/" + f.path)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(rendered.Bytes()); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type plannedFile struct {
	path     string
	template string
}

// fileSet decides which files a stack gets. Always README, gitignore and env
// example; a manifest matching the backend runtime; docker-compose only for
// server databases.
func (g *Generator) fileSet(p *Project) []plannedFile {
	files := []plannedFile{
		{path: "README.md", template: "readme"},
		{path: ".gitignore", template: "gitignore"},
		{path: ".env.example", template: "envexample"},
	}

	switch p.Backend.ID {
	case "go-fiber":
		files = append(files,
			plannedFile{path: "go.mod", template: "gomod"},
			plannedFile{path: "main.go", template: "gomain"},
		)
	default:
		files = append(files, plannedFile{path: "package.json", template: "packagejson"})
	}

	if p.Database.ID == "postgres" || p.Database.ID == "mongodb" || p.Database.ID == "redis-kv" {
		files = append(files, plannedFile{path: "docker-compose.yml", template: "compose"})
	}

	return files
}
