package generator

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"stack-navigator-be/pkg/advisor"
)

func testRecommendation() *advisor.Recommendation {
	return &advisor.Recommendation{
		Frontend: advisor.Choice{OptionID: "nextjs", Name: "Next.js"},
		Backend:  advisor.Choice{OptionID: "go-fiber", Name: "Go + Fiber"},
		Database: advisor.Choice{OptionID: "postgres", Name: "PostgreSQL"},
		Hosting:  advisor.Choice{OptionID: "railway", Name: "Railway"},
	}
}

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("not a valid zip: %v", err)
	}
	files := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		files[f.Name] = string(content)
	}
	return files
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My SaaS App", "my-saas-app"},
		{"  spaced  out  ", "spaced-out"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Slugify("!!!"); got != "my-project" {
		t.Errorf("Slugify(%q) = %q, want fallback", "!!!", got)
	}
}

func TestBuildProjectRejectsUnknownOption(t *testing.T) {
	rec := testRecommendation()
	rec.Database.OptionID = "oracle"
	if _, err := BuildProject("demo", rec); err == nil {
		t.Fatal("expected error for unknown catalog option")
	}
}

func TestArchiveGoBackend(t *testing.T) {
	g, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p, err := BuildProject("Demo App", testRecommendation())
	if err != nil {
		t.Fatalf("BuildProject: %v", err)
	}

	data, err := g.Archive(p)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	files := readArchive(t, data)

	for _, want := range []string{
		"demo-app/README.md",
		"demo-app/.gitignore",
		"demo-app/.env.example",
		"demo-app/go.mod",
		"demo-app/main.go",
		"demo-app/docker-compose.yml",
	} {
		if _, ok := files[want]; !ok {
			t.Errorf("archive missing %s (has %v)", want, keys(files))
		}
	}

	if !strings.Contains(files["demo-app/README.md"], "Next.js") {
		t.Error("README does not mention the frontend choice")
	}
	if !strings.Contains(files["demo-app/go.mod"], "module demo-app") {
		t.Errorf("go.mod = %q", files["demo-app/go.mod"])
	}
	if !strings.Contains(files["demo-app/.env.example"], "postgres://") {
		t.Error(".env.example missing postgres DSN")
	}
	if !strings.Contains(files["demo-app/docker-compose.yml"], "postgres:16") {
		t.Error("compose file missing postgres image")
	}
}

func TestArchiveNodeBackendSqlite(t *testing.T) {
	g, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec := testRecommendation()
	rec.Backend = advisor.Choice{OptionID: "node-express", Name: "Node.js + Express"}
	rec.Database = advisor.Choice{OptionID: "sqlite", Name: "SQLite"}

	p, err := BuildProject("blog", rec)
	if err != nil {
		t.Fatalf("BuildProject: %v", err)
	}
	data, err := g.Archive(p)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	files := readArchive(t, data)

	if _, ok := files["blog/package.json"]; !ok {
		t.Error("node backend should get package.json")
	}
	if _, ok := files["blog/go.mod"]; ok {
		t.Error("node backend should not get go.mod")
	}
	if _, ok := files["blog/docker-compose.yml"]; ok {
		t.Error("sqlite needs no docker-compose")
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
