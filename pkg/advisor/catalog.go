// FILE: pkg/advisor/catalog.go
package advisor

const (
	CategoryFrontend = "frontend"
	CategoryBackend  = "backend"
	CategoryDatabase = "database"
	CategoryHosting  = "hosting"
)

// Option is one technology in the catalog. The 1-5 scales are relative within
// a category: LearningCurve 1 = easiest to pick up, Scalability 5 = proven at
// the largest deployments, CostTier 1 = cheapest to run.
type Option struct {
	ID            string
	Name          string
	Category      string
	Blurb         string
	LearningCurve int
	Scalability   int
	CostTier      int
	SEOFriendly   bool
	GoodFor       []string // project types this option suits
}

// Catalog is the fixed dataset the advisor scores against. Kept as code, not
// DB rows: it changes with releases, not with user actions.
var Catalog = []Option{
	// Frontend
	{ID: "nextjs", Name: "Next.js", Category: CategoryFrontend, Blurb: "React framework with SSR and static generation", LearningCurve: 3, Scalability: 5, CostTier: 2, SEOFriendly: true, GoodFor: []string{"web_app", "ecommerce", "content_site"}},
	{ID: "react-spa", Name: "React (SPA)", Category: CategoryFrontend, Blurb: "Client-rendered React single page app", LearningCurve: 2, Scalability: 4, CostTier: 1, GoodFor: []string{"web_app", "realtime_app"}},
	{ID: "sveltekit", Name: "SvelteKit", Category: CategoryFrontend, Blurb: "Compiled framework, small bundles, simple mental model", LearningCurve: 1, Scalability: 3, CostTier: 1, SEOFriendly: true, GoodFor: []string{"web_app", "content_site"}},
	{ID: "astro", Name: "Astro", Category: CategoryFrontend, Blurb: "Content-first framework shipping minimal JS", LearningCurve: 1, Scalability: 3, CostTier: 1, SEOFriendly: true, GoodFor: []string{"content_site"}},

	// Backend
	{ID: "node-express", Name: "Node.js + Express", Category: CategoryBackend, Blurb: "Minimal JS server, huge ecosystem", LearningCurve: 1, Scalability: 3, CostTier: 1, GoodFor: []string{"web_app", "api"}},
	{ID: "go-fiber", Name: "Go + Fiber", Category: CategoryBackend, Blurb: "Fast compiled backend with tiny memory footprint", LearningCurve: 3, Scalability: 5, CostTier: 1, GoodFor: []string{"api", "realtime_app", "web_app"}},
	{ID: "rails", Name: "Ruby on Rails", Category: CategoryBackend, Blurb: "Batteries-included full-stack framework", LearningCurve: 2, Scalability: 3, CostTier: 2, GoodFor: []string{"web_app", "ecommerce"}},
	{ID: "django", Name: "Python + Django", Category: CategoryBackend, Blurb: "Mature framework with admin out of the box", LearningCurve: 2, Scalability: 4, CostTier: 2, GoodFor: []string{"web_app", "ecommerce", "content_site"}},
	{ID: "serverless-fn", Name: "Serverless Functions", Category: CategoryBackend, Blurb: "Pay-per-invocation handlers, zero ops", LearningCurve: 2, Scalability: 4, CostTier: 1, GoodFor: []string{"api", "content_site"}},

	// Database
	{ID: "postgres", Name: "PostgreSQL", Category: CategoryDatabase, Blurb: "The default relational choice", LearningCurve: 2, Scalability: 5, CostTier: 2, GoodFor: []string{"web_app", "api", "ecommerce"}},
	{ID: "sqlite", Name: "SQLite", Category: CategoryDatabase, Blurb: "Zero-ops embedded database", LearningCurve: 1, Scalability: 2, CostTier: 1, GoodFor: []string{"content_site", "web_app"}},
	{ID: "mongodb", Name: "MongoDB", Category: CategoryDatabase, Blurb: "Document store for fluid schemas", LearningCurve: 2, Scalability: 4, CostTier: 2, GoodFor: []string{"realtime_app", "api"}},
	{ID: "redis-kv", Name: "Redis", Category: CategoryDatabase, Blurb: "In-memory store for realtime and caching workloads", LearningCurve: 2, Scalability: 4, CostTier: 2, GoodFor: []string{"realtime_app"}},

	// Hosting
	{ID: "vercel", Name: "Vercel", Category: CategoryHosting, Blurb: "Zero-config deploys for frontend frameworks", LearningCurve: 1, Scalability: 4, CostTier: 2, GoodFor: []string{"web_app", "content_site", "ecommerce"}},
	{ID: "railway", Name: "Railway", Category: CategoryHosting, Blurb: "Simple container hosting with managed databases", LearningCurve: 1, Scalability: 3, CostTier: 1, GoodFor: []string{"web_app", "api", "realtime_app"}},
	{ID: "aws", Name: "AWS", Category: CategoryHosting, Blurb: "Full cloud, maximum control and complexity", LearningCurve: 5, Scalability: 5, CostTier: 3, GoodFor: []string{"api", "ecommerce", "realtime_app", "web_app"}},
	{ID: "fly-io", Name: "Fly.io", Category: CategoryHosting, Blurb: "Containers close to users, good Go story", LearningCurve: 2, Scalability: 4, CostTier: 1, GoodFor: []string{"api", "realtime_app"}},
}

// OptionByID looks up a catalog entry; nil when unknown.
func OptionByID(id string) *Option {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}

// OptionsInCategory returns the catalog slice for one category.
func OptionsInCategory(category string) []Option {
	var out []Option
	for _, o := range Catalog {
		if o.Category == category {
			out = append(out, o)
		}
	}
	return out
}
