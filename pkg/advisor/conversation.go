// FILE: pkg/advisor/conversation.go
// Conversation state for the guided stack-selection flow.
package advisor

import "time"

const (
	// Conversation phases
	PhaseDiscovery      = "DISCOVERY"      // still collecting requirements
	PhaseRecommendation = "RECOMMENDATION" // recommendation produced
	PhaseRefinement     = "REFINEMENT"     // user is swapping parts of the pick

	// Message roles
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

// Requirements is what the discovery phase extracts from the user's answers.
// Empty string / nil means "not answered yet".
type Requirements struct {
	ProjectType string `json:"project_type,omitempty"` // web_app | api | ecommerce | content_site | realtime_app
	Experience  string `json:"experience,omitempty"`   // beginner | intermediate | advanced
	Scale       string `json:"scale,omitempty"`        // hobby | startup | enterprise
	Budget      string `json:"budget,omitempty"`       // minimal | moderate | flexible
	NeedsSEO    *bool  `json:"needs_seo,omitempty"`
}

// Choice is one picked option within a recommendation.
type Choice struct {
	OptionID string   `json:"option_id"`
	Name     string   `json:"name"`
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons,omitempty"`
}

// Recommendation is the scored stack pick, one choice per category plus the
// runner-up per category for the comparison view.
type Recommendation struct {
	Frontend     Choice            `json:"frontend"`
	Backend      Choice            `json:"backend"`
	Database     Choice            `json:"database"`
	Hosting      Choice            `json:"hosting"`
	Alternatives map[string]Choice `json:"alternatives,omitempty"` // category -> runner-up
}

// Conversation is the opaque per-session state. The session store replaces it
// wholesale on update; nothing outside the advisor mutates its internals.
type Conversation struct {
	Phase          string          `json:"phase"`
	Messages       []Message       `json:"messages"`
	Requirements   Requirements    `json:"requirements"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
	LastQuery      string          `json:"last_query,omitempty"`
}

func NewConversation() *Conversation {
	return &Conversation{
		Phase:    PhaseDiscovery,
		Messages: []Message{},
	}
}

// Clone returns a deep copy sharing no memory with the receiver. The session
// store hands copies across its boundary so its stored conversation is never
// reachable outside its mutex.
func (c *Conversation) Clone() *Conversation {
	if c == nil {
		return nil
	}
	out := *c
	out.Messages = append([]Message(nil), c.Messages...)
	if c.Requirements.NeedsSEO != nil {
		v := *c.Requirements.NeedsSEO
		out.Requirements.NeedsSEO = &v
	}
	out.Recommendation = c.Recommendation.clone()
	return &out
}

func (r *Recommendation) clone() *Recommendation {
	if r == nil {
		return nil
	}
	out := *r
	out.Frontend.Reasons = append([]string(nil), r.Frontend.Reasons...)
	out.Backend.Reasons = append([]string(nil), r.Backend.Reasons...)
	out.Database.Reasons = append([]string(nil), r.Database.Reasons...)
	out.Hosting.Reasons = append([]string(nil), r.Hosting.Reasons...)
	if r.Alternatives != nil {
		out.Alternatives = make(map[string]Choice, len(r.Alternatives))
		for k, v := range r.Alternatives {
			v.Reasons = append([]string(nil), v.Reasons...)
			out.Alternatives[k] = v
		}
	}
	return &out
}

// complete reports whether discovery has gathered enough to recommend.
func (r Requirements) complete() bool {
	return r.ProjectType != "" && r.Experience != "" && r.Scale != "" && r.Budget != ""
}
