// FILE: pkg/advisor/engine.go
// Rule-based requirement extraction and stack scoring.
package advisor

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Engine turns user messages into requirement updates and, once discovery is
// complete, into a scored recommendation. Stateless; all state lives on the
// Conversation so the session store can replace it wholesale.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Greeting is the assistant's opening message for a fresh conversation.
func (e *Engine) Greeting() string {
	return "Hi! I'll help you pick a stack. " + e.nextQuestion(Requirements{})
}

// Advance consumes one user message, mutates the conversation in place and
// returns the assistant's reply.
func (e *Engine) Advance(conv *Conversation, input string) string {
	now := time.Now()
	conv.Messages = append(conv.Messages, Message{Role: RoleUser, Content: input, SentAt: now})
	conv.LastQuery = input

	var reply string
	switch conv.Phase {
	case PhaseDiscovery:
		e.extract(&conv.Requirements, input)
		if conv.Requirements.complete() {
			rec := e.Recommend(conv.Requirements)
			conv.Recommendation = rec
			conv.Phase = PhaseRecommendation
			reply = e.summarize(rec)
		} else {
			reply = e.nextQuestion(conv.Requirements)
		}
	case PhaseRecommendation, PhaseRefinement:
		reply = e.refine(conv, input)
	default:
		reply = e.nextQuestion(conv.Requirements)
	}

	conv.Messages = append(conv.Messages, Message{Role: RoleAssistant, Content: reply, SentAt: now})
	return reply
}

// nextQuestion asks for the first unanswered requirement, in a fixed order.
func (e *Engine) nextQuestion(r Requirements) string {
	switch {
	case r.ProjectType == "":
		return "What are you building? (a web app, an API, an online store, a content site, or something realtime like chat)"
	case r.Experience == "":
		return "How experienced is your team? (beginner, intermediate, advanced)"
	case r.Scale == "":
		return "What scale are you planning for? (hobby project, startup, enterprise)"
	default:
		return "What's your budget for infrastructure? (minimal, moderate, flexible)"
	}
}

// extract does keyword matching over the answer. Unrecognized answers leave
// the requirement unset so the same question gets asked again.
func (e *Engine) extract(r *Requirements, input string) {
	in := strings.ToLower(input)

	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(in, w) {
				return true
			}
		}
		return false
	}

	if r.ProjectType == "" {
		switch {
		case has("store", "shop", "ecommerce", "e-commerce", "sell"):
			r.ProjectType = "ecommerce"
		case has("chat", "realtime", "real-time", "live", "multiplayer"):
			r.ProjectType = "realtime_app"
		case has("blog", "content", "portfolio", "landing", "docs"):
			r.ProjectType = "content_site"
		case has("api", "backend only", "service"):
			r.ProjectType = "api"
		case has("app", "saas", "dashboard", "web"):
			r.ProjectType = "web_app"
		}
		if r.ProjectType != "" {
			return
		}
	}

	if r.Experience == "" {
		switch {
		case has("beginner", "new", "first", "learning", "junior"):
			r.Experience = "beginner"
		case has("advanced", "senior", "expert", "years"):
			r.Experience = "advanced"
		case has("intermediate", "some", "comfortable", "mid"):
			r.Experience = "intermediate"
		}
		if r.Experience != "" {
			return
		}
	}

	if r.Scale == "" {
		switch {
		case has("hobby", "side", "small", "personal", "just me"):
			r.Scale = "hobby"
		case has("enterprise", "millions", "large", "big"):
			r.Scale = "enterprise"
		case has("startup", "growing", "medium", "thousands"):
			r.Scale = "startup"
		}
		if r.Scale != "" {
			return
		}
	}

	if r.Budget == "" {
		switch {
		case has("minimal", "free", "cheap", "low", "tight"):
			r.Budget = "minimal"
		case has("flexible", "whatever", "no limit", "high"):
			r.Budget = "flexible"
		case has("moderate", "reasonable", "some", "medium"):
			r.Budget = "moderate"
		}
	}

	if r.NeedsSEO == nil && has("seo", "search engine", "google rank") {
		t := true
		r.NeedsSEO = &t
	}
}

// Score rates one option against the requirements. Higher is better; the
// weights favor fit-for-purpose first, then experience match, then scale,
// then cost.
func (e *Engine) Score(opt Option, r Requirements) float64 {
	score := 0.0

	for _, g := range opt.GoodFor {
		if g == r.ProjectType {
			score += 4
			break
		}
	}

	// Learning curve vs team experience: beginners lose points per step of
	// curve, advanced teams don't care.
	switch r.Experience {
	case "beginner":
		score += float64(5-opt.LearningCurve) * 0.8
	case "intermediate":
		score += float64(5-opt.LearningCurve) * 0.4
	}

	switch r.Scale {
	case "enterprise":
		score += float64(opt.Scalability) * 0.8
	case "startup":
		score += float64(opt.Scalability) * 0.4
	}

	switch r.Budget {
	case "minimal":
		score += float64(4-opt.CostTier) * 0.8
	case "moderate":
		score += float64(4-opt.CostTier) * 0.3
	}

	if r.NeedsSEO != nil && *r.NeedsSEO && opt.Category == CategoryFrontend && opt.SEOFriendly {
		score += 2
	}
	if (r.ProjectType == "content_site" || r.ProjectType == "ecommerce") && opt.Category == CategoryFrontend && opt.SEOFriendly {
		score += 1.5
	}

	return score
}

// Recommend scores every catalog option and picks the winner plus runner-up
// per category.
func (e *Engine) Recommend(r Requirements) *Recommendation {
	rec := &Recommendation{Alternatives: make(map[string]Choice)}

	for _, cat := range []string{CategoryFrontend, CategoryBackend, CategoryDatabase, CategoryHosting} {
		ranked := e.rank(cat, r)
		if len(ranked) == 0 {
			continue
		}
		switch cat {
		case CategoryFrontend:
			rec.Frontend = ranked[0]
		case CategoryBackend:
			rec.Backend = ranked[0]
		case CategoryDatabase:
			rec.Database = ranked[0]
		case CategoryHosting:
			rec.Hosting = ranked[0]
		}
		if len(ranked) > 1 {
			rec.Alternatives[cat] = ranked[1]
		}
	}

	return rec
}

// rank returns category options as choices sorted best-first. Ties break on
// catalog order, which is deliberate: earlier entries are the safer defaults.
func (e *Engine) rank(category string, r Requirements) []Choice {
	opts := OptionsInCategory(category)
	choices := make([]Choice, 0, len(opts))
	for _, o := range opts {
		choices = append(choices, Choice{
			OptionID: o.ID,
			Name:     o.Name,
			Score:    e.Score(o, r),
			Reasons:  e.reasons(o, r),
		})
	}
	sort.SliceStable(choices, func(i, j int) bool { return choices[i].Score > choices[j].Score })
	return choices
}

func (e *Engine) reasons(opt Option, r Requirements) []string {
	var out []string
	for _, g := range opt.GoodFor {
		if g == r.ProjectType {
			out = append(out, fmt.Sprintf("well suited to %s projects", strings.ReplaceAll(r.ProjectType, "_", " ")))
			break
		}
	}
	if r.Experience == "beginner" && opt.LearningCurve <= 2 {
		out = append(out, "gentle learning curve")
	}
	if r.Scale == "enterprise" && opt.Scalability >= 4 {
		out = append(out, "proven at scale")
	}
	if r.Budget == "minimal" && opt.CostTier == 1 {
		out = append(out, "cheap to run")
	}
	return out
}

// refine handles post-recommendation messages: swap requests move the
// runner-up into the pick, anything else re-states the recommendation.
func (e *Engine) refine(conv *Conversation, input string) string {
	in := strings.ToLower(input)
	rec := conv.Recommendation
	if rec == nil {
		conv.Phase = PhaseDiscovery
		return e.nextQuestion(conv.Requirements)
	}

	swap := func(cat string, current *Choice) (string, bool) {
		alt, ok := rec.Alternatives[cat]
		if !ok {
			return fmt.Sprintf("There is no alternative %s to swap in.", cat), false
		}
		old := *current
		*current = alt
		rec.Alternatives[cat] = old
		conv.Phase = PhaseRefinement
		return fmt.Sprintf("Swapped %s out for %s. %s", old.Name, alt.Name, alt.Name), true
	}

	switch {
	case strings.Contains(in, "frontend"):
		msg, _ := swap(CategoryFrontend, &rec.Frontend)
		return msg
	case strings.Contains(in, "backend"):
		msg, _ := swap(CategoryBackend, &rec.Backend)
		return msg
	case strings.Contains(in, "database") || strings.Contains(in, "db"):
		msg, _ := swap(CategoryDatabase, &rec.Database)
		return msg
	case strings.Contains(in, "hosting") || strings.Contains(in, "deploy"):
		msg, _ := swap(CategoryHosting, &rec.Hosting)
		return msg
	case strings.Contains(in, "start over") || strings.Contains(in, "restart"):
		*conv = *NewConversation()
		return e.Greeting()
	default:
		return e.summarize(rec)
	}
}

func (e *Engine) summarize(rec *Recommendation) string {
	return fmt.Sprintf(
		"Here's my pick: %s on the frontend, %s for the backend, %s as your database, deployed on %s. "+
			"Say \"swap frontend\" (or backend/database/hosting) to try the runner-up, or download your starter project.",
		rec.Frontend.Name, rec.Backend.Name, rec.Database.Name, rec.Hosting.Name,
	)
}
