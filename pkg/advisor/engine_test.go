package advisor

import (
	"strings"
	"testing"
)

func TestExtractRequirements(t *testing.T) {
	tests := []struct {
		name  string
		start Requirements
		input string
		want  Requirements
	}{
		{
			name:  "ecommerce project type",
			input: "I want to build an online store to sell prints",
			want:  Requirements{ProjectType: "ecommerce"},
		},
		{
			name:  "realtime beats generic app keywords",
			input: "a chat app for my team",
			want:  Requirements{ProjectType: "realtime_app"},
		},
		{
			name:  "content site",
			input: "just a blog really",
			want:  Requirements{ProjectType: "content_site"},
		},
		{
			name:  "experience after project type",
			start: Requirements{ProjectType: "web_app"},
			input: "we're all beginners",
			want:  Requirements{ProjectType: "web_app", Experience: "beginner"},
		},
		{
			name:  "scale answer",
			start: Requirements{ProjectType: "api", Experience: "advanced"},
			input: "enterprise, millions of users",
			want:  Requirements{ProjectType: "api", Experience: "advanced", Scale: "enterprise"},
		},
		{
			name:  "budget answer",
			start: Requirements{ProjectType: "api", Experience: "advanced", Scale: "startup"},
			input: "keep it cheap",
			want:  Requirements{ProjectType: "api", Experience: "advanced", Scale: "startup", Budget: "minimal"},
		},
		{
			name:  "unrecognized answer leaves requirement unset",
			input: "hmm not sure",
			want:  Requirements{},
		},
	}

	e := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start
			e.extract(&got, tt.input)
			if got.ProjectType != tt.want.ProjectType {
				t.Errorf("ProjectType = %q, want %q", got.ProjectType, tt.want.ProjectType)
			}
			if got.Experience != tt.want.Experience {
				t.Errorf("Experience = %q, want %q", got.Experience, tt.want.Experience)
			}
			if got.Scale != tt.want.Scale {
				t.Errorf("Scale = %q, want %q", got.Scale, tt.want.Scale)
			}
			if got.Budget != tt.want.Budget {
				t.Errorf("Budget = %q, want %q", got.Budget, tt.want.Budget)
			}
		})
	}
}

func TestAdvanceReachesRecommendation(t *testing.T) {
	e := NewEngine()
	conv := NewConversation()

	answers := []string{
		"an online store",
		"beginner team",
		"startup scale",
		"minimal budget",
	}
	var reply string
	for _, a := range answers {
		reply = e.Advance(conv, a)
	}

	if conv.Phase != PhaseRecommendation {
		t.Fatalf("Phase = %q, want %q", conv.Phase, PhaseRecommendation)
	}
	if conv.Recommendation == nil {
		t.Fatal("Recommendation is nil after discovery completed")
	}
	if conv.Recommendation.Frontend.OptionID == "" || conv.Recommendation.Backend.OptionID == "" {
		t.Error("recommendation has empty picks")
	}
	if !strings.Contains(reply, conv.Recommendation.Frontend.Name) {
		t.Errorf("summary %q does not mention the frontend pick", reply)
	}
	// 4 user turns + 4 assistant turns
	if len(conv.Messages) != 8 {
		t.Errorf("len(Messages) = %d, want 8", len(conv.Messages))
	}
}

func TestRecommendPrefersSEOForContentSites(t *testing.T) {
	e := NewEngine()
	rec := e.Recommend(Requirements{
		ProjectType: "content_site",
		Experience:  "beginner",
		Scale:       "hobby",
		Budget:      "minimal",
	})

	front := OptionByID(rec.Frontend.OptionID)
	if front == nil {
		t.Fatalf("recommended frontend %q not in catalog", rec.Frontend.OptionID)
	}
	if !front.SEOFriendly {
		t.Errorf("content site got non-SEO frontend %s", front.Name)
	}
}

func TestRecommendScalesForEnterprise(t *testing.T) {
	e := NewEngine()
	rec := e.Recommend(Requirements{
		ProjectType: "api",
		Experience:  "advanced",
		Scale:       "enterprise",
		Budget:      "flexible",
	})

	back := OptionByID(rec.Backend.OptionID)
	if back == nil {
		t.Fatalf("recommended backend %q not in catalog", rec.Backend.OptionID)
	}
	if back.Scalability < 4 {
		t.Errorf("enterprise pick %s has scalability %d", back.Name, back.Scalability)
	}
}

func TestSwapUsesRunnerUp(t *testing.T) {
	e := NewEngine()
	conv := NewConversation()
	conv.Requirements = Requirements{ProjectType: "web_app", Experience: "intermediate", Scale: "startup", Budget: "moderate"}
	conv.Recommendation = e.Recommend(conv.Requirements)
	conv.Phase = PhaseRecommendation

	original := conv.Recommendation.Frontend
	alt, ok := conv.Recommendation.Alternatives[CategoryFrontend]
	if !ok {
		t.Fatal("no frontend alternative produced")
	}

	e.Advance(conv, "swap frontend please")

	if conv.Recommendation.Frontend.OptionID != alt.OptionID {
		t.Errorf("Frontend = %s, want runner-up %s", conv.Recommendation.Frontend.OptionID, alt.OptionID)
	}
	if conv.Recommendation.Alternatives[CategoryFrontend].OptionID != original.OptionID {
		t.Error("original pick did not become the new alternative")
	}
	if conv.Phase != PhaseRefinement {
		t.Errorf("Phase = %q, want %q", conv.Phase, PhaseRefinement)
	}
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, o := range Catalog {
		if seen[o.ID] {
			t.Errorf("duplicate catalog id %q", o.ID)
		}
		seen[o.ID] = true
	}
}
