package category

import "testing"

func TestNormalizeAliases(t *testing.T) {
	cases := map[string]string{
		"breaking":            Breaking,
		"Breaking News":       Breaking,
		"breaking news (alt)": Breaking,
		"trending news":       Trending,
		"TopHeadlines":        TopHeadlines,
		"top-headlines":       TopHeadlines,
		"top headline":        TopHeadlines,
		"top":                 TopHeadlines,
		"tech":                Technology,
		"TECHNOLOGY":          Technology,
		"health":              HealthFitness,
		"fitness":             HealthFitness,
		"health and fitness":  HealthFitness,
		"Health & Fitness":    HealthFitness,
		"entertainment":       Entertainment,
		"sports":              Sports,
		"politics":            Politics,
		"world news":          WorldNews,
	}
	for raw, want := range cases {
		if got := Normalize(raw); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestNormalizeUnknownFallsBack(t *testing.T) {
	for _, raw := range []string{"", "   ", "finance", "Opinion", "general"} {
		if got := Normalize(raw); got != GeneralNews {
			t.Errorf("Normalize(%q) = %q, want %q", raw, got, GeneralNews)
		}
	}
}

func TestNormalizeTrimsWhitespace(t *testing.T) {
	if got := Normalize("  Tech  "); got != Technology {
		t.Errorf("Normalize with padding = %q, want %q", got, Technology)
	}
}

func TestCanonicalLabelsMapToThemselves(t *testing.T) {
	for _, c := range Order() {
		if got := Normalize(c); got != c {
			t.Errorf("Normalize(%q) = %q, want unchanged", c, got)
		}
	}
}

func TestOrderIsACopy(t *testing.T) {
	first := Order()
	first[0] = "mutated"
	if Order()[0] != Breaking {
		t.Error("Order() must not expose internal slice")
	}
}
