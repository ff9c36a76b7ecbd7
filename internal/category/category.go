package category

import "strings"

// Canonical category labels in the order the frontend renders them.
const (
	Breaking      = "breaking"
	Trending      = "trending"
	TopHeadlines  = "top headlines"
	GeneralNews   = "General News"
	WorldNews     = "World News"
	Politics      = "Politics"
	Technology    = "Technology"
	Sports        = "Sports"
	HealthFitness = "Health & Fitness"
	Entertainment = "Entertainment"
)

var order = []string{
	Breaking,
	Trending,
	TopHeadlines,
	GeneralNews,
	WorldNews,
	Politics,
	Technology,
	Sports,
	HealthFitness,
	Entertainment,
}

// aliases maps lower-cased labels, including the canonical labels themselves,
// to their canonical form. Anything absent resolves to GeneralNews.
var aliases = map[string]string{
	"breaking":            Breaking,
	"breaking news":       Breaking,
	"breaking news (alt)": Breaking,

	"trending":      Trending,
	"trending news": Trending,

	"top headlines": TopHeadlines,
	"topheadlines":  TopHeadlines,
	"top-headlines": TopHeadlines,
	"top headline":  TopHeadlines,
	"top":           TopHeadlines,

	"general news": GeneralNews,
	"world news":   WorldNews,
	"politics":     Politics,

	"technology": Technology,
	"tech":       Technology,

	"sports": Sports,

	"health & fitness":   HealthFitness,
	"health and fitness": HealthFitness,
	"health":             HealthFitness,
	"fitness":            HealthFitness,

	"entertainment": Entertainment,
}

// Order returns the canonical category labels in display order.
func Order() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Normalize maps a raw category label to its canonical form. Unknown or
// empty input maps to GeneralNews so no article is ever dropped from a
// bucket.
func Normalize(raw string) string {
	if c, ok := aliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return c
	}
	return GeneralNews
}
