package feed

import "github.com/Panashe816/viral-news-backend/internal/category"

// Payload is the homepage envelope: articles bucketed per canonical
// category plus the same articles as a flat chronological list.
type Payload struct {
	Order      []string                `json:"order"`
	Categories map[string][]Serialized `json:"categories"`
	All        []Serialized            `json:"all"`
	Count      int                     `json:"count"`
	Limit      int                     `json:"limit"`
	Offset     int                     `json:"offset"`
}

// Aggregate buckets already-serialized articles into the canonical category
// order. Every bucket is present even when empty, so the response shape is
// stable; input order is preserved both per bucket and in the flat view.
// Serialized categories are canonical by construction, so no catch-all
// bucket is needed.
func Aggregate(items []Serialized, limit, offset int) Payload {
	order := category.Order()

	grouped := make(map[string][]Serialized, len(order))
	for _, c := range order {
		grouped[c] = []Serialized{}
	}
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}

	all := items
	if all == nil {
		all = []Serialized{}
	}

	return Payload{
		Order:      order,
		Categories: grouped,
		All:        all,
		Count:      len(all),
		Limit:      limit,
		Offset:     offset,
	}
}
