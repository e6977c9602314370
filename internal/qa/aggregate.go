package qa

import "strings"

// AggregateResources merges the model's own resource suggestions with the
// results of any external searches into one deduplicated list. Model entries
// come first, then each external source in query order; first seen wins, no
// re-ranking. The merged list is capped at MaxResources.
func AggregateResources(model []Resource, external ...[]Resource) []Resource {
	out := make([]Resource, 0, MaxResources)
	seen := make(map[string]struct{})

	add := func(r Resource) {
		if len(out) >= MaxResources {
			return
		}
		key := dedupeKey(r)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}

	for _, r := range model {
		add(r)
	}
	for _, source := range external {
		for _, r := range source {
			add(r)
		}
	}
	return out
}

// dedupeKey is the case-insensitive link when present, else the case-folded
// trimmed title.
func dedupeKey(r Resource) string {
	if link := strings.TrimSpace(r.Link); link != "" {
		return "link:" + strings.ToLower(link)
	}
	return "title:" + strings.ToLower(strings.TrimSpace(r.Title))
}
