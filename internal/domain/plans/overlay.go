package plans

import (
	"strings"

	"barkday/internal/domain/reference"
)

type overlaySource struct {
	items []string
	lane  reference.Lane
}

// applyOverlay suma como mucho un insight por cluster y MaxOverlay en total.
// Devuelve cuántos agregó.
func applyOverlay(ref *reference.ReferenceData, canonical string, plan *reference.LaneSet) int {
	clusters := ref.Clusters(canonical)
	if len(clusters) == 0 {
		return 0
	}

	seen := map[string]struct{}{}
	for _, lane := range reference.Lanes {
		for _, it := range plan.Get(lane) {
			seen[dedupeKey(it)] = struct{}{}
		}
	}

	added := 0
	for _, id := range clusters {
		if added >= MaxOverlay {
			break
		}
		g, ok := ref.GroupByID(id)
		if !ok {
			continue
		}

		sources := []overlaySource{
			{items: g.Enrichment, lane: reference.LaneTraining},
			{items: g.Cautions, lane: reference.LaneHealth},
			{items: g.OwnerTips, lane: reference.LaneBonding},
		}
	cluster:
		for _, src := range sources {
			for _, it := range src.items {
				it = strings.TrimSpace(it)
				k := dedupeKey(it)
				if k == "" {
					continue
				}
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
				plan.Set(src.lane, append(plan.Get(src.lane), it))
				added++
				break cluster
			}
		}
	}
	return added
}

func dedupeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
