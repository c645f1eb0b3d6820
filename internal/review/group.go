// Package review implements the reviewer-facing nomination views: folding
// flat nomination lists into per-nominee groups and the tabbed board state
// those groups are displayed through.
package review

import (
	"strconv"

	"github.com/starward/starward/internal/api"
)

// Group collects every nomination a single nominee received. Status is
// taken from the first-seen member; within one review slice all members
// share it.
type Group struct {
	NomineeID   int
	NomineeName string
	NomineeRole string
	NomineeDept string
	Status      api.Status
	List        []api.Nomination
}

// GroupByNominee folds a flat nomination list into groups in first-seen
// order. Grouping keys on the nominee's stable ID; entries without one
// (older backends omit it) fall back to the display name, accepting that
// two nominees sharing a name would merge.
func GroupByNominee(noms []api.Nomination) []Group {
	index := make(map[string]int, len(noms))
	groups := make([]Group, 0, len(noms))

	for _, n := range noms {
		key := groupKey(n)
		if at, ok := index[key]; ok {
			groups[at].List = append(groups[at].List, n)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, Group{
			NomineeID:   n.NomineeID,
			NomineeName: n.NomineeName,
			NomineeRole: n.NomineeRole,
			NomineeDept: n.NomineeDept,
			Status:      n.Status,
			List:        []api.Nomination{n},
		})
	}
	return groups
}

func groupKey(n api.Nomination) string {
	if n.NomineeID != 0 {
		return "id:" + strconv.Itoa(n.NomineeID)
	}
	return "name:" + n.NomineeName
}

// FilterPolicy optionally restricts a view to a status allow-list before
// grouping. The zero value allows everything. Near-identical views differ
// on this: the committee history tab shows only committee-stage outcomes,
// the coordinator history tab shows all processed items.
type FilterPolicy struct {
	Allowed []api.Status
}

// CommitteeHistoryPolicy restricts history to committee-stage outcomes.
var CommitteeHistoryPolicy = FilterPolicy{
	Allowed: []api.Status{
		api.StatusCommitteeApproved,
		api.StatusCommitteeRejected,
		api.StatusAwarded,
	},
}

// Apply returns the nominations whose status the policy allows, preserving
// order. A zero policy returns the input unchanged.
func (p FilterPolicy) Apply(noms []api.Nomination) []api.Nomination {
	if len(p.Allowed) == 0 {
		return noms
	}
	allowed := make(map[api.Status]bool, len(p.Allowed))
	for _, s := range p.Allowed {
		allowed[s] = true
	}
	out := make([]api.Nomination, 0, len(noms))
	for _, n := range noms {
		if allowed[n.Status] {
			out = append(out, n)
		}
	}
	return out
}
