package review

import (
	"context"
	"sync"

	"github.com/starward/starward/internal/api"
)

// Tab selects which review slice a board displays.
type Tab string

const (
	TabPending Tab = "pending"
	TabHistory Tab = "history"
)

// Source is the slice of the API facade a board needs.
type Source interface {
	ReviewNominations(ctx context.Context, filter api.ReviewFilter) ([]api.Nomination, error)
	ReviewNomination(ctx context.Context, action api.ReviewAction) (string, error)
}

// Board is the state behind a tabbed review listing. Switching tabs
// synchronously clears the displayed groups and bumps a generation
// counter; data is only applied when its generation still matches, so a
// late response from an abandoned fetch is discarded instead of shown
// under the wrong tab.
type Board struct {
	source        Source
	pendingFilter api.ReviewFilter
	policies      map[Tab]FilterPolicy

	mu      sync.Mutex
	tab     Tab
	gen     uint64
	loading bool
	groups  []Group
}

// NewBoard creates a Board. pendingFilter is the server-side filter for
// the pending tab ("pending" for coordinators, "committee_pending" for the
// committee); the history tab always fetches "history". policies may
// restrict individual tabs to a status allow-list and may be nil.
func NewBoard(source Source, pendingFilter api.ReviewFilter, policies map[Tab]FilterPolicy) *Board {
	return &Board{
		source:        source,
		pendingFilter: pendingFilter,
		policies:      policies,
		tab:           TabPending,
		loading:       true,
	}
}

// SwitchTab activates a tab. The displayed groups are cleared and the
// loading flag raised before this returns, so no frame can show the
// previous tab's data under the new tab's header. The returned generation
// must accompany the eventual Apply. Re-selecting the active tab returns
// the current generation without clearing anything.
func (b *Board) SwitchTab(tab Tab) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if tab == b.tab && !b.loading && b.groups != nil {
		return b.gen
	}
	b.tab = tab
	b.gen++
	b.groups = nil
	b.loading = true
	return b.gen
}

// Apply installs fetched nominations for the given generation. Stale
// generations are discarded and Apply reports false.
func (b *Board) Apply(gen uint64, noms []api.Nomination) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen {
		return false
	}
	policy := b.policies[b.tab]
	b.groups = GroupByNominee(policy.Apply(noms))
	b.loading = false
	return true
}

// Refresh fetches the active tab's data and applies it. Used for the
// initial load and after every decision: displayed state always reflects
// a server round trip.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	filter := b.serverFilter(b.tab)
	b.groups = nil
	b.loading = true
	b.mu.Unlock()

	noms, err := b.source.ReviewNominations(ctx, filter)
	if err != nil {
		return err
	}
	b.Apply(gen, noms)
	return nil
}

// Decide requests an APPROVE/REJECT/UNDO transition and reloads the active
// tab. The backend's confirmation message is returned.
func (b *Board) Decide(ctx context.Context, nominationID int, action string) (string, error) {
	msg, err := b.source.ReviewNomination(ctx, api.ReviewAction{
		NominationID: nominationID,
		Action:       action,
	})
	if err != nil {
		return "", err
	}
	if err := b.Refresh(ctx); err != nil {
		return msg, err
	}
	return msg, nil
}

// Groups returns the currently displayed groups. Empty while loading.
func (b *Board) Groups() []Group {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.groups
}

// Loading reports whether a fetch for the active tab is outstanding.
func (b *Board) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// ActiveTab returns the selected tab.
func (b *Board) ActiveTab() Tab {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tab
}

// serverFilter must be called with b.mu held.
func (b *Board) serverFilter(tab Tab) api.ReviewFilter {
	if tab == TabHistory {
		return api.FilterHistory
	}
	return b.pendingFilter
}
