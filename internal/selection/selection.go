// Package selection holds the search/status filter and the checked-row set of
// the voucher tables. It has no knowledge of in-flight jobs.
package selection

import (
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

// AllStatuses is the status filter sentinel that matches every row.
const AllStatuses = "All Status"

// Apply returns the rows matching query and status, in input order. query is
// matched case-insensitively against id, title, description and category.
func Apply(rows []*voucher.Voucher, query, status string) []*voucher.Voucher {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]*voucher.Voucher, 0, len(rows))

	for _, v := range rows {
		if status != "" && status != AllStatuses && string(v.Status) != status {
			continue
		}

		if query != "" && !strings.Contains(searchText(v), query) {
			continue
		}

		out = append(out, v)
	}

	return out
}

func searchText(v *voucher.Voucher) string {
	return strings.ToLower(strings.Join([]string{v.ID, v.Title, v.Description, v.Category}, " "))
}

// IDs returns the ids of rows in order.
func IDs(rows []*voucher.Voucher) []string {
	ids := make([]string, len(rows))
	for i, v := range rows {
		ids[i] = v.ID
	}

	return ids
}

// Set is the set of checked ids. It may hold ids that are not currently
// visible. The zero value is ready to use.
type Set struct {
	ids map[string]struct{}
}

func (s *Set) init() {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
}

func (s *Set) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Set) Toggle(id string) {
	s.init()

	if s.Has(id) {
		delete(s.ids, id)
		return
	}

	s.ids[id] = struct{}{}
}

// AllSelected reports whether visible is non-empty and fully selected.
func (s *Set) AllSelected(visible []string) bool {
	if len(visible) == 0 {
		return false
	}

	for _, id := range visible {
		if !s.Has(id) {
			return false
		}
	}

	return true
}

// ToggleAll deselects exactly the visible ids when all of them are selected,
// otherwise selects them all. Ids outside visible are never touched.
func (s *Set) ToggleAll(visible []string) {
	s.init()

	if s.AllSelected(visible) {
		for _, id := range visible {
			delete(s.ids, id)
		}

		return
	}

	for _, id := range visible {
		s.ids[id] = struct{}{}
	}
}

func (s *Set) Remove(ids ...string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

func (s *Set) Clear() {
	s.ids = nil
}

func (s *Set) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids sorted.
func (s *Set) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}
