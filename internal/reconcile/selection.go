package reconcile

import (
	"slices"

	"github.com/LucasCaro97/aserradero-tesoreria/internal/entity"
	"github.com/LucasCaro97/aserradero-tesoreria/internal/money"
)

// Selection is an immutable set of check ids chosen for one transaction.
// The zero value is empty and ready to use.
type Selection struct {
	ids map[int64]struct{}
}

// SelectionFrom builds a selection; repeated ids collapse.
func SelectionFrom(ids ...int64) Selection {
	s := Selection{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Toggle adds id when absent and removes it when present.
func (s Selection) Toggle(id int64) Selection {
	next := Selection{ids: make(map[int64]struct{}, len(s.ids)+1)}
	for k := range s.ids {
		next.ids[k] = struct{}{}
	}
	if _, ok := next.ids[id]; ok {
		delete(next.ids, id)
	} else {
		next.ids[id] = struct{}{}
	}
	return next
}

// Clear returns the empty selection.
func (s Selection) Clear() Selection { return Selection{} }

func (s Selection) Len() int      { return len(s.ids) }
func (s Selection) IsEmpty() bool { return len(s.ids) == 0 }

func (s Selection) Contains(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

// OrderedIDs returns the ids ascending, ready for submission.
func (s Selection) OrderedIDs() []int64 {
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// TotalAmount sums the amounts of the selected checks. Ids missing from
// available contribute zero; Validate reports them separately.
func (s Selection) TotalAmount(available map[int64]entity.Check) money.Money {
	total := money.Zero
	for id := range s.ids {
		if c, ok := available[id]; ok {
			total = total.Add(c.Amount)
		}
	}
	return total
}

// Missing returns the selected ids absent from available, ascending.
func (s Selection) Missing(available map[int64]entity.Check) []int64 {
	var out []int64
	for id := range s.ids {
		if _, ok := available[id]; !ok {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}
