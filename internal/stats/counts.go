package stats

import (
	"sort"

	"github.com/annoworks/annostat/models"
)

// CategoryCounts is a fixed-width count vector, one slot per status category,
// indexed by models.StatusCategory.Index.
type CategoryCounts [6]int

// Get returns the count for one category.
func (c CategoryCounts) Get(cat models.StatusCategory) int {
	return c[cat.Index()]
}

// Total sums the vector across all six categories.
func (c CategoryCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

type bucketKey struct {
	phase models.Phase
	group string
}

// CountTable tallies classified task-phases into a phase x category x group
// matrix. Each observed (phase, category, group) triple increments exactly
// one slot, so per-bucket totals equal the number of tasks observed there.
type CountTable struct {
	counts map[bucketKey]*CategoryCounts
	groups map[string]GroupKey
}

// NewCountTable creates an empty count table.
func NewCountTable() *CountTable {
	return &CountTable{
		counts: make(map[bucketKey]*CategoryCounts),
		groups: make(map[string]GroupKey),
	}
}

// Add records one classified task-phase.
func (t *CountTable) Add(phase models.Phase, category models.StatusCategory, group GroupKey) {
	key := bucketKey{phase: phase, group: group.Key()}
	vec, ok := t.counts[key]
	if !ok {
		vec = &CategoryCounts{}
		t.counts[key] = vec
		t.groups[group.Key()] = group
	}
	vec[category.Index()]++
}

// Counts returns the count vector for one (phase, group) bucket. The zero
// vector is returned for buckets never observed.
func (t *CountTable) Counts(phase models.Phase, group GroupKey) CategoryCounts {
	if vec, ok := t.counts[bucketKey{phase: phase, group: group.Key()}]; ok {
		return *vec
	}
	return CategoryCounts{}
}

// CountRow is one bucket of the table, shaped for direct tabular rendering.
type CountRow struct {
	Phase  models.Phase
	Group  GroupKey
	Counts CategoryCounts
}

// Rows lists the table's buckets ordered by workflow phase, then group key.
func (t *CountTable) Rows() []CountRow {
	rows := make([]CountRow, 0, len(t.counts))
	for key, vec := range t.counts {
		rows = append(rows, CountRow{
			Phase:  key.phase,
			Group:  t.groups[key.group],
			Counts: *vec,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Phase != rows[j].Phase {
			return rows[i].Phase.Order() < rows[j].Phase.Order()
		}
		return rows[i].Group.Key() < rows[j].Group.Key()
	})
	return rows
}
