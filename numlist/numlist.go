/*
Package numlist provides List, a growable, sorted, duplicate-free list of
numbers used to accumulate the results of a reverse lookup.

List keeps its entries in alphabet order as long as they are added with
InsertSorted: it finds the insertion point with a binary search and a
Set[string] guards against inserting the same number twice, since the
trie walk that feeds a reverse lookup can visit more than one rule that
maps back to the same input. Append places a number at the end with
neither sorting nor a duplicate check.

Like the container packages this one sits alongside, List starts small
(capacity two) and doubles whenever it fills, following the same growth
rule as stack and queue.
*/
package numlist

import (
	"sort"

	"github.com/p-banach/telefony/digit"
	"github.com/p-banach/telefony/set"
)

// List is a collection of numbers, sorted and duplicate-free when filled
// through InsertSorted.
type List struct {
	data []string
	seen *set.Set[string]
}

// New returns an empty List with an initial capacity of two.
func New() *List {
	return &List{
		data: make([]string, 0, 2),
		seen: set.New[string](),
	}
}

// Len returns the number of numbers currently stored.
func (l *List) Len() int {
	return len(l.data)
}

// Get returns the number at position i, in sorted order, and true. It
// returns ("", false) for i past the end instead of panicking.
func (l *List) Get(i int) (string, bool) {
	if i < 0 || i >= len(l.data) {
		return "", false
	}
	return l.data[i], true
}

// Slice returns the stored numbers as a plain slice, in sorted order. The
// caller must not mutate it.
func (l *List) Slice() []string {
	return l.data
}

// increaseSize doubles the backing slice's capacity, mirroring the growth
// rule stack and queue use.
func (l *List) increaseSize() {
	newCap := cap(l.data) * 2
	if newCap == 0 {
		newCap = 2
	}
	newData := make([]string, len(l.data), newCap)
	copy(newData, l.data)
	l.data = newData
}

// Append adds num to the end of the list unconditionally, with no sort
// position search and no duplicate check. It exists for callers building a
// single-result list (forward lookup never has more than one result to
// place), where InsertSorted's binary search and dedup guard would be pure
// overhead.
func (l *List) Append(num string) {
	if len(l.data) == cap(l.data) {
		l.increaseSize()
	}
	l.data = append(l.data, num)
	l.seen.Insert(num)
}

// InsertSorted inserts num in its alphabet-order position, unless an equal
// number is already present, in which case it is a no-op. It reports
// whether num was newly inserted.
func (l *List) InsertSorted(num string) bool {
	if l.seen.Contains(num) {
		return false
	}
	pos := sort.Search(len(l.data), func(i int) bool {
		return !digit.Less(l.data[i], num)
	})
	if len(l.data) == cap(l.data) {
		l.increaseSize()
	}
	l.data = append(l.data, "")
	copy(l.data[pos+1:], l.data[pos:])
	l.data[pos] = num
	l.seen.Insert(num)
	return true
}
