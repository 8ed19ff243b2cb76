/*
Package forward implements the three queries a forwarding store answers:
rewriting one number (Lookup), enumerating every number that rewrites to a
given one (Reverse), and counting how many fixed-length numbers over a
restricted digit set would be rewritten at all (NonTrivialCount).

All three are read-only walks over a *trie.Trie; none of them mutate it.
*/
package forward

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/samber/lo"

	"github.com/p-banach/telefony/digit"
	"github.com/p-banach/telefony/numlist"
	"github.com/p-banach/telefony/trie"
)

// Lookup rewrites input using the longest matching rule in t, returning a
// single-element list holding input unchanged if no rule's prefix matches
// it, or an empty list if input is not a well-formed number. It returns a
// list rather than a bare string so a caller that also calls Reverse can
// treat both results uniformly.
func Lookup(t *trie.Trie, input string) *numlist.List {
	result := numlist.New()
	if !digit.IsNumber(input) {
		return result
	}
	node, consumed, ok := t.LongestRuleMatch(input)
	if !ok {
		result.Append(input)
		return result
	}
	result.Append(node.Forward() + input[consumed:])
	return result
}

// Reverse enumerates, in alphabet order with duplicates suppressed, every
// number that Lookup would rewrite to query, including query itself (the
// trivial case where no rule applies). It returns an empty list if query
// is not a well-formed number.
func Reverse(t *trie.Trie, query string) *numlist.List {
	result := numlist.New()
	if !digit.IsNumber(query) {
		return result
	}
	result.InsertSorted(query)
	t.Walk(func(path, fwd string) {
		if strings.HasPrefix(query, fwd) {
			result.InsertSorted(path + query[len(fwd):])
		}
	})
	return result
}

// NonTrivialCount approximates how many numbers of length exactly length,
// built only from digits in set, Lookup would rewrite to something
// different. It returns 0 if set contains no digit symbols or length is
// not positive.
//
// Every rule's forward value that uses only digits from set is a
// "signature". Signatures are coalesced through an auxiliary trie so that
// a signature nested under a shorter one contributes nothing on its own
// (the shorter signature's count already covers it); each surviving
// minimal signature of length at most length contributes
// len(set)^(length-len(signature)) length-L numbers.
func NonTrivialCount(t *trie.Trie, set string, length int) uint64 {
	if length <= 0 {
		return 0
	}
	digits := distinctDigits(set)
	if len(digits) == 0 {
		return 0
	}
	allowed := bitset.New(uint(digit.Count))
	for _, d := range digits {
		allowed.Set(uint(digit.Index(d)))
	}

	aux := trie.New()
	t.Walk(func(_, fwd string) {
		if usesOnly(fwd, allowed) {
			aux.InsertAllowEqual(fwd, fwd)
		}
	})

	base := uint64(len(digits))
	var total uint64
	for _, sig := range aux.MinimalSignatures() {
		if len(sig) > length {
			continue
		}
		total += pow(base, uint64(length-len(sig)))
	}
	return total
}

// distinctDigits returns the distinct digit symbols appearing in s, in
// first-seen order, ignoring any non-digit bytes.
func distinctDigits(s string) []byte {
	var raw []byte
	for i := 0; i < len(s); i++ {
		if digit.IsDigit(s[i]) {
			raw = append(raw, s[i])
		}
	}
	return lo.Uniq(raw)
}

// usesOnly reports whether every byte of s is a digit present in allowed.
func usesOnly(s string, allowed *bitset.BitSet) bool {
	for i := 0; i < len(s); i++ {
		if !digit.IsDigit(s[i]) || !allowed.Test(uint(digit.Index(s[i]))) {
			return false
		}
	}
	return true
}

func pow(base, exp uint64) uint64 {
	result := uint64(1)
	for ; exp > 0; exp-- {
		result *= base
	}
	return result
}
