package forward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p-banach/telefony/trie"
)

func TestLookupRewritesLongestMatch(t *testing.T) {
	tr := trie.New()
	require.True(t, tr.Insert("1", "2"))
	require.True(t, tr.Insert("12", "3"))

	got := Lookup(tr, "12345")
	require.Equal(t, 1, got.Len())
	v, ok := got.Get(0)
	require.True(t, ok)
	assert.Equal(t, "3345", v)

	got = Lookup(tr, "19")
	require.Equal(t, 1, got.Len())
	v, ok = got.Get(0)
	require.True(t, ok)
	assert.Equal(t, "29", v)
}

func TestLookupNoMatchReturnsInput(t *testing.T) {
	tr := trie.New()
	require.True(t, tr.Insert("5", "6"))

	got := Lookup(tr, "12")
	require.Equal(t, 1, got.Len())
	v, ok := got.Get(0)
	require.True(t, ok)
	assert.Equal(t, "12", v)
}

func TestLookupGetPastEndReportsFalse(t *testing.T) {
	tr := trie.New()
	require.True(t, tr.Insert("5", "6"))

	got := Lookup(tr, "12")
	_, ok := got.Get(1)
	assert.False(t, ok)
}

func TestLookupRejectsMalformed(t *testing.T) {
	tr := trie.New()
	got := Lookup(tr, "12a")
	assert.Equal(t, 0, got.Len())
}

func TestReverseIncludesNumberedPrefixesAndSelf(t *testing.T) {
	tr := trie.New()
	require.True(t, tr.Insert("1", "2"))
	require.True(t, tr.Insert("12", "3"))

	got := Reverse(tr, "23")
	assert.Equal(t, []string{"13", "23"}, got.Slice())
}

func TestReverseOnStoreWithNoRulesIsSingleton(t *testing.T) {
	tr := trie.New()
	got := Reverse(tr, "555")
	assert.Equal(t, []string{"555"}, got.Slice())
}

func TestReverseRejectsMalformed(t *testing.T) {
	tr := trie.New()
	got := Reverse(tr, "")
	assert.Equal(t, 0, got.Len())
}

func TestNonTrivialCountSimpleExample(t *testing.T) {
	tr := trie.New()
	require.True(t, tr.Insert("1", "2"))
	require.True(t, tr.Insert("12", "2"))

	got := NonTrivialCount(tr, "12", 3)
	assert.Equal(t, uint64(4), got)
}

func TestNonTrivialCountEmptySetOrLength(t *testing.T) {
	tr := trie.New()
	require.True(t, tr.Insert("1", "2"))

	assert.Equal(t, uint64(0), NonTrivialCount(tr, "", 3))
	assert.Equal(t, uint64(0), NonTrivialCount(tr, "abc", 3))
	assert.Equal(t, uint64(0), NonTrivialCount(tr, "12", 0))
}

func TestNonTrivialCountCoalescesNestedSignatures(t *testing.T) {
	tr := trie.New()
	// Both rules forward to "1" or "12"; "12" is nested under "1" so it
	// should not add anything beyond what "1" already covers.
	require.True(t, tr.Insert("5", "1"))
	require.True(t, tr.Insert("6", "12"))

	got := NonTrivialCount(tr, "12", 2)
	// signature "1" alone contributes len({1,2})^(2-1) = 2
	assert.Equal(t, uint64(2), got)
}
