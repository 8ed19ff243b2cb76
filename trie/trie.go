/*
Package trie implements the compressed prefix tree (radix trie) that backs
every forwarding store in this module.

Each edge is labeled with a (possibly multi-digit) run of the digit
alphabet rather than a single digit, and no two children of the same node
share the first digit of their edge — so a lookup always has at most one
child to consider at each step. Rules are stored by setting a node's
forward value; nodes with no rule of their own exist purely to let two
rules share a common prefix.

This module runs single-threaded: callers that share a Trie across
goroutines must synchronize externally, so unlike the trie this package
replaces, Trie carries no mutex.
*/
package trie

import (
	"github.com/p-banach/telefony/digit"
	"github.com/p-banach/telefony/stack"
)

// Node is a single node of the trie.
//
//   - edge is the digit run labeling the edge from parent to this node;
//     empty only for the root.
//   - forward is nil when the node carries no rule, otherwise it points at
//     the replacement prefix for every number whose path to this node is a
//     prefix of it.
//   - children holds this node's children, keyed by the first digit of
//     their edge.
//   - parent is a lookup aid only; it never implies ownership.
type Node struct {
	edge     string
	forward  *string
	children childSet
	parent   *Node
}

// Forward returns the node's replacement prefix. Callers must only call
// this on a node known to be rule-bearing, e.g. one returned by
// LongestRuleMatch with ok == true.
func (n *Node) Forward() string {
	return *n.forward
}

// Trie is a radix trie over the digit alphabet, rooted at an edgeless,
// rule-less root node.
type Trie struct {
	root *Node
}

// New returns an empty Trie.
func New() *Trie {
	return &Trie{root: &Node{}}
}

// Insert installs the rule "prefix a maps to prefix b", replacing any
// existing rule with the same a. It returns false and leaves the trie
// unchanged if a or b is not a well-formed number, or if a equals b.
func (t *Trie) Insert(a, b string) bool {
	if !digit.IsNumber(a) || !digit.IsNumber(b) || a == b {
		return false
	}
	t.insert(a, b)
	return true
}

// InsertAllowEqual behaves like Insert but also accepts a == b. It exists
// for the auxiliary trie the non-trivial-count algorithm builds to
// coalesce forwarding signatures, where the "rule" being recorded is a
// signature's mere presence rather than a genuine forward/backward pair.
func (t *Trie) InsertAllowEqual(a, b string) bool {
	if !digit.IsNumber(a) || !digit.IsNumber(b) {
		return false
	}
	t.insert(a, b)
	return true
}

// insert implements the four-case algorithm for installing a rule along
// the path spelled by a: extend a fresh edge (no existing child shares a's
// first digit), split an existing edge at the longest common prefix, pass
// through a node whose edge is fully consumed, or overwrite a node whose
// edge exactly matches what remains of a.
func (t *Trie) insert(a, b string) {
	n := t.root
	search := a
	for {
		if len(search) == 0 {
			fwd := b
			n.forward = &fwd
			return
		}
		idx := digit.Index(search[0])
		child := n.children.get(idx)
		if child == nil {
			fwd := b
			n.children.set(idx, &Node{edge: search, forward: &fwd, parent: n})
			return
		}
		cp := digit.CommonPrefixLen(search, child.edge)
		switch {
		case cp < len(child.edge):
			// Split child's edge at the common prefix and hang the
			// unconsumed tail of both search and child under the split
			// node. The split node is built, with child already re-hung
			// under it, before it replaces child in n, so n never points
			// at a half-built node. Go's allocator panics rather than
			// reporting failure, so there is no failed allocation to
			// roll back here.
			mid := &Node{edge: child.edge[:cp], parent: n}
			child.edge = child.edge[cp:]
			child.parent = mid
			mid.children.set(digit.Index(child.edge[0]), child)
			n.children.set(idx, mid)

			remainder := search[cp:]
			if len(remainder) == 0 {
				fwd := b
				mid.forward = &fwd
			} else {
				fwd := b
				leaf := &Node{edge: remainder, forward: &fwd, parent: mid}
				mid.children.set(digit.Index(remainder[0]), leaf)
			}
			return
		case cp == len(search):
			// child.edge fully matches; search is exhausted too.
			fwd := b
			child.forward = &fwd
			return
		default:
			n = child
			search = search[cp:]
		}
	}
}

// RemoveSubtree deletes every rule whose key has a as a prefix. It is a
// no-op if a is not a well-formed number, or if no such rule exists.
func (t *Trie) RemoveSubtree(a string) {
	if !digit.IsNumber(a) {
		return
	}
	n := t.root
	search := a
	for {
		if len(search) == 0 {
			t.detach(n)
			return
		}
		idx := digit.Index(search[0])
		child := n.children.get(idx)
		if child == nil {
			return
		}
		cp := digit.CommonPrefixLen(search, child.edge)
		if cp < len(child.edge) {
			if cp == len(search) {
				// a is a proper prefix of child's edge: every rule in
				// child's subtree has a as a prefix, so the whole subtree
				// goes.
				n.children.delete(idx)
			}
			return
		}
		search = search[cp:]
		n = child
	}
}

// detach removes n from its parent's children. n must not be the root.
func (t *Trie) detach(n *Node) {
	if n.parent == nil {
		return
	}
	n.parent.children.delete(digit.Index(n.edge[0]))
}

// LongestRuleMatch returns the rule-bearing node whose path from the root
// is the longest prefix of input, together with how many digits of input
// that path consumes. ok is false if no ancestor on the descent carries a
// rule.
func (t *Trie) LongestRuleMatch(input string) (node *Node, consumed int, ok bool) {
	n := t.root
	search := input
	var depth int
	for len(search) > 0 {
		idx := digit.Index(search[0])
		child := n.children.get(idx)
		if child == nil {
			break
		}
		cp := digit.CommonPrefixLen(search, child.edge)
		if cp < len(child.edge) {
			break
		}
		depth += cp
		search = search[cp:]
		n = child
		if n.forward != nil {
			node, consumed, ok = n, depth, true
		}
	}
	return node, consumed, ok
}

// Walk performs a pre-order depth-first traversal of every rule-bearing
// node, visiting children in alphabet order, and calls fn with the full
// digit path from the root and the node's forward value.
func (t *Trie) Walk(fn func(path, forward string)) {
	type frame struct {
		n    *Node
		path string
	}
	s := stack.NewStack[frame]()
	s.Push(frame{t.root, ""})
	for !s.IsEmpty() {
		f, _ := s.Pop()
		if f.n.forward != nil {
			fn(f.path, *f.n.forward)
		}
		children := f.n.children.all()
		for i := len(children) - 1; i >= 0; i-- {
			c := children[i]
			s.Push(frame{c, f.path + c.edge})
		}
	}
}

// MinimalSignatures returns the digit path of every rule-bearing node that
// has no rule-bearing ancestor, i.e. every "minimal" signature. Unlike
// Walk, traversal does not descend past a rule-bearing node: any rule
// nested under it shares its prefix and is already accounted for by it.
func (t *Trie) MinimalSignatures() []string {
	type frame struct {
		n    *Node
		path string
	}
	var result []string
	s := stack.NewStack[frame]()
	s.Push(frame{t.root, ""})
	for !s.IsEmpty() {
		f, _ := s.Pop()
		if f.n.forward != nil {
			result = append(result, f.path)
			continue
		}
		children := f.n.children.all()
		for i := len(children) - 1; i >= 0; i-- {
			c := children[i]
			s.Push(frame{c, f.path + c.edge})
		}
	}
	return result
}
