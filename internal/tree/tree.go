// Package tree rebuilds account hierarchies from flat records that reference
// their parent by id.
package tree

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/statements/internal/model"
)

// DuplicateIDError reports two records sharing one id.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate account id %q", e.ID)
}

// CyclicHierarchyError reports a parent chain that revisits an id.
// Path lists the ids of the cycle in parent order, starting and ending with
// the same id.
type CyclicHierarchyError struct {
	Path []string
}

func (e *CyclicHierarchyError) Error() string {
	return fmt.Sprintf("cyclic account hierarchy: %s", strings.Join(e.Path, " -> "))
}

// Node is one account in a Forest arena.
type Node struct {
	Account  model.Account
	parent   int // -1 for roots
	children []int
}

// Forest is an immutable arena of account nodes with roots in first-seen order.
type Forest struct {
	nodes []Node
	roots []int
	index map[string]int
}

// Build converts flat records into a forest. A record whose ParentID is blank
// or names an id outside the batch becomes a root.
func Build(records []model.Account) (*Forest, error) {
	f := &Forest{
		nodes: make([]Node, len(records)),
		index: make(map[string]int, len(records)),
	}
	for i, rec := range records {
		if _, dup := f.index[rec.ID]; dup {
			return nil, &DuplicateIDError{ID: rec.ID}
		}
		f.index[rec.ID] = i
		f.nodes[i] = Node{Account: rec, parent: -1}
	}

	for i, rec := range records {
		p, ok := f.index[rec.ParentID]
		if rec.ParentID == "" || !ok {
			f.roots = append(f.roots, i)
			continue
		}
		f.nodes[i].parent = p
		f.nodes[p].children = append(f.nodes[p].children, i)
	}

	// Every node must be reachable from a root. Nodes that are not hang off a
	// parent chain that never terminates.
	visited := make([]bool, len(f.nodes))
	stack := append([]int(nil), f.roots...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visited[n] = true
		stack = append(stack, f.nodes[n].children...)
	}
	for i := range f.nodes {
		if !visited[i] {
			return nil, &CyclicHierarchyError{Path: f.cycleFrom(i)}
		}
	}
	return f, nil
}

// cycleFrom follows parent links from an unreachable node until an id repeats.
func (f *Forest) cycleFrom(start int) []string {
	pos := make(map[int]int)
	var chain []int
	for n := start; n >= 0; n = f.nodes[n].parent {
		if at, seen := pos[n]; seen {
			path := make([]string, 0, len(chain)-at+1)
			for _, c := range chain[at:] {
				path = append(path, f.nodes[c].Account.ID)
			}
			return append(path, f.nodes[n].Account.ID)
		}
		pos[n] = len(chain)
		chain = append(chain, n)
	}
	return []string{f.nodes[start].Account.ID}
}

// BuildByType groups records by account type and builds one forest per type.
// A structural error aborts only its own bucket; parents in other buckets are
// treated as absent.
func BuildByType(records []model.Account) (map[model.AccountType]*Forest, map[model.AccountType]error) {
	buckets := make(map[model.AccountType][]model.Account)
	for _, rec := range records {
		buckets[rec.Type] = append(buckets[rec.Type], rec)
	}

	forests := make(map[model.AccountType]*Forest, len(buckets))
	errs := make(map[model.AccountType]error)
	for t, recs := range buckets {
		f, err := Build(recs)
		if err != nil {
			errs[t] = fmt.Errorf("building %s accounts: %w", t, err)
			continue
		}
		forests[t] = f
	}
	return forests, errs
}

// Len returns the number of nodes.
func (f *Forest) Len() int {
	if f == nil {
		return 0
	}
	return len(f.nodes)
}

// Roots returns root node indexes in first-seen order.
func (f *Forest) Roots() []int {
	if f == nil {
		return nil
	}
	return f.roots
}

// Node returns the node at index i.
func (f *Forest) Node(i int) *Node {
	return &f.nodes[i]
}

// Children returns the child indexes of node i in input order.
func (f *Forest) Children(i int) []int {
	return f.nodes[i].children
}

// HasChildren reports whether node i has any children.
func (f *Forest) HasChildren(i int) bool {
	return len(f.nodes[i].children) > 0
}

// Depth returns the length of node i's parent chain.
func (f *Forest) Depth(i int) int {
	d := 0
	for p := f.nodes[i].parent; p >= 0; p = f.nodes[p].parent {
		d++
	}
	return d
}

// Find returns the index of the node with the given account id.
func (f *Forest) Find(id string) (int, bool) {
	if f == nil {
		return 0, false
	}
	i, ok := f.index[id]
	return i, ok
}

// Descendants returns the indexes below node i in pre-order.
func (f *Forest) Descendants(i int) []int {
	var out []int
	for _, c := range f.nodes[i].children {
		out = append(out, c)
		out = append(out, f.Descendants(c)...)
	}
	return out
}

// Flatten returns every account in depth-first pre-order.
func (f *Forest) Flatten() []model.Account {
	var out []model.Account
	for _, r := range f.Roots() {
		out = append(out, f.nodes[r].Account)
		for _, d := range f.Descendants(r) {
			out = append(out, f.nodes[d].Account)
		}
	}
	return out
}
