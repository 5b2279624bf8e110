// Package parsetree implements the flat, index-addressed parse-tree
// arena described in spec.md §3: a node list plus a parent map and an
// ordered child list per node. Grounded directly on the karma
// prototype's src/parser.rs SyntaxTree (node_list/adj_list/parents_list
// and get_next_nt_sibling) and shaped like the parse-tree node taxonomy
// in _examples/shadowCow-cow-lang-go's tooling/parsetree package
// (terminal / nonterminal / empty / program-root).
package parsetree

import "nodelang.dev/nodec/pkg/token"

// Kind tags a Symbol the way cow-lang-go's parsetree.ParseTree
// implementations (TerminalNode/NonTerminalNode/EmptyNode) do, but
// collapsed into a single arena entry instead of one interface value
// per concrete type.
type Kind uint8

const (
	Terminal Kind = iota
	Nonterminal
	Empty
	End
)

// Symbol is the payload stored at each arena index.
type Symbol struct {
	Kind  Kind
	Name  string      // nonterminal tag, e.g. "Expression"; empty for Terminal/Empty/End
	Token token.Token // populated when Kind == Terminal
}

// Tree is the parse-tree arena. Index 0 is always the start symbol
// (spec.md §3 invariant). Children are appended in grammar order;
// every non-root node has exactly one parent.
type Tree struct {
	nodes    []Symbol
	parents  []int // parents[i] is the arena index of node i's parent, -1 for root
	children [][]int
}

// New allocates an empty arena.
func New() *Tree {
	return &Tree{}
}

// SetRoot installs sym as node 0 of a fresh arena and returns its index (0).
func (t *Tree) SetRoot(sym Symbol) int {
	t.nodes = []Symbol{sym}
	t.parents = []int{-1}
	t.children = [][]int{{}}
	return 0
}

// AddChild appends a new node with the given symbol as the next child
// of parentIdx, and returns the new node's arena index.
func (t *Tree) AddChild(parentIdx int, sym Symbol) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, sym)
	t.parents = append(t.parents, parentIdx)
	t.children = append(t.children, []int{})
	t.children[parentIdx] = append(t.children[parentIdx], idx)
	return idx
}

// Symbol returns the symbol stored at idx.
func (t *Tree) Symbol(idx int) Symbol { return t.nodes[idx] }

// Children returns the ordered child indices of idx.
func (t *Tree) Children(idx int) []int { return t.children[idx] }

// Parent returns the parent index of idx, or -1 for the root.
func (t *Tree) Parent(idx int) int { return t.parents[idx] }

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

// GetNextNTSibling walks up from idx through ancestor levels looking
// for the next-in-order sibling that is itself a Nonterminal, which
// becomes the parser's new focus node. Ported from src/parser.rs's
// get_next_nt_sibling: at each level, scan the parent's children for
// the first Nonterminal strictly after idx's position; if none is
// found, move up to the grandparent and repeat. Returns 0 (the root)
// once the walk is exhausted.
func (t *Tree) GetNextNTSibling(idx int) int {
	for idx != 0 {
		parent := t.parents[idx]
		siblings := t.children[parent]

		pos := -1
		for i, sib := range siblings {
			if sib == idx {
				pos = i
				break
			}
		}

		for i := pos + 1; i < len(siblings); i++ {
			if t.nodes[siblings[i]].Kind == Nonterminal {
				return siblings[i]
			}
		}

		idx = parent
	}
	return 0
}
