// Package tree implements the adaptive Huffman tree described by the codec
// specification: a self-balancing prefix-code tree over whole-word symbols,
// with an NYT (Not-Yet-Transmitted) growth point and an NCW (New-Code-Word)
// escape leaf. Encoder and decoder each own one Tree and must mutate it
// through exactly the same sequence of calls for the two sides to stay in
// sync; see rebalance.go for the structural-swap step that keeps the
// approximate sibling property (invariant 4 of the specification).
package tree

// Tree is an adaptive Huffman tree over word symbols, backed by an Arena.
// Not safe for concurrent use; the codec serializes access with its own
// lock.
type Tree struct {
	arena   *Arena
	root    int
	nyt     int
	ncw     int
	index   map[string]int
	nextKey int
}

// New returns a Tree in its initial state: a root (key 3, weight 0) whose
// left child is the sole NYT leaf (key 1) and whose right child is the sole
// NCW leaf (key 2). The next key to be assigned is 4.
func New() *Tree {
	a := NewArena()
	root := a.Alloc(Node{Kind: Internal, Key: 3, Parent: noChild})
	nyt := a.Alloc(Node{Kind: NYT, Key: 1, Parent: root, Left: noChild, Right: noChild})
	ncw := a.Alloc(Node{Kind: NCW, Key: 2, Parent: root, Left: noChild, Right: noChild})

	rootNode := a.Get(root)
	rootNode.Left = nyt
	rootNode.Right = ncw

	return &Tree{
		arena:   a,
		root:    root,
		nyt:     nyt,
		ncw:     ncw,
		index:   make(map[string]int),
		nextKey: 4,
	}
}

// Root returns the arena index of the tree's root.
func (t *Tree) Root() int { return t.root }

// NYT returns the arena index of the current NYT leaf.
func (t *Tree) NYT() int { return t.nyt }

// NCW returns the arena index of the sole NCW leaf.
func (t *Tree) NCW() int { return t.ncw }

// NodeCount returns the number of nodes allocated so far.
func (t *Tree) NodeCount() int { return t.arena.Len() }

// NextKey returns the key that will be assigned to the next inserted word's
// symbol leaf (its companion NYT leaf gets NextKey()+1).
func (t *Tree) NextKey() int { return t.nextKey }

// Lookup returns the arena index of word's leaf, if it has been seen before.
func (t *Tree) Lookup(word string) (int, bool) {
	idx, ok := t.index[word]
	return idx, ok
}

// Kind returns the kind of the node at idx.
func (t *Tree) Kind(idx int) Kind { return t.arena.Get(idx).Kind }

// Word returns the word carried by a leaf node; only meaningful when
// Kind(idx) == Leaf.
func (t *Tree) Word(idx int) string { return t.arena.Get(idx).Word }

// Weight returns the node's current weight.
func (t *Tree) Weight(idx int) int { return t.arena.Get(idx).Weight }

// Key returns the node's tie-breaking key.
func (t *Tree) Key(idx int) int { return t.arena.Get(idx).Key }

// Parent returns the node's parent index, or -1 for the root.
func (t *Tree) Parent(idx int) int { return t.arena.Get(idx).Parent }

// Children returns the node's left and right child indices, or (-1, -1) for
// a leaf.
func (t *Tree) Children(idx int) (left, right int) {
	n := t.arena.Get(idx)
	return n.Left, n.Right
}

// Child follows one step from idx in the direction bit (0 = left, 1 = right).
func (t *Tree) Child(idx int, bit byte) int {
	n := t.arena.Get(idx)
	if bit == 0 {
		return n.Left
	}
	return n.Right
}

// PathTo walks from idx to the root, returning the root-to-idx bit path
// (0 = left child, 1 = right child at each step). Empty iff idx is the root.
func (t *Tree) PathTo(idx int) []byte {
	var rev []byte
	for idx != t.root {
		n := t.arena.Get(idx)
		p := t.arena.Get(n.Parent)
		if p.Left == idx {
			rev = append(rev, 0)
		} else {
			rev = append(rev, 1)
		}
		idx = n.Parent
	}
	// rev was collected leaf-to-root; reverse it in place.
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// InsertWord converts the current NYT leaf into an internal node with two
// fresh children — a new NYT leaf (left) and a new symbol leaf for word
// (right) — then increments the new symbol leaf's weight up to the root.
// Returns the new symbol leaf's index. Binding key order: the symbol leaf
// gets the smaller of the two freshly assigned keys, the NYT leaf the
// larger one; reversing this diverges encoder and decoder after the second
// new word (see the specification's key-assignment note).
func (t *Tree) InsertWord(word string) int {
	oldNYT := t.nyt

	symbolKey := t.nextKey
	nytKey := t.nextKey + 1
	t.nextKey += 2

	newLeaf := t.arena.Alloc(Node{Kind: Leaf, Key: symbolKey, Parent: oldNYT, Left: noChild, Right: noChild, Word: word})
	newNYT := t.arena.Alloc(Node{Kind: NYT, Key: nytKey, Parent: oldNYT, Left: noChild, Right: noChild})

	n := t.arena.Get(oldNYT)
	n.Kind = Internal
	n.Left = newNYT
	n.Right = newLeaf

	t.index[word] = newLeaf
	t.nyt = newNYT

	t.Increment(newLeaf)
	return newLeaf
}

// Increment walks from idx to the root, rebalancing the tree at each node
// via swapCandidate/swapNodes (rebalance.go) before bumping its weight. See
// rebalance.go for the algorithm.
func (t *Tree) Increment(idx int) {
	for {
		weight := t.arena.Get(idx).Weight
		h := t.swapCandidate(weight, idx)

		vParent := t.arena.Get(idx).Parent
		hParent := t.arena.Get(h).Parent
		if h != idx && vParent != h && hParent != idx && !t.isAncestor(idx, h) {
			t.swapNodes(idx, h)
		}

		t.arena.Get(idx).Weight++

		if idx == t.root {
			return
		}
		idx = t.arena.Get(idx).Parent
	}
}

// isAncestor reports whether anc lies on descendant's path to the root.
func (t *Tree) isAncestor(anc, descendant int) bool {
	cur := t.arena.Get(descendant).Parent
	for cur != noChild {
		if cur == anc {
			return true
		}
		cur = t.arena.Get(cur).Parent
	}
	return false
}
