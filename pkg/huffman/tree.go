package huffman

// noChild marks a leaf in the node arena.
const noChild = -1

// treeNode is one arena slot. Leaves carry a symbol, internal nodes carry two children.
// The arena index doubles as the insertion sequence used for tie-breaking: leaves are
// appended in first-seen order, merged nodes in creation order.
type treeNode struct {
	sym         Symbol
	weight      uint64
	left, right int
}

func (n *treeNode) leaf() bool { return n.left == noChild }

// Tree is a Huffman tree stored as an arena of nodes referenced by index.
type Tree struct {
	nodes []treeNode
	root  int
}

// minHeap orders arena indexes by (weight, index).
type minHeap struct {
	nodes []treeNode
	arr   []int
}

func (h *minHeap) size() int { return len(h.arr) }

func (h *minHeap) less(i, j int) bool {
	a, b := &h.nodes[h.arr[i]], &h.nodes[h.arr[j]]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return h.arr[i] < h.arr[j]
}

func (h *minHeap) push(idx int) {
	h.arr = append(h.arr, idx)
	i := len(h.arr) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			return
		}
		h.arr[parent], h.arr[i] = h.arr[i], h.arr[parent]
		i = parent
	}
}

func (h *minHeap) pop() int {
	out := h.arr[0]
	last := len(h.arr) - 1
	h.arr[0] = h.arr[last]
	h.arr = h.arr[:last]

	parent := 0
	for {
		child := 2*parent + 1
		if child >= h.size() {
			break
		}
		if child+1 < h.size() && h.less(child+1, child) {
			child++
		}
		if !h.less(child, parent) {
			break
		}
		h.arr[parent], h.arr[child] = h.arr[child], h.arr[parent]
		parent = child
	}
	return out
}

// BuildTree merges the two lightest nodes until one remains. The first node popped becomes
// the left child. Equal weights pop in insertion order, so identical tables always yield
// identical trees.
func BuildTree(ft *FrequencyTable) (*Tree, error) {
	if ft == nil || ft.Distinct() == 0 {
		return nil, ErrEmptyInput
	}

	// n leaves produce n-1 internal nodes.
	t := &Tree{nodes: make([]treeNode, 0, 2*ft.Distinct()-1)}
	for _, s := range ft.order {
		t.nodes = append(t.nodes, treeNode{sym: s, weight: ft.counts[s], left: noChild, right: noChild})
	}

	h := &minHeap{nodes: t.nodes, arr: make([]int, 0, len(t.nodes))}
	for i := range t.nodes {
		h.push(i)
	}
	for h.size() > 1 {
		a := h.pop()
		b := h.pop()
		t.nodes = append(t.nodes, treeNode{
			weight: t.nodes[a].weight + t.nodes[b].weight,
			left:   a,
			right:  b,
		})
		h.nodes = t.nodes
		h.push(len(t.nodes) - 1)
	}
	t.root = h.pop()
	return t, nil
}

// Weight is the total count under the root.
func (t *Tree) Weight() uint64 { return t.nodes[t.root].weight }

// Leaves is the alphabet size.
func (t *Tree) Leaves() int { return (len(t.nodes) + 1) / 2 }

// Codes walks the tree depth first, left edge 0 and right edge 1, calling fn for every leaf
// in that order. A tree made of a single leaf gets the code "0".
func (t *Tree) Codes(fn func(s Symbol, code string)) {
	if t.nodes[t.root].leaf() {
		fn(t.nodes[t.root].sym, "0")
		return
	}
	path := make([]byte, 0, 32)
	var walk func(idx int)
	walk = func(idx int) {
		n := &t.nodes[idx]
		if n.leaf() {
			fn(n.sym, string(path))
			return
		}
		path = append(path, '0')
		walk(n.left)
		path[len(path)-1] = '1'
		walk(n.right)
		path = path[:len(path)-1]
	}
	walk(t.root)
}
