package bst

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/phf/go-queue/queue"
	"golang.org/x/exp/constraints"
)

type (
	// KeyIterator lets callers of Ascend and Walk visit keys in order.
	// Returning false stops the iteration and the calling method returns immediately.
	KeyIterator[K constraints.Ordered] func(key K) bool

	// FreeList holds released nodes so later inserts can reuse them.
	// It is safe to share between trees.
	FreeList[K constraints.Ordered] struct {
		mu       sync.Mutex
		freelist []*node[K]
	}

	// node owns both of its subtrees. A node is reachable from exactly one parent link.
	node[K constraints.Ordered] struct {
		key         K
		left, right *node[K]
	}

	// OrderedTree is an unbalanced binary search tree holding a set of keys.
	// Every key in a left subtree is less than its parent's key, every key in a
	// right subtree is greater. Floating point NaN keys sort below all others.
	// The zero value is an empty tree using its own freelist. Not safe for concurrent use.
	OrderedTree[K constraints.Ordered] struct {
		root     *node[K]
		length   int
		freelist *FreeList[K]
	}

	// Order selects a depth-first traversal for Walk.
	Order int

	freeType int
)

const (
	DefaultFreeListSize = 32
)

const (
	PreOrder Order = iota
	InOrder
	PostOrder
)

const (
	ftFreelistFull freeType = iota // node dropped for the GC
	ftStored                       // node kept on the freelist for reuse
)

func NewFreeList[K constraints.Ordered](size int) *FreeList[K] {
	return &FreeList[K]{freelist: make([]*node[K], 0, size)}
}

// FreeList

func (f *FreeList[K]) newNode(key K) (n *node[K]) {
	f.mu.Lock()
	index := len(f.freelist) - 1
	if index < 0 {
		f.mu.Unlock()
		return &node[K]{key: key}
	}
	n = f.freelist[index]
	f.freelist[index] = nil
	f.freelist = f.freelist[:index]
	f.mu.Unlock()
	n.key = key
	return
}

// freeNode clears n and pools it if there is room.
func (f *FreeList[K]) freeNode(n *node[K]) freeType {
	var zero K
	n.key = zero
	n.left, n.right = nil, nil
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.freelist) < cap(f.freelist) {
		f.freelist = append(f.freelist, n)
		return ftStored
	}
	return ftFreelistFull
}

// Len reports how many nodes are waiting for reuse.
func (f *FreeList[K]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.freelist)
}

func New[K constraints.Ordered]() *OrderedTree[K] {
	return NewWithFreeList(NewFreeList[K](DefaultFreeListSize))
}

// NewWithFreeList creates an empty tree that allocates and releases nodes through f.
func NewWithFreeList[K constraints.Ordered](f *FreeList[K]) *OrderedTree[K] {
	if f == nil {
		panic("nil freelist")
	}
	return &OrderedTree[K]{freelist: f}
}

// node

// insert places key below n and returns the new subtree root.
// Equal keys stop the descent without touching the tree.
func (n *node[K]) insert(key K, f *FreeList[K]) (*node[K], bool) {
	if n == nil {
		return f.newNode(key), true
	}
	var added bool
	switch c := compare(key, n.key); {
	case c < 0:
		n.left, added = n.left.insert(key, f)
	case c > 0:
		n.right, added = n.right.insert(key, f)
	}
	return n, added
}

func (n *node[K]) search(key K) bool {
	return n.find(key) != nil
}

func (n *node[K]) find(key K) *node[K] {
	for n != nil {
		switch c := compare(key, n.key); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// remove deletes key from the subtree rooted at n and returns the subtree's new root.
// A node with two children takes its inorder successor's key and the successor,
// which has no left child, is spliced out of the right subtree instead.
func (n *node[K]) remove(key K, f *FreeList[K]) (*node[K], bool) {
	if n == nil {
		return nil, false
	}
	var removed bool
	switch c := compare(key, n.key); {
	case c < 0:
		n.left, removed = n.left.remove(key, f)
		return n, removed
	case c > 0:
		n.right, removed = n.right.remove(key, f)
		return n, removed
	}
	if n.left == nil {
		child := n.right
		f.freeNode(n)
		return child, true
	}
	if n.right == nil {
		child := n.left
		f.freeNode(n)
		return child, true
	}
	n.key = min(n.right).key
	n.right, removed = n.right.remove(n.key, f)
	return n, removed
}

// compare orders keys totally: a NaN equals itself and sorts below every other key.
func compare[K constraints.Ordered](a, b K) int {
	aNaN, bNaN := a != a, b != b
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case a < b:
		return -1
	case b < a:
		return 1
	}
	return 0
}

// min returns the leftmost node of the subtree.
func min[K constraints.Ordered](n *node[K]) *node[K] {
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n
}

// max returns the rightmost node of the subtree.
func max[K constraints.Ordered](n *node[K]) *node[K] {
	if n == nil {
		return nil
	}
	for n.right != nil {
		n = n.right
	}
	return n
}

func (n *node[K]) height() int {
	if n == nil {
		return 0
	}
	lh := n.left.height()
	rh := n.right.height()
	if lh > rh {
		return 1 + lh
	}
	return 1 + rh
}

func (n *node[K]) count() int {
	if n == nil {
		return 0
	}
	return 1 + n.left.count() + n.right.count()
}

// walk visits the subtree in the given order. It returns false once iter has asked to stop.
func (n *node[K]) walk(order Order, iter KeyIterator[K]) bool {
	if n == nil {
		return true
	}
	if order == PreOrder && !iter(n.key) {
		return false
	}
	if !n.left.walk(order, iter) {
		return false
	}
	if order == InOrder && !iter(n.key) {
		return false
	}
	if !n.right.walk(order, iter) {
		return false
	}
	if order == PostOrder && !iter(n.key) {
		return false
	}
	return true
}

// reset releases the subtree left, right, then n. It reports how many nodes were released.
func (n *node[K]) reset(f *FreeList[K]) int {
	if n == nil {
		return 0
	}
	released := n.left.reset(f) + n.right.reset(f)
	f.freeNode(n)
	return released + 1
}

// Used for testing/debugging.
func (n *node[K]) print(w io.Writer, level int) {
	if n == nil {
		return
	}
	fmt.Fprintf(w, "%sNODE:%v\n", strings.Repeat("  ", level), n.key)
	n.left.print(w, level+1)
	n.right.print(w, level+1)
}

// OrderedTree

func (t *OrderedTree[K]) nodes() *FreeList[K] {
	if t.freelist == nil {
		t.freelist = NewFreeList[K](DefaultFreeListSize)
	}
	return t.freelist
}

// Insert adds key to the tree. It returns false, leaving the tree untouched,
// when the key is already present.
func (t *OrderedTree[K]) Insert(key K) bool {
	var added bool
	t.root, added = t.root.insert(key, t.nodes())
	if added {
		t.length++
	}
	return added
}

// Search reports whether key is in the tree.
func (t *OrderedTree[K]) Search(key K) bool {
	return t.root.search(key)
}

// Remove deletes key from the tree. Removing an absent key is a no-op that returns false.
func (t *OrderedTree[K]) Remove(key K) bool {
	var removed bool
	t.root, removed = t.root.remove(key, t.nodes())
	if removed {
		t.length--
	}
	return removed
}

// Children reports how many children the node holding key has, or false if key is absent.
func (t *OrderedTree[K]) Children(key K) (int, bool) {
	n := t.root.find(key)
	if n == nil {
		return 0, false
	}
	c := 0
	if n.left != nil {
		c++
	}
	if n.right != nil {
		c++
	}
	return c, true
}

// Height counts the nodes on the longest root-to-leaf path: 0 when empty, 1 for a lone root.
func (t *OrderedTree[K]) Height() int {
	return t.root.height()
}

// Count walks the tree and returns its number of nodes.
func (t *OrderedTree[K]) Count() int {
	return t.root.count()
}

// Len returns the number of keys without walking the tree.
func (t *OrderedTree[K]) Len() int {
	return t.length
}

func (t *OrderedTree[K]) IsEmpty() bool {
	return t.root == nil
}

// Min returns the smallest key, or false if the tree is empty.
func (t *OrderedTree[K]) Min() (K, bool) {
	if n := min(t.root); n != nil {
		return n.key, true
	}
	var zero K
	return zero, false
}

// Max returns the largest key, or false if the tree is empty.
func (t *OrderedTree[K]) Max() (K, bool) {
	if n := max(t.root); n != nil {
		return n.key, true
	}
	var zero K
	return zero, false
}

// Walk calls iter for every key in the given depth-first order until iter returns false.
// order must be PreOrder, InOrder or PostOrder.
func (t *OrderedTree[K]) Walk(order Order, iter KeyIterator[K]) {
	if order < PreOrder || order > PostOrder {
		panic("invalid order")
	}
	t.root.walk(order, iter)
}

// Ascend calls iter for every key in ascending order until iter returns false.
func (t *OrderedTree[K]) Ascend(iter KeyIterator[K]) {
	t.Walk(InOrder, iter)
}

func (t *OrderedTree[K]) collect(order Order) []K {
	keys := make([]K, 0, t.length)
	t.Walk(order, func(key K) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// InOrder returns the keys in ascending order.
func (t *OrderedTree[K]) InOrder() []K {
	return t.collect(InOrder)
}

func (t *OrderedTree[K]) PreOrder() []K {
	return t.collect(PreOrder)
}

func (t *OrderedTree[K]) PostOrder() []K {
	return t.collect(PostOrder)
}

// LevelOrder returns the keys grouped by depth, each level left to right.
func (t *OrderedTree[K]) LevelOrder() [][]K {
	var levels [][]K
	if t.root == nil {
		return levels
	}
	q := queue.New()
	q.PushBack(t.root)
	for q.Len() > 0 {
		width := q.Len()
		level := make([]K, 0, width)
		for i := 0; i < width; i++ {
			n := q.PopFront().(*node[K])
			level = append(level, n.key)
			if n.left != nil {
				q.PushBack(n.left)
			}
			if n.right != nil {
				q.PushBack(n.right)
			}
		}
		levels = append(levels, level)
	}
	return levels
}

// Clear removes every key from the tree. If addNodesToFreelist is true every
// node is released in post-order, left subtree, right subtree, then the node,
// and pooled on the freelist until it is full. Otherwise the root is simply
// dropped and the nodes are left to the GC.
func (t *OrderedTree[K]) Clear(addNodesToFreelist bool) {
	if addNodesToFreelist {
		t.root.reset(t.nodes())
	}
	t.root, t.length = nil, 0
}

// Print writes one line per node in preorder, indented by depth.
func (t *OrderedTree[K]) Print(w io.Writer) {
	t.root.print(w, 0)
}

func (t *OrderedTree[K]) String() string {
	return fmt.Sprint(t.InOrder())
}
