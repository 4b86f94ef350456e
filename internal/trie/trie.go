// Package trie implements byte trie with string keys used for longest-match lookups.
package trie

// Trie stores a fixed set of keys, keys cannot be deleted.
// Trie is not safe for concurrent modification, but concurrent lookups are safe once filled.
type Trie[T any] struct {
	root node[T]
	size int
}

type node[T any] struct {
	children map[byte]*node[T]
	value    T
	has      bool
}

// New creates empty trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{}
}

// Len returns number of stored keys.
func (t *Trie[T]) Len() int {
	return t.size
}

// Set adds or rewrites value for given key. Returns true if the key was already stored.
func (t *Trie[T]) Set(key string, value T) bool {
	n := &t.root
	for i := 0; i < len(key); i++ {
		if n.children == nil {
			n.children = make(map[byte]*node[T])
		}
		next := n.children[key[i]]
		if next == nil {
			next = &node[T]{}
			n.children[key[i]] = next
		}
		n = next
	}

	replaced := n.has
	n.value = value
	n.has = true
	if !replaced {
		t.size++
	}
	return replaced
}

// Get returns stored value by key and a flag telling whether this key is stored.
func (t *Trie[T]) Get(key string) (T, bool) {
	n := &t.root
	for i := 0; i < len(key) && n != nil; i++ {
		n = n.children[key[i]]
	}
	if n == nil || !n.has {
		var zero T
		return zero, false
	}
	return n.value, true
}

// Prefixes calls f for every stored non-empty key that is a prefix of s, shortest first.
// Stops when f returns false.
func (t *Trie[T]) Prefixes(s string, f func(length int, value T) bool) {
	n := &t.root
	for i := 0; i < len(s); i++ {
		n = n.children[s[i]]
		if n == nil {
			return
		}
		if n.has && !f(i+1, n.value) {
			return
		}
	}
}

// Longest returns length and value of the longest stored non-empty key that is a prefix of s.
// Returns 0 length if there is no such key.
func (t *Trie[T]) Longest(s string) (int, T) {
	length := 0
	var value T
	t.Prefixes(s, func(l int, v T) bool {
		length, value = l, v
		return true
	})
	return length, value
}
