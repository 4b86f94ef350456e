package trie

import (
	"testing"
)

func TestSetGet(t *testing.T) {
	tr := New[int]()
	keys := []string{"m", "mol", "mo", "min", "[in_i]", "B[10.nV]"}
	for i, k := range keys {
		if tr.Set(k, i) {
			t.Fatalf("key %q: unexpected replace", k)
		}
	}
	if !tr.Set("mo", 10) {
		t.Fatalf("expecting replace of \"mo\"")
	}
	if tr.Len() != len(keys) {
		t.Fatalf("expecting %d keys, got %d", len(keys), tr.Len())
	}

	for i, k := range keys {
		expected := i
		if k == "mo" {
			expected = 10
		}
		v, has := tr.Get(k)
		if !has || v != expected {
			t.Fatalf("key %q: expecting %d, got %d (%v)", k, expected, v, has)
		}
	}

	for _, k := range []string{"", "mi", "moll", "[in_", "x"} {
		if _, has := tr.Get(k); has {
			t.Fatalf("unexpected key %q", k)
		}
	}
}

func TestLongest(t *testing.T) {
	tr := New[string]()
	for _, k := range []string{"m", "mo", "mol", "10*", "'", "''"} {
		tr.Set(k, k)
	}

	samples := []struct {
		src      string
		expected string
	}{
		{"mol/s", "mol"},
		{"mo_g", "mo"},
		{"ms", "m"},
		{"10*3", "10*"},
		{"10", ""},
		{"''", "''"},
		{"'/s", "'"},
		{"s", ""},
		{"", ""},
	}

	for _, s := range samples {
		l, v := tr.Longest(s.src)
		if l != len(s.expected) || v != s.expected {
			t.Fatalf("source %q: expecting %q, got %q (%d)", s.src, s.expected, v, l)
		}
	}
}

func TestPrefixes(t *testing.T) {
	tr := New[int]()
	tr.Set("d", 1)
	tr.Set("da", 2)
	tr.Set("dar", 3)

	var lengths []int
	tr.Prefixes("darm", func(l, v int) bool {
		lengths = append(lengths, l)
		return v < 2
	})
	if len(lengths) != 2 || lengths[0] != 1 || lengths[1] != 2 {
		t.Fatalf("unexpected lengths %v", lengths)
	}
}
