package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformSlice(t *testing.T) {
	out := TransformSlice([]int{1, 2, 3}, func(n int) int { return n * 2 })
	assert.Equal(t, []int{2, 4, 6}, out)
}

func TestCanonicalMapIterYieldsSortedKeys(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1, "c": 3}
	var keys []string
	for k := range CanonicalMapIter(m) {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestCanonicalMapIterStopsEarly(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2, "c": 3}
	var seen []string
	for k := range CanonicalMapIter(m) {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}
