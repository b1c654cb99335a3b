package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"a": 1}
	b := map[string]int{"b": 2, "a": 3}

	got := map[string]int{}
	count := 0
	for k, v := range IterSeq2Concat(maps.All(a), maps.All(b)) {
		got[k] = v
		count++
	}

	assert.Equal(3, count)
	assert.Equal(map[string]int{"a": 3, "b": 2}, got)
}

func TestIterSeq2Concat_Stop(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"a": 1, "b": 2, "c": 3}

	count := 0
	for range IterSeq2Concat(maps.All(a), maps.All(a)) {
		count++
		if count == 2 {
			break
		}
	}

	assert.Equal(2, count)
}
