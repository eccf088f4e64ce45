package eviction_test

import (
	"sort"
	"testing"

	"github.com/buildbarn/bb-replacer/pkg/eviction"
	"github.com/buildbarn/bb-replacer/pkg/random"
	"github.com/stretchr/testify/require"
)

func TestRRSetExample(t *testing.T) {
	set := eviction.NewRRSet[string](random.NewFastSingleThreadedGenerator())

	// Insert a set of words.
	words := []string{
		"abele", "furfuraceous", "narial", "rugine",
		"terrazzo", "ultrafidian", "unicity", "xesturgy",
	}
	for _, word := range words {
		set.Insert(word)
	}

	// Touch some of them. This should have no effect, as Random
	// Replacement does not respect any order.
	set.Touch("furfuraceous")
	set.Touch("unicity")

	// Remove all of the words from the set. They should be returned
	// in an arbitrary order. Test that only peeking at them doesn't
	// remove them.
	extractedWords := make([]string, 0, len(words))
	for i := 0; i < len(words); i++ {
		word := set.Peek()
		require.Equal(t, word, set.Peek())
		extractedWords = append(extractedWords, word)
		set.Remove()
	}
	sort.Strings(extractedWords)
	require.Equal(t, words, extractedWords)
}

func TestRRSetDelete(t *testing.T) {
	set := eviction.NewRRSet[int](random.NewSeededSingleThreadedGenerator(7))
	for i := 0; i < 10; i++ {
		set.Insert(i)
	}
	set.Delete(4)
	set.Delete(9)
	require.Equal(t, 8, set.Len())

	var extracted []int
	for set.Len() > 0 {
		extracted = append(extracted, set.Peek())
		set.Remove()
	}
	sort.Ints(extracted)
	require.Equal(t, []int{0, 1, 2, 3, 5, 6, 7, 8}, extracted)

	require.Panics(t, func() { set.Delete(4) })
}
