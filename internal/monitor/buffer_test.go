package monitor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(name string) LogRecord {
	return LogRecord{Time: name, Severity: SeverityLow, Source: name}
}

func recs(names ...string) []LogRecord {
	out := make([]LogRecord, len(names))
	for i, n := range names {
		out[i] = rec(n)
	}
	return out
}

func TestBuffer_ReplaceKeepsTail(t *testing.T) {
	b := NewBuffer[LogRecord](3)

	b.Replace(recs("a", "b", "c", "d", "e"))
	items, version := b.Snapshot()
	assert.Equal(t, recs("c", "d", "e"), items)
	assert.Equal(t, uint64(1), version)

	b.Replace(nil)
	items, version = b.Snapshot()
	assert.Empty(t, items)
	assert.Equal(t, uint64(2), version)
}

func TestBuffer_CapInvariant(t *testing.T) {
	tests := []struct {
		name  string
		cap   int
		input int
		want  int
	}{
		{"empty", 5, 0, 0},
		{"below cap", 5, 3, 3},
		{"at cap", 5, 5, 5},
		{"above cap", 5, 12, 5},
		{"cap one", 1, 7, 1},
		{"default cap", DefaultLogCapacity, 250, DefaultLogCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer[int](tt.cap)
			input := make([]int, tt.input)
			for i := range input {
				input[i] = i
			}

			b.Replace(input)
			items, _ := b.Snapshot()

			require.Len(t, items, tt.want)
			assert.LessOrEqual(t, len(items), b.Cap())
			if tt.want > 0 {
				assert.Equal(t, input[len(input)-tt.want:], items)
			}
		})
	}
}

func TestBuffer_VersionIncrementsOnEveryReplace(t *testing.T) {
	b := NewBuffer[int](2)
	for i := 1; i <= 5; i++ {
		b.Replace([]int{i})
		assert.Equal(t, uint64(i), b.Version())
	}
}

func TestBuffer_SnapshotIsCopy(t *testing.T) {
	b := NewBuffer[int](3)
	input := []int{1, 2, 3}
	b.Replace(input)

	input[0] = 99
	items, _ := b.Snapshot()
	items[1] = 42

	again, _ := b.Snapshot()
	assert.Equal(t, []int{1, 2, 3}, again)
}

func TestBuffer_Push(t *testing.T) {
	b := NewBuffer[int](3)
	for i := 1; i <= 5; i++ {
		b.Push(i)
	}

	items, version := b.Snapshot()
	assert.Equal(t, []int{3, 4, 5}, items)
	assert.Equal(t, uint64(5), version)
}

func TestBuffer_Clear(t *testing.T) {
	b := NewBuffer[int](3)
	b.Replace([]int{1, 2})
	b.Clear()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, uint64(2), b.Version())
}

func TestNewBuffer_PanicsOnInvalidCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		t.Run(fmt.Sprint(c), func(t *testing.T) {
			assert.Panics(t, func() { NewBuffer[int](c) })
		})
	}
}
