package furnace

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStateSeed(t *testing.T) {
	assert.Equal(t, State{Number: 3}, NewState(3))
	assert.Equal(t, State{Number: 9}, NewState(9))
	assert.Equal(t, State{Number: 1}, NewState(0))
	assert.Equal(t, State{Number: 1}, NewState(12))
	assert.Equal(t, State{Number: 1}, NewState(-4))
}

func TestStepTransitions(t *testing.T) {
	tests := []struct {
		counter int
		blank   bool
		want    int
		bump    bool
	}{
		{0, false, 1, false},
		{0, true, 0, false},
		{1, true, 2, false},
		{1, false, 1, false},
		{2, false, 3, false},
		{2, true, 1, false},
		{3, true, 0, true},
		{3, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("counter=%d blank=%v", tt.counter, tt.blank), func(t *testing.T) {
			next := State{Counter: tt.counter, Number: 4}.Step(tt.blank)
			assert.Equal(t, tt.want, next.Counter)
			if tt.bump {
				assert.Equal(t, 5, next.Number)
			} else {
				assert.Equal(t, 4, next.Number)
			}
		})
	}
}

func TestStepWrapsAfterNine(t *testing.T) {
	s := State{Counter: 3, Number: 9}.Step(true)
	assert.Equal(t, State{Counter: 0, Number: 1}, s)
}

func TestRelabelBlockBoundary(t *testing.T) {
	in := []string{"F2", "F2", "", "F2", "", "F2", "F2", "  ", "F2"}

	out, s := Relabel(in, 2)

	assert.Equal(t, []string{"F2", "F2", "", "F2", "", "F3", "F3", "  ", "F3"}, out)
	assert.Equal(t, State{Counter: 3, Number: 3}, s)
}

func TestRelabelWraparound(t *testing.T) {
	block := []string{"x", "x", "", "x", ""}
	for n := 1; n <= 20; n++ {
		var in []string
		for i := 0; i < n; i++ {
			in = append(in, block...)
		}

		_, s := Relabel(in, 9)

		assert.Equal(t, ((9-1+n)%9)+1, s.Number, "blocks=%d", n)
		assert.GreaterOrEqual(t, s.Number, 1)
		assert.LessOrEqual(t, s.Number, MaxNumber)
	}
}

func TestRelabelIdempotent(t *testing.T) {
	in := []string{"F5", "F5", "F5", "F5", "F5", "F5"}

	once, _ := Relabel(in, 5)
	twice, _ := Relabel(once, 5)

	assert.Equal(t, in, once)
	assert.Equal(t, once, twice)
}

func TestRelabelIncrementSkipsTriggeringRow(t *testing.T) {
	out, _ := Relabel([]string{"a", "a", "", "a", "", "a"}, 1)
	assert.Equal(t, []string{"F1", "F1", "", "F1", "", "F2"}, out)
}
