/* slots_test.go
 * Contains unit tests for the slot layout in slots.go
 */

package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRoundOf_Boundaries checks the first and last slot of every round
func TestRoundOf_Boundaries(t *testing.T) {
	cases := []struct {
		slot   int
		round  Round
		weight int
	}{
		{0, RoundOf64, 1},
		{31, RoundOf64, 1},
		{32, RoundOf32, 2},
		{47, RoundOf32, 2},
		{48, SweetSixteen, 4},
		{55, SweetSixteen, 4},
		{56, EliteEight, 8},
		{59, EliteEight, 8},
		{60, FinalFour, 16},
		{61, FinalFour, 16},
		{62, Championship, 32},
	}
	for _, tc := range cases {
		r, err := RoundOf(tc.slot)
		require.NoError(t, err)
		assert.Equal(t, tc.round, r, "slot %d", tc.slot)
		assert.Equal(t, tc.weight, WeightOf(tc.slot), "slot %d", tc.slot)
	}
}

func TestRoundOf_OutOfRange(t *testing.T) {
	_, err := RoundOf(-1)
	assert.Error(t, err)
	_, err = RoundOf(NumSlots)
	assert.Error(t, err)
	assert.Equal(t, 0, WeightOf(63))
}

// TestRounds_CoverEverySlotOnce checks the ranges are contiguous, disjoint and each round is worth 32 points
func TestRounds_CoverEverySlotOnce(t *testing.T) {
	covered := make(map[int]Round)
	next := 0
	total := 0
	for _, r := range Rounds() {
		assert.Equal(t, next, r.Offset(), "%s should start where the previous round ended", r)
		for slot := r.Offset(); slot < r.Offset()+r.Games(); slot++ {
			_, dup := covered[slot]
			assert.False(t, dup, "slot %d covered twice", slot)
			covered[slot] = r
		}
		next = r.Offset() + r.Games()
		assert.Equal(t, 32, r.Games()*r.Weight(), "%s", r)
		total += r.Games() * r.Weight()
	}
	assert.Len(t, covered, NumSlots)
	assert.Equal(t, MaxScore, total)

	sum := 0
	for slot := 0; slot < NumSlots; slot++ {
		sum += WeightOf(slot)
	}
	assert.Equal(t, MaxScore, sum)
}

func TestSlotIndex(t *testing.T) {
	cases := []struct {
		round Round
		game  int
		want  int
	}{
		{RoundOf64, 1, 0},
		{RoundOf64, 32, 31},
		{RoundOf32, 1, 32},
		{RoundOf32, 16, 47},
		{SweetSixteen, 1, 48},
		{EliteEight, 4, 59},
		{FinalFour, 2, 61},
		{Championship, 1, 62},
	}
	for _, tc := range cases {
		got, err := SlotIndex(tc.round, tc.game)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s game %d", tc.round, tc.game)
	}
}

func TestSlotIndex_Invalid(t *testing.T) {
	_, err := SlotIndex(RoundOf64, 0)
	assert.Error(t, err)
	_, err = SlotIndex(RoundOf32, 17)
	assert.Error(t, err)
	_, err = SlotIndex(Round(7), 1)
	assert.Error(t, err)
}

func TestNextSlotAndFeeders(t *testing.T) {
	assert.Equal(t, 32, NextSlot(0))
	assert.Equal(t, 32, NextSlot(1))
	assert.Equal(t, 47, NextSlot(31))
	assert.Equal(t, 48, NextSlot(32))
	assert.Equal(t, 56, NextSlot(49))
	assert.Equal(t, 60, NextSlot(57))
	assert.Equal(t, 62, NextSlot(61))
	assert.Equal(t, -1, NextSlot(62))

	_, _, ok := FeederSlots(10)
	assert.False(t, ok)

	// every feeder pair must lead back to the slot
	for slot := 32; slot < NumSlots; slot++ {
		a, b, ok := FeederSlots(slot)
		require.True(t, ok)
		assert.Equal(t, slot, NextSlot(a))
		assert.Equal(t, slot, NextSlot(b))
	}
}

func TestRoundString(t *testing.T) {
	assert.Equal(t, "Sweet 16", SweetSixteen.String())
	assert.Equal(t, "Round(9)", Round(9).String())
}
