package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Turf-BookingService/pkg/types"
)

func window(open, close string, duration int) OperatingWindow {
	return OperatingWindow{
		OpenTime:            types.MustTimeString(open),
		CloseTime:           types.MustTimeString(close),
		SlotDurationMinutes: duration,
	}
}

func TestPartitionWindow(t *testing.T) {
	t.Run("hour slots over a full day", func(t *testing.T) {
		slots := PartitionWindow(window("06:00", "22:00", 60))

		require.Len(t, slots, 16)
		assert.Equal(t, SlotLabel("06:00 - 07:00"), slots[0])
		assert.Equal(t, SlotLabel("21:00 - 22:00"), slots[15])

		// Slots are contiguous and ordered
		for i := 1; i < len(slots); i++ {
			prevEnd, err := slots[i-1].EndTime()
			require.NoError(t, err)
			start, err := slots[i].StartTime()
			require.NoError(t, err)
			assert.Equal(t, prevEnd, start)
		}
	})

	t.Run("trailing partial slot is dropped", func(t *testing.T) {
		// 10:00-11:30 with 60-minute slots: only 10:00-11:00 fits
		slots := PartitionWindow(window("10:00", "11:30", 60))

		require.Len(t, slots, 1)
		assert.Equal(t, SlotLabel("10:00 - 11:00"), slots[0])
	})

	t.Run("window shorter than one slot", func(t *testing.T) {
		slots := PartitionWindow(window("10:00", "10:30", 60))
		assert.Empty(t, slots)
	})

	t.Run("inverted window yields empty sequence", func(t *testing.T) {
		slots := PartitionWindow(window("22:00", "06:00", 60))
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
	})

	t.Run("equal open and close yields empty sequence", func(t *testing.T) {
		slots := PartitionWindow(window("10:00", "10:00", 60))
		assert.Empty(t, slots)
	})

	t.Run("non-positive duration yields empty sequence", func(t *testing.T) {
		assert.Empty(t, PartitionWindow(window("06:00", "22:00", 0)))
		assert.Empty(t, PartitionWindow(window("06:00", "22:00", -30)))
	})

	t.Run("ninety minute slots", func(t *testing.T) {
		slots := PartitionWindow(window("06:00", "12:00", 90))

		require.Len(t, slots, 4)
		assert.Equal(t, SlotLabel("06:00 - 07:30"), slots[0])
		assert.Equal(t, SlotLabel("10:30 - 12:00"), slots[3])
	})

	t.Run("deterministic for the same window", func(t *testing.T) {
		first := PartitionWindow(window("06:00", "22:00", 60))
		second := PartitionWindow(window("06:00", "22:00", 60))
		assert.Equal(t, first, second)
	})
}

func TestResolveRate(t *testing.T) {
	tiers := []PricingTier{
		{StartTime: "06:00", EndTime: "12:00", Rate: 500},
		{StartTime: "12:00", EndTime: "18:00", Rate: 800},
	}

	t.Run("slot start inside a tier", func(t *testing.T) {
		rate := ResolveRate(types.MustTimeString("06:00"), tiers)
		require.NotNil(t, rate)
		assert.Equal(t, 500.0, *rate)
	})

	t.Run("tier range is half open", func(t *testing.T) {
		// 12:00 is excluded from the first tier and included in the second
		rate := ResolveRate(types.MustTimeString("12:00"), tiers)
		require.NotNil(t, rate)
		assert.Equal(t, 800.0, *rate)
	})

	t.Run("uncovered slot has no price", func(t *testing.T) {
		assert.Nil(t, ResolveRate(types.MustTimeString("18:00"), tiers))
		assert.Nil(t, ResolveRate(types.MustTimeString("05:00"), tiers))
	})

	t.Run("overlapping tiers resolve first match", func(t *testing.T) {
		overlapping := []PricingTier{
			{StartTime: "06:00", EndTime: "12:00", Rate: 500},
			{StartTime: "10:00", EndTime: "14:00", Rate: 900},
		}

		rate := ResolveRate(types.MustTimeString("11:00"), overlapping)
		require.NotNil(t, rate)
		assert.Equal(t, 500.0, *rate)
	})

	t.Run("empty tiers", func(t *testing.T) {
		assert.Nil(t, ResolveRate(types.MustTimeString("10:00"), nil))
	})
}

func TestBuildAvailability(t *testing.T) {
	w := window("06:00", "10:00", 60) // 4 slots
	tiers := []PricingTier{
		{StartTime: "06:00", EndTime: "08:00", Rate: 500},
	}

	date := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC) // a different day

	t.Run("all slots free", func(t *testing.T) {
		a := BuildAvailability(w, tiers, true, nil, date, now)

		require.Len(t, a.AvailableSlots, 4)
		assert.Empty(t, a.BookedSlots)

		// Priced slots carry the tier rate, the rest have nil
		require.NotNil(t, a.AvailableSlots[0].Price)
		assert.Equal(t, 500.0, *a.AvailableSlots[0].Price)
		require.NotNil(t, a.AvailableSlots[1].Price)
		assert.Nil(t, a.AvailableSlots[2].Price)
		assert.Nil(t, a.AvailableSlots[3].Price)
	})

	t.Run("booked slot moves from available to booked", func(t *testing.T) {
		reserved := []SlotLabel{"07:00 - 08:00"}

		a := BuildAvailability(w, tiers, true, reserved, date, now)

		require.Len(t, a.AvailableSlots, 3)
		for _, slot := range a.AvailableSlots {
			assert.NotEqual(t, SlotLabel("07:00 - 08:00"), slot.Label)
		}
		assert.Equal(t, []SlotLabel{"07:00 - 08:00"}, a.BookedSlots)
	})

	t.Run("reserved label with stray whitespace still matches", func(t *testing.T) {
		reserved := []SlotLabel{" 07:00 - 08:00 "}

		a := BuildAvailability(w, tiers, true, reserved, date, now)

		require.Len(t, a.AvailableSlots, 3)
		assert.Equal(t, []SlotLabel{"07:00 - 08:00"}, a.BookedSlots)
	})

	t.Run("unavailable sport keeps booked slots visible", func(t *testing.T) {
		reserved := []SlotLabel{"07:00 - 08:00"}

		a := BuildAvailability(w, tiers, false, reserved, date, now)

		assert.Empty(t, a.AvailableSlots)
		assert.Equal(t, []SlotLabel{"07:00 - 08:00"}, a.BookedSlots)
	})

	t.Run("same day cuts off slots that already started", func(t *testing.T) {
		sameDayNow := time.Date(2026, 9, 20, 7, 0, 0, 0, time.UTC)

		a := BuildAvailability(w, tiers, true, nil, date, sameDayNow)

		// 06:00 and 07:00 have started, only 08:00 and 09:00 remain
		require.Len(t, a.AvailableSlots, 2)
		assert.Equal(t, SlotLabel("08:00 - 09:00"), a.AvailableSlots[0].Label)
		assert.Equal(t, SlotLabel("09:00 - 10:00"), a.AvailableSlots[1].Label)
	})

	t.Run("same day mid-slot cutoff is strict", func(t *testing.T) {
		// 07:59 keeps the 08:00 slot, 08:00 sharp drops it
		a := BuildAvailability(w, tiers, true, nil, date, time.Date(2026, 9, 20, 7, 59, 0, 0, time.UTC))
		require.Len(t, a.AvailableSlots, 2)

		a = BuildAvailability(w, tiers, true, nil, date, time.Date(2026, 9, 20, 8, 0, 0, 0, time.UTC))
		require.Len(t, a.AvailableSlots, 1)
		assert.Equal(t, SlotLabel("09:00 - 10:00"), a.AvailableSlots[0].Label)
	})

	t.Run("other day ignores the clock", func(t *testing.T) {
		lateNow := time.Date(2026, 9, 15, 23, 0, 0, 0, time.UTC)

		a := BuildAvailability(w, tiers, true, nil, date, lateNow)
		assert.Len(t, a.AvailableSlots, 4)
	})
}

func TestSlotLabel(t *testing.T) {
	label := NewSlotLabel(types.MustTimeString("10:00"), types.MustTimeString("11:00"))
	assert.Equal(t, SlotLabel("10:00 - 11:00"), label)

	start, err := label.StartTime()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), start)

	end, err := label.EndTime()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:00"), end)

	assert.Equal(t, SlotLabel("10:00 - 11:00"), SlotLabel("  10:00 - 11:00 ").Trimmed())

	_, err = SlotLabel("10:00").StartTime()
	assert.Error(t, err)

	_, err = SlotLabel("10:00 - garbage").EndTime()
	assert.Error(t, err)
}

func TestSameDay(t *testing.T) {
	d1 := time.Date(2026, 9, 20, 23, 59, 0, 0, time.UTC)
	d2 := time.Date(2026, 9, 20, 0, 1, 0, 0, time.UTC)
	d3 := time.Date(2026, 9, 21, 0, 1, 0, 0, time.UTC)

	assert.True(t, SameDay(d1, d2))
	assert.False(t, SameDay(d1, d3))
}

func TestDateInPast(t *testing.T) {
	now := time.Date(2026, 9, 20, 12, 0, 0, 0, time.UTC)

	assert.True(t, DateInPast(time.Date(2026, 9, 19, 0, 0, 0, 0, time.UTC), now))
	// Same day is not in the past even if the clock has passed midnight
	assert.False(t, DateInPast(time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, DateInPast(time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC), now))
}
