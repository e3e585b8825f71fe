package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:05")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 9, Minute: 5}, tod)
	assert.Equal(t, "09:05", tod.String())

	for _, bad := range []string{"9am", "25:00", "", "09:60"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-02-03")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2025, Month: time.February, Day: 3}, d)

	_, err = ParseDate("02/03/2025")
	assert.Error(t, err)
}

func TestTimeWindowContainsHalfOpen(t *testing.T) {
	w := window(9, 0, 12, 0)
	assert.True(t, w.Contains(TimeOfDay{Hour: 9}))
	assert.True(t, w.Contains(TimeOfDay{Hour: 11, Minute: 59}))
	assert.False(t, w.Contains(TimeOfDay{Hour: 12}))
	assert.False(t, w.Contains(TimeOfDay{Hour: 8, Minute: 59}))
}

func TestDateNextRollsOverMonth(t *testing.T) {
	d := Date{Year: 2025, Month: time.February, Day: 28}
	assert.Equal(t, Date{Year: 2025, Month: time.March, Day: 1}, d.next())

	leap := Date{Year: 2024, Month: time.February, Day: 28}
	assert.Equal(t, Date{Year: 2024, Month: time.February, Day: 29}, leap.next())
}

func TestDateAfter(t *testing.T) {
	a := Date{Year: 2025, Month: time.February, Day: 3}
	b := Date{Year: 2025, Month: time.February, Day: 10}
	assert.True(t, b.after(a))
	assert.False(t, a.after(b))
	assert.False(t, a.after(a))
}
