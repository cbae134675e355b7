package profiling

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestTrackAccumulates sums durations and counts per name until reset.
func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	for range 3 {
		stop := Track("test.op")
		time.Sleep(time.Millisecond)
		stop()
	}
	snap := Snapshot()
	assert.GreaterOrEqual(t, snap["test.op"], 3*time.Millisecond)
	assert.Equal(t, 3, Count("test.op"))

	ResetFrame()
	assert.Empty(t, Snapshot())
	assert.Equal(t, 0, Count("test.op"))
}

// TestTopN lists the slowest entries first.
func TestTopN(t *testing.T) {
	ResetFrame()
	stop := Track("slow")
	time.Sleep(3 * time.Millisecond)
	stop()
	Track("fast")()

	top := TopN(1)
	assert.True(t, strings.HasPrefix(top, "slow:"), top)
	assert.True(t, strings.HasSuffix(top, "ms"), top)
	assert.Len(t, strings.Split(TopN(10), ", "), 2)
	ResetFrame()
}
