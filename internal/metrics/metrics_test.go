package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRun_Success(t *testing.T) {
	r := NewRecorder()
	finished := time.Unix(1700000000, 0)

	r.ObserveRun(finished, 3*time.Second, 12, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.runs.WithLabelValues(OutcomeFailure)))
	assert.Equal(t, 12.0, testutil.ToFloat64(r.files))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(r.lastSuccess))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(r.lastRun))
}

// TestObserveRun_Failure checks that a failed run leaves the success
// gauges untouched.
func TestObserveRun_Failure(t *testing.T) {
	r := NewRecorder()
	r.ObserveRun(time.Unix(100, 0), time.Second, 5, nil)
	r.ObserveRun(time.Unix(200, 0), time.Second, 0, errors.New("clone failed"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues(OutcomeFailure)))
	assert.Equal(t, 5.0, testutil.ToFloat64(r.files))
	assert.Equal(t, 100.0, testutil.ToFloat64(r.lastSuccess))
	assert.Equal(t, 200.0, testutil.ToFloat64(r.lastRun))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.ObserveRun(time.Unix(1700000000, 0), 2*time.Second, 3, nil)

	path := filepath.Join(t.TempDir(), "textfile", "docsync.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `docsync_runs_total{outcome="success"} 1`)
	assert.Contains(t, out, "docsync_files 3")
	assert.Contains(t, out, "docsync_run_duration_seconds_count 1")

	count, err := testutil.GatherAndCount(r.Registry(), "docsync_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	err = testutil.GatherAndCompare(r.Registry(), strings.NewReader(`
# HELP docsync_files Files present in the target directory after the last successful run
# TYPE docsync_files gauge
docsync_files 3
`), "docsync_files")
	assert.NoError(t, err)
}
