package tracker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	return New(filepath.Join(t.TempDir(), ".current"))
}

func TestSetAndLoad(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.Set("1.2.3", 42))

	current, err := tr.Load()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", current.FeatureID)
	assert.Equal(t, 42, current.Issue)
}

func TestLoadMissing(t *testing.T) {
	tr := newTestTracker(t)

	_, err := tr.Load()
	assert.ErrorIs(t, err, ErrNoCurrent)
}

func TestLoadMalformed(t *testing.T) {
	cases := []string{
		"garbage",
		"1.2.3:",
		"1.2.3:not-a-number",
		":17",
		"",
	}
	for _, content := range cases {
		path := filepath.Join(t.TempDir(), ".current")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := New(path).Load()
		assert.ErrorIs(t, err, ErrNoCurrent, "content: %q", content)
	}
}

func TestLoadTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".current")
	require.NoError(t, os.WriteFile(path, []byte("2.1.1:7\n"), 0o644))

	current, err := New(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "2.1.1", current.FeatureID)
	assert.Equal(t, 7, current.Issue)
}

func TestSetOverwrites(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.Set("1.1.1", 1))
	require.NoError(t, tr.Set("2.2.2", 2))

	current, err := tr.Load()
	require.NoError(t, err)
	assert.Equal(t, "2.2.2", current.FeatureID)
	assert.Equal(t, 2, current.Issue)
}

func TestClearIsIdempotent(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.Set("1.1.1", 1))
	require.NoError(t, tr.Clear())
	require.NoError(t, tr.Clear())

	_, err := tr.Load()
	assert.ErrorIs(t, err, ErrNoCurrent)
}

func TestFeatureIDMayContainDots(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.Set("R.1.2", 99))

	current, err := tr.Load()
	require.NoError(t, err)
	assert.Equal(t, "R.1.2", current.FeatureID)
	assert.Equal(t, 99, current.Issue)
}
