package calendar

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `name: US 2026
holidays:
  - date: 2026-01-01
    name: New Year's Day
  - date: 2026-07-03
  - date: 2026-12-25
    name: Christmas Day
`

func TestParse(t *testing.T) {
	cal, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "US 2026", cal.Name)
	require.Len(t, cal.Holidays, 3)
	assert.Equal(t, "New Year's Day", cal.Holidays[0].Name)
	assert.Empty(t, cal.Holidays[1].Name)
	assert.True(t, cal.Holidays[2].Date.Equal(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)))
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("holidays: [what"))
	assert.Error(t, err)

	_, err = Parse([]byte("holidays:\n  - date: tomorrow\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0644))

	cal, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cal.Holidays, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDateSet(t *testing.T) {
	cal, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	set := cal.DateSet()
	assert.True(t, set["2026-01-01"])
	assert.True(t, set["2026-07-03"])
	assert.False(t, set["2026-07-04"])

	var nilCal *Calendar
	assert.Nil(t, nilCal.DateSet())
}
