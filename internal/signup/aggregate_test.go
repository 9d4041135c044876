package signup

import (
	"strings"
	"testing"

	"github.com/actifly/api/internal/api"
	"github.com/actifly/api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	records := []api.SignupRecord{
		testutil.NewRecordBuilder().WithEmail("a@x.com").WithCategory("android").Build(),
		testutil.NewRecordBuilder().WithEmail("b@x.com").WithCategory("ios").Build(),
		testutil.NewRecordBuilder().WithEmail("c@x.com").WithCategory("android").Build(),
		testutil.NewRecordBuilder().WithEmail("d@x.com").WithCategory("google").Build(),
	}

	counts := Aggregate(records)
	assert.Equal(t, 4, counts.Total)
	assert.Equal(t, 2, counts.Android)
	assert.Equal(t, 1, counts.IOS)
	assert.Equal(t, 1, counts.Google)
}

func TestAggregate_Empty(t *testing.T) {
	counts := Aggregate(nil)
	assert.Equal(t, api.Counts{}, counts)
}

func TestAggregate_UnknownCategoryCountsTowardTotalOnly(t *testing.T) {
	records := []api.SignupRecord{
		testutil.NewRecordBuilder().WithCategory("legacy").Build(),
	}

	counts := Aggregate(records)
	assert.Equal(t, 1, counts.Total)
	assert.Zero(t, counts.Android)
	assert.Zero(t, counts.IOS)
	assert.Zero(t, counts.Google)
}

func TestDefaultQuota(t *testing.T) {
	quota := DefaultQuota()
	assert.Equal(t, 34, quota.Android)
	assert.Equal(t, 33, quota.IOS)
	assert.Equal(t, 33, quota.Google)
	assert.Equal(t, 100, quota.Total)
}

func TestWriteCSV(t *testing.T) {
	records := []api.SignupRecord{
		{
			Email:     "a@x.com",
			Category:  "android",
			Timestamp: "2026-02-01T09:30:00Z",
			Country:   "DE",
			UserAgent: "Mozilla/5.0",
		},
		{
			Email:     "b@x.com",
			Category:  "ios",
			Timestamp: "2026-02-01T09:31:00Z",
		},
	}

	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, records))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "email,category,ts,country,ua", lines[0])
	assert.Equal(t, "a@x.com,android,2026-02-01T09:30:00Z,DE,Mozilla/5.0", lines[1])
	assert.Equal(t, "b@x.com,ios,2026-02-01T09:31:00Z,,", lines[2])
}

func TestWriteCSV_QuotesSpecialCharacters(t *testing.T) {
	records := []api.SignupRecord{
		{
			Email:     "a@x.com",
			Category:  "android",
			Timestamp: "2026-02-01T09:30:00Z",
			Country:   `foo,"bar"`,
			UserAgent: "line\nbreak",
		},
	}

	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, records))

	out := buf.String()
	assert.Contains(t, out, `"foo,""bar"""`)
	assert.Contains(t, out, "\"line\nbreak\"")
}

func TestWriteCSV_HeaderOnlyWhenEmpty(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "email,category,ts,country,ua\n", buf.String())
}
