package loader_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"insights_api/internal/insights"
	"insights_api/internal/loader"

	"github.com/stretchr/testify/require"
)

func writeTempSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jsondata.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeTempSource(t, `[
		{"end_year": "", "intensity": 6, "impact": 1.25, "topic": "gas", "unknown": {"a": 1}},
		{"intensity": 3, "title": "Ölpreis"}
	]`)

	records, err := loader.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Equal(t, "", records[0]["end_year"])
	require.Equal(t, json.Number("6"), records[0]["intensity"])
	require.Equal(t, json.Number("1.25"), records[0]["impact"])
	require.Equal(t, map[string]any{"a": json.Number("1")}, records[0]["unknown"])
	require.Equal(t, "Ölpreis", records[1]["title"])
}

func TestLoadFile_EmptyArray(t *testing.T) {
	records, err := loader.LoadFile(writeTempSource(t, "\xef\xbb\xbf[]\n"))
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := loader.LoadFile("/nonexistent/jsondata.json")
	require.Error(t, err)
	require.Equal(t, insights.KindSourceUnavailable, insights.KindOf(err))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile_Malformed(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "invalid json", content: `[{"a": }]`},
		{name: "object at top level", content: `{"a": 1}`},
		{name: "null at top level", content: `null`},
		{name: "array of scalars", content: `[1, 2]`},
		{name: "null element", content: `[{"a": 1}, null]`},
		{name: "trailing data", content: `[] []`},
		{name: "empty file", content: ``},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loader.LoadFile(writeTempSource(t, tc.content))
			require.Error(t, err)
			require.Equal(t, insights.KindSourceMalformed, insights.KindOf(err))
			require.NotEmpty(t, err.Error())
		})
	}
}
