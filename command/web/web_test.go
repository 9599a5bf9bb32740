package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeReportRows(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	body := "kind,start,end,ref,title,link\ngroup,2024-01-05T09:00:00Z,,bugfix/abc-7,Fix ABC-7 flow,https://github.com/acme/widgets/pull/42\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report_rows.csv"), []byte(body), 0o644))

	e := newServer(dir)
	req := httptest.NewRequest(http.MethodGet, "/api/report/rows", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var rows []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "group", rows[0]["kind"])
	assert.Equal(t, "Fix ABC-7 flow", rows[0]["title"])
}

func TestServeMissingCSV(t *testing.T) {
	t.Parallel()
	e := newServer(t.TempDir())
	req := httptest.NewRequest(http.MethodGet, "/api/report/summary", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "file not found")
}

func TestReadCSV_EmptyFile(t *testing.T) {
	t.Parallel()
	p := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(p, nil, 0o644))
	rows, err := readCSV(p)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
