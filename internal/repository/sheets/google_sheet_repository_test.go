package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/mamadbah2/foodtracker/internal/config"
)

func newTestRepository(t *testing.T, handler http.HandlerFunc) *GoogleSheetRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	repo, err := NewGoogleSheetRepository(context.Background(),
		config.SheetsConfig{SpreadsheetID: "sheet-1"}, nil,
		option.WithEndpoint(srv.URL+"/"), option.WithoutAuthentication(), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return repo
}

func TestAppendRow(t *testing.T) {
	var gotPath, gotBody string
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-1"}`))
	})

	err := repo.AppendRow(context.Background(), "Snapshots!A:F", []interface{}{"2024-06-03", 2})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(gotPath, "/spreadsheets/sheet-1/values/Snapshots!A:F:append"), gotPath)
	var payload struct {
		Values [][]interface{} `json:"values"`
	}
	require.NoError(t, json.Unmarshal([]byte(gotBody), &payload))
	require.Len(t, payload.Values, 1)
	assert.Equal(t, "2024-06-03", payload.Values[0][0])
}

func TestReadRange(t *testing.T) {
	var renderOption string
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		renderOption = r.URL.Query().Get("valueRenderOption")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"range":"Snapshots!A1:F3","values":[["date","items"],[],["2024-06-03",2,447600]]}`))
	})

	rows, err := repo.ReadRange(context.Background(), "Snapshots!A:F")
	require.NoError(t, err)

	assert.Equal(t, "UNFORMATTED_VALUE", renderOption)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-06-03", rows[1][0])
	assert.Equal(t, 447600.0, rows[1][2])
}

func TestReadRangeWrapsErrors(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":404,"message":"missing"}}`, http.StatusNotFound)
	})

	_, err := repo.ReadRange(context.Background(), "Snapshots!A:F")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load snapshots from Snapshots!A:F")
}

func TestEmptyRangeRejected(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	assert.ErrorIs(t, repo.AppendRow(context.Background(), "", nil), errEmptyRange)
	_, err := repo.ReadRange(context.Background(), "")
	assert.ErrorIs(t, err, errEmptyRange)
}

func TestAPIErrorsAreWrapped(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	})

	err := repo.AppendRow(context.Background(), "Snapshots!A:F", []interface{}{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Snapshots!A:F")
}

func TestRequiresSpreadsheetID(t *testing.T) {
	_, err := NewGoogleSheetRepository(context.Background(), config.SheetsConfig{}, nil)
	assert.Error(t, err)
}
