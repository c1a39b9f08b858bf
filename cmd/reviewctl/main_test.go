package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "review_analyzer/internal/adapters/http_server"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestList_PrintsTable(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"success":true,"total_pages":4,"reviews":[{"id":3,"product_name":"Kopi",
			"review_text":"Enak","sentiment":"NEGATIVE","confidence":0.5,"key_points":["Pahit"],
			"created_at":"2024-03-05T14:07:09Z"}]}`))
	}))
	defer srv.Close()

	out, err := runCLI(t, "list", "--base-url", srv.URL, "--sentiment", "negative", "--product", "",
		"--page", "2", "--page-size", "5", "--sort", "confidence_desc", "--json=false")
	require.NoError(t, err)
	assert.Equal(t, "page=2&page_size=5&sentiment=NEGATIVE&sort=confidence_desc", query)
	assert.Contains(t, out, "Kopi")
	assert.Contains(t, out, "Negatif")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "Pahit")
	assert.Contains(t, out, "Halaman 2 dari 4")
}

func TestList_RejectsBadFlags(t *testing.T) {
	_, err := runCLI(t, "list", "--sentiment", "mixed", "--page-size", "10", "--sort", "created_at_desc")
	assert.ErrorContains(t, err, "unknown sentiment")

	_, err = runCLI(t, "list", "--sentiment", "all", "--page-size", "7", "--sort", "created_at_desc")
	assert.ErrorContains(t, err, "page size")
}

func TestList_ApplicationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	_, err := runCLI(t, "list", "--base-url", srv.URL, "--sentiment", "all", "--page", "1",
		"--page-size", "10", "--sort", "created_at_desc")
	assert.EqualError(t, err, "Gagal mengambil data ulasan")
}

func TestSubmit(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"success":true,"id":1,"sentiment":"POSITIVE","confidence":0.873,
			"key_points":["Rasa enak"],"created_at":"2024-03-05T14:07:09Z"}`))
	}))
	defer srv.Close()

	out, err := runCLI(t, "submit", "--base-url", srv.URL, "--product", " Kopi ", "--text", "Enak sekali")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"product_name": "Kopi", "review_text": "Enak sekali"}, got)
	assert.Contains(t, out, "✓ Ulasan berhasil dianalisis! Sentimen: POSITIVE (87.3%)")
	assert.Contains(t, out, "• Rasa enak")
}

func TestSubmit_ValidationSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	_, err := runCLI(t, "submit", "--base-url", srv.URL, "--product", "  ", "--text", "Enak")
	assert.EqualError(t, err, "Mohon isi semua field")
	assert.False(t, called)
}

func TestStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"total":4,"positive":3,"negative":1,"neutral":0,
			"positive_percentage":75,"negative_percentage":25,"neutral_percentage":0}`))
	}))
	defer srv.Close()

	out, err := runCLI(t, "stats", "--base-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Total Ulasan: 4")
	assert.Contains(t, out, "Positif: 3 (75.0%)")
	assert.Contains(t, out, "Negatif: 1 (25.0%)")
}

func TestStats_ServerErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	_, err := runCLI(t, "stats", "--base-url", srv.URL)
	assert.EqualError(t, err, "Gagal mengambil statistik")
}

func TestTimeoutDefaultOutlastsServerDeadline(t *testing.T) {
	d, err := rootCmd.PersistentFlags().GetDuration("timeout")
	require.NoError(t, err)
	assert.Greater(t, d, httpserver.DefaultTimeout)
}
