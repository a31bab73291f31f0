package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saranrapjs/edgar-parser/pkg/edgar"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("EDGAR_DB_PATH", filepath.Join(t.TempDir(), "edgar.db"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags puts every flag back to its default so one Execute does not
// leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestDecodeCmds(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, name := range []string{"xbrl", "13f", "13f-table", "ownership", "fetch"} {
		assert.True(t, names[name], name)
	}
}

func TestDecodeXBRL(t *testing.T) {
	out, err := execute(t, "", "xbrl", "../../pkg/xbrl/testdata/instance.xml")
	require.NoError(t, err)

	var doc struct {
		Facts []struct {
			Concept string `json:"concept"`
		} `json:"facts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.Facts, 9)
	assert.Equal(t, "DocumentType", doc.Facts[0].Concept)
}

func TestDecodeSummary(t *testing.T) {
	out, err := execute(t, "", "13f-table", "--summary", "../../pkg/thirteenf/testdata/infotable.xml")
	require.NoError(t, err)
	assert.Equal(t, "3 holdings, $176,276,624,831 total, 1 skipped\n", out)
}

func TestSummaryDoesNotLeak(t *testing.T) {
	_, err := execute(t, "", "xbrl", "--summary", "../../pkg/xbrl/testdata/instance.xml")
	require.NoError(t, err)

	out, err := execute(t, "", "xbrl", "../../pkg/xbrl/testdata/instance.xml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"), out)

	out, err = execute(t, "", "13f-table", "../../pkg/thirteenf/testdata/infotable.xml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"), out)
}

func TestDecodeStdin(t *testing.T) {
	data, err := os.ReadFile("../../pkg/ownership/testdata/form4.xml")
	require.NoError(t, err)

	out, err := execute(t, string(data), "ownership", "--summary", "-")
	require.NoError(t, err)
	assert.Equal(t, "Form 4 for AAPL (2024-04-01): 2 transactions, 1 holdings\n", out)
}

func TestDecodeErrors(t *testing.T) {
	_, err := execute(t, "", "xbrl")
	assert.ErrorContains(t, err, "accepts 1 arg(s)")

	_, err = execute(t, "<xbrl>", "xbrl", "-")
	assert.Error(t, err)

	_, err = execute(t, "", "13f", "does-not-exist.xml")
	assert.ErrorContains(t, err, "failed to read input")

	_, err = execute(t, "", "--log-level", "loud", "xbrl", "-")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestFetch(t *testing.T) {
	form4, err := os.ReadFile("../../pkg/ownership/testdata/form4.xml")
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /submissions/CIK0000320193.json", func(w http.ResponseWriter, r *http.Request) {
		subs := edgar.Submissions{CIK: "320193", Name: "Apple Inc."}
		subs.Filings.Recent.AccessionNumber = []string{"0001140361-24-020151"}
		subs.Filings.Recent.Form = []string{"4"}
		subs.Filings.Recent.PrimaryDocument = []string{"xslF345X05/form4.xml"}
		json.NewEncoder(w).Encode(subs)
	})
	mux.HandleFunc("GET /archive/320193/000114036124020151/form4.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write(form4)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	clientOptions = []edgar.ClientOption{edgar.WithBaseURLs(server.URL, server.URL+"/archive")}
	defer func() { clientOptions = nil }()

	out, err := execute(t, "", "fetch", "--cik", "320193", "--form", "4", "--summary")
	require.NoError(t, err)
	assert.Equal(t, "Form 4 for AAPL (2024-04-01): 2 transactions, 1 holdings\n", out)

	_, err = execute(t, "", "fetch", "--cik", "320193")
	assert.ErrorContains(t, err, "--form or --accession")

	_, err = execute(t, "", "fetch", "--cik", "320193", "--form", "4", "--kind", "10-k")
	assert.ErrorContains(t, err, "unknown document kind")
}
