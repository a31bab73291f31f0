package edgar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const submissionsJSON = `{
	"cik": "320193",
	"name": "Apple Inc.",
	"tickers": ["AAPL"],
	"exchanges": ["Nasdaq"],
	"filings": {"recent": {
		"accessionNumber": ["0001140361-24-020151", "0000320193-23-000106", "0001067983-24-000006"],
		"filingDate": ["2024-04-03", "2023-11-03", "2024-02-14"],
		"reportDate": ["2024-04-01", "2023-09-30", "2023-12-31"],
		"form": ["4", "10-K", "13F-HR/A"],
		"fileNumber": ["", "001-36743", "028-04545"],
		"isXBRL": [0, 1, 0],
		"isInlineXBRL": [0, 1, 0],
		"primaryDocument": ["xslF345X05/form4.xml", "aapl-20230930.htm", "xslForm13F_X02/primary_doc.xml"],
		"primaryDocDescription": ["FORM 4", "10-K", ""]
	}}
}`

func TestFilings(t *testing.T) {
	var subs Submissions
	require.NoError(t, json.Unmarshal([]byte(submissionsJSON), &subs))

	f, ok := subs.Filings.Search("320193", "4")
	require.True(t, ok)
	assert.Equal(t, "320193", f.CIK)
	assert.Equal(t, "0001140361-24-020151", f.AccessionNumber)
	assert.Equal(t, KindOwnership, f.Kind())
	assert.Equal(t, "form4.xml", f.RawDocument())
	assert.Equal(t, "https://www.sec.gov/Archives/edgar/data/320193/000114036124020151/form4.xml", f.URL())

	f, ok = subs.Filings.Search("320193", "10-k")
	require.True(t, ok)
	assert.Equal(t, KindXBRL, f.Kind())
	assert.Equal(t, "aapl-20230930.htm", f.RawDocument())

	f, ok = subs.Filings.Lookup("1067983", "0001067983-24-000006")
	require.True(t, ok)
	assert.Equal(t, Kind13F, f.Kind())
	assert.Equal(t, "primary_doc.xml", f.RawDocument())

	_, ok = subs.Filings.Search("320193", "8-K")
	assert.False(t, ok)
	_, ok = subs.Filings.Lookup("320193", "nope")
	assert.False(t, ok)
}

func TestIndexShortColumns(t *testing.T) {
	var f Filings
	f.Recent.Form = []string{"4"}
	assert.Equal(t, Filing{Form: "4"}, f.Index(0))
}

func TestPadCIK(t *testing.T) {
	assert.Equal(t, "0000320193", PadCIK("320193"))
	assert.Equal(t, "0001067983", PadCIK("0001067983"))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("13F-Table")
	require.NoError(t, err)
	assert.Equal(t, Kind13FTable, k)

	_, err = ParseKind("10-K")
	assert.Error(t, err)
}

func TestLoadSubmissions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submissions/CIK0000320193.json", r.URL.Path)
		assert.Equal(t, "edgar-parser test@example.com", r.Header.Get("User-Agent"))
		w.Write([]byte(submissionsJSON))
	}))
	defer srv.Close()

	c := NewEdgarClient("edgar-parser test@example.com", 100, WithBaseURLs(srv.URL, srv.URL))
	subs, err := c.LoadSubmissions(context.Background(), "320193")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", subs.Name)
	assert.Len(t, subs.Filings.Recent.Form, 3)
}

func TestLoadFiling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/320193/000114036124020151/form4.xml" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("<ownershipDocument/>"))
	}))
	defer srv.Close()

	c := NewEdgarClient("ua", 0, WithBaseURLs(srv.URL, srv.URL))
	body, err := c.LoadFiling(context.Background(), Filing{
		CIK:             "0000320193",
		AccessionNumber: "0001140361-24-020151",
		PrimaryDocument: "xslF345X05/form4.xml",
	})
	require.NoError(t, err)
	assert.Equal(t, "<ownershipDocument/>", string(body))

	_, err = c.LoadDocument(context.Background(), "320193", "0001140361-24-020151", "missing.xml")
	assert.ErrorContains(t, err, "SEC returned status 404")
}

func TestLoadCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewEdgarClient("ua", 1, WithBaseURLs(srv.URL, srv.URL))
	_, err := c.LoadSubmissions(ctx, "1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeText(t *testing.T) {
	text, err := DecodeText([]byte("\xEF\xBB\xBF<?xml version=\"1.0\"?><a>caf\xC3\xA9</a>"))
	require.NoError(t, err)
	assert.Equal(t, "<?xml version=\"1.0\"?><a>café</a>", text)

	text, err = DecodeText([]byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><a>caf\xE9</a>"))
	require.NoError(t, err)
	assert.Equal(t, "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><a>café</a>", text)

	_, err = DecodeText([]byte("<a>caf\xE9</a>"))
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	_, err = DecodeText([]byte("<?xml version='1.0' encoding='klingon'?><a/>"))
	assert.ErrorContains(t, err, "unsupported document encoding")
}
