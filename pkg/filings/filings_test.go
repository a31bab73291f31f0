package filings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saranrapjs/edgar-parser/pkg/db"
	"github.com/saranrapjs/edgar-parser/pkg/edgar"
)

type fakeEdgar struct {
	submissions atomic.Int32
	documents   atomic.Int32
}

func (f *fakeEdgar) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/submissions/CIK0000320193.json":
		f.submissions.Add(1)
		subs := edgar.Submissions{CIK: "320193", Name: "Apple Inc."}
		subs.Filings.Recent.AccessionNumber = []string{"0001140361-24-020151", "0000320193-24-000069"}
		subs.Filings.Recent.Form = []string{"4", "10-Q"}
		subs.Filings.Recent.PrimaryDocument = []string{"xslF345X05/form4.xml", "aapl-20240330.htm"}
		json.NewEncoder(w).Encode(subs)
	case "/archive/320193/000114036124020151/form4.xml":
		f.documents.Add(1)
		w.Write([]byte("<ownershipDocument/>"))
	default:
		http.NotFound(w, r)
	}
}

func newFetcher(t *testing.T) (*Fetcher, *fakeEdgar) {
	t.Helper()
	fake := &fakeEdgar{}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	database, err := db.New(filepath.Join(t.TempDir(), "edgar.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	client := edgar.NewEdgarClient("test (test@example.com)", 100,
		edgar.WithBaseURLs(server.URL, server.URL+"/archive"))
	return NewFetcher(database, client, time.Hour, nil), fake
}

func TestFiling(t *testing.T) {
	f, fake := newFetcher(t)
	ctx := context.Background()

	filing, err := f.Filing(ctx, "320193", "4", "")
	require.NoError(t, err)
	assert.Equal(t, "0001140361-24-020151", filing.AccessionNumber)
	assert.Equal(t, edgar.KindOwnership, filing.Kind())

	filing, err = f.Filing(ctx, "320193", "", "0000320193-24-000069")
	require.NoError(t, err)
	assert.Equal(t, "10-Q", filing.Form)

	_, err = f.Filing(ctx, "320193", "13F-HR", "")
	assert.ErrorIs(t, err, ErrFilingNotFound)

	// later lookups are served from the cache
	assert.Equal(t, int32(1), fake.submissions.Load())
}

func TestDocumentCached(t *testing.T) {
	f, fake := newFetcher(t)
	ctx := context.Background()

	filing, err := f.Filing(ctx, "320193", "4", "")
	require.NoError(t, err)

	for range 2 {
		data, err := f.Document(ctx, filing, "")
		require.NoError(t, err)
		assert.Equal(t, "<ownershipDocument/>", string(data))
	}
	assert.Equal(t, int32(1), fake.documents.Load())

	_, err = f.Document(ctx, filing, "missing.xml")
	assert.ErrorContains(t, err, "SEC returned status 404")
}
