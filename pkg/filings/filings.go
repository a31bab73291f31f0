// Package filings fetches EDGAR submissions and documents through the
// local cache.
package filings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/saranrapjs/edgar-parser/pkg/db"
	"github.com/saranrapjs/edgar-parser/pkg/edgar"
)

var ErrFilingNotFound = errors.New("filing not found")

type Fetcher struct {
	db     *db.DB
	client *edgar.EdgarClient
	maxAge time.Duration
	log    *zap.Logger
}

func NewFetcher(database *db.DB, client *edgar.EdgarClient, maxAge time.Duration, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{db: database, client: client, maxAge: maxAge, log: log}
}

// Submissions returns the company's submissions, from the cache when it is
// younger than maxAge.
func (f *Fetcher) Submissions(ctx context.Context, cik string) (*edgar.Submissions, error) {
	stale, err := f.db.AreSubmissionsStale(cik, f.maxAge)
	if err != nil {
		f.log.Warn("Error checking submissions staleness", zap.String("cik", cik), zap.Error(err))
		stale = true
	}

	if !stale {
		submissions, err := f.db.GetSubmissions(cik)
		if err == nil {
			return submissions, nil
		}
		f.log.Warn("Error retrieving submissions from database", zap.String("cik", cik), zap.Error(err))
	}

	f.log.Info("Submissions are stale or missing, fetching from network", zap.String("cik", cik))
	submissions, err := f.client.LoadSubmissions(ctx, cik)
	if err != nil {
		return nil, err
	}
	if err := f.db.StoreSubmissions(cik, submissions); err != nil {
		f.log.Warn("Failed to store submissions", zap.String("cik", cik), zap.Error(err))
	}
	return submissions, nil
}

// Filing finds a recent filing of cik by accession number or, when
// accession is empty, the latest filing of the given form.
func (f *Fetcher) Filing(ctx context.Context, cik, form, accession string) (edgar.Filing, error) {
	submissions, err := f.Submissions(ctx, cik)
	if err != nil {
		return edgar.Filing{}, err
	}

	var (
		filing edgar.Filing
		found  bool
	)
	if accession != "" {
		filing, found = submissions.Filings.Lookup(cik, accession)
	} else {
		filing, found = submissions.Filings.Search(cik, form)
	}
	if !found {
		return edgar.Filing{}, fmt.Errorf("%w: cik %s form %q accession %q", ErrFilingNotFound, cik, form, accession)
	}
	return filing, nil
}

// Document returns one document of filing, by default its primary XML
// document.
func (f *Fetcher) Document(ctx context.Context, filing edgar.Filing, name string) ([]byte, error) {
	if name == "" {
		name = filing.RawDocument()
	}
	log := f.log.With(
		zap.String("cik", filing.CIK),
		zap.String("accession", filing.AccessionNumber),
		zap.String("document", name),
	)

	stale, err := f.db.AreDocumentsStale(filing.CIK, filing.AccessionNumber, name, f.maxAge)
	if err != nil {
		log.Warn("Error checking document staleness", zap.Error(err))
		stale = true
	}
	if !stale {
		data, err := f.db.GetDocument(filing.CIK, filing.AccessionNumber, name)
		if err == nil {
			log.Debug("Serving document from cache")
			return data, nil
		}
		log.Warn("Error retrieving document from database", zap.Error(err))
	}

	data, err := f.client.LoadDocument(ctx, filing.CIK, filing.AccessionNumber, name)
	if err != nil {
		return nil, err
	}
	if err := f.db.StoreDocument(filing, name, data); err != nil {
		log.Warn("Failed to store document", zap.Error(err))
	}
	return data, nil
}
