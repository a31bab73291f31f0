package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saranrapjs/edgar-parser/pkg/db"
	"github.com/saranrapjs/edgar-parser/pkg/edgar"
	"github.com/saranrapjs/edgar-parser/pkg/filings"
)

var (
	fetchCIK       string
	fetchForm      string
	fetchAccession string
	fetchDocument  string
	fetchKind      string
	fetchSummary   bool

	// overridden in tests
	clientOptions []edgar.ClientOption
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a filing from EDGAR and decode it",
	Long: `Looks up a company's filing by form type or accession number,
downloads its document through the local cache and decodes it.
The decoder is picked from the form type unless --kind is given.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchCIK, "cik", "", "company CIK")
	fetchCmd.Flags().StringVar(&fetchForm, "form", "", "form type of the latest filing to fetch, e.g. 4 or 13F-HR")
	fetchCmd.Flags().StringVar(&fetchAccession, "accession", "", "accession number of the filing")
	fetchCmd.Flags().StringVar(&fetchDocument, "document", "", "document name, defaults to the primary document")
	fetchCmd.Flags().StringVar(&fetchKind, "kind", "", "decoder: xbrl, 13f, 13f-table or ownership")
	fetchCmd.Flags().BoolVar(&fetchSummary, "summary", false, "print a one-line summary instead of JSON")
	_ = fetchCmd.MarkFlagRequired("cik")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if fetchForm == "" && fetchAccession == "" {
		return errors.New("one of --form or --accession is required")
	}

	database, err := db.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	opts := append([]edgar.ClientOption{edgar.WithLogger(log)}, clientOptions...)
	client := edgar.NewEdgarClient(cfg.UserAgent, cfg.RateLimit, opts...)
	fetcher := filings.NewFetcher(database, client, time.Duration(cfg.CacheMaxAge), log)

	ctx := cmd.Context()
	filing, err := fetcher.Filing(ctx, fetchCIK, fetchForm, fetchAccession)
	if err != nil {
		return err
	}

	kind := filing.Kind()
	if fetchKind != "" {
		if kind, err = edgar.ParseKind(fetchKind); err != nil {
			return err
		}
	}
	log.Info("Fetching filing",
		zap.String("accession", filing.AccessionNumber),
		zap.String("form", filing.Form),
		zap.String("kind", string(kind)),
	)

	data, err := fetcher.Document(ctx, filing, fetchDocument)
	if err != nil {
		return err
	}
	return decodeAndPrint(cmd, kind, data, fetchSummary)
}
