package edgar

import (
	"fmt"
	"strings"
)

// Filing is one row of a company's recent filings.
type Filing struct {
	CIK                   string
	AccessionNumber       string `json:"accessionNumber"`
	FilingDate            string `json:"filingDate"`
	ReportDate            string `json:"reportDate"`
	Form                  string `json:"form"`
	FileNumber            string `json:"fileNumber"`
	IsXBRL                int    `json:"isXBRL"`
	IsInlineXBLR          int    `json:"isInlineXBRL"`
	PrimaryDocument       string `json:"primaryDocument"`
	PrimaryDocDescription string `json:"primaryDocDescription"`
}

// Kind names the decoder a filing's XML goes through.
type Kind string

const (
	KindXBRL      Kind = "xbrl"
	Kind13F       Kind = "13f"
	Kind13FTable  Kind = "13f-table"
	KindOwnership Kind = "ownership"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindXBRL, Kind13F, Kind13FTable, KindOwnership:
		return k, nil
	}
	return "", fmt.Errorf("unknown document kind %q", s)
}

// Kind guesses the decoder for the filing's primary document from its form
// type. Anything that is not a 13F or an ownership report is treated as an
// XBRL instance.
func (f Filing) Kind() Kind {
	form := strings.TrimSuffix(strings.ToUpper(f.Form), "/A")
	switch form {
	case "3", "4", "5":
		return KindOwnership
	case "13F-HR", "13F-NT":
		return Kind13F
	}
	return KindXBRL
}

// RawDocument is the primary document without the xsl rendering directory
// EDGAR puts in front of ownership and 13F documents
// ("xslF345X05/form4.xml" is served as styled HTML; "form4.xml" is the XML).
func (f Filing) RawDocument() string {
	dir, name, found := strings.Cut(f.PrimaryDocument, "/")
	if found && strings.HasPrefix(strings.ToLower(dir), "xsl") {
		return name
	}
	return f.PrimaryDocument
}

func (f Filing) URL() string {
	return DocumentURL(f.CIK, f.AccessionNumber, f.RawDocument())
}

// DocumentURL is the archive location of one document of a filing.
func DocumentURL(cik, accession, name string) string {
	return ArchiveURL + documentPath(cik, accession, name)
}

// PadCIK left-pads a CIK with zeros to the ten digits the data API uses.
func PadCIK(cik string) string {
	if len(cik) >= 10 {
		return cik
	}
	return strings.Repeat("0", 10-len(cik)) + cik
}

func documentPath(cik, accession, name string) string {
	accessionNumber := strings.ReplaceAll(accession, "-", "")
	return fmt.Sprintf("/%s/%s/%s", strings.TrimLeft(cik, "0"), accessionNumber, name)
}

type Filings struct {
	Recent struct {
		AccessionNumber       []string `json:"accessionNumber"`
		FilingDate            []string `json:"filingDate"`
		ReportDate            []string `json:"reportDate"`
		Form                  []string `json:"form"`
		FileNumber            []string `json:"fileNumber"`
		IsXBRL                []int    `json:"isXBRL"`
		IsInlineXBLR          []int    `json:"isInlineXBRL"`
		PrimaryDocument       []string `json:"primaryDocument"`
		PrimaryDocDescription []string `json:"primaryDocDescription"`
	} `json:"recent"`
}

// Index returns the i'th recent filing. Columns shorter than the form
// column leave the matching fields empty.
func (f Filings) Index(i int) Filing {
	r := f.Recent
	return Filing{
		AccessionNumber:       at(r.AccessionNumber, i),
		FilingDate:            at(r.FilingDate, i),
		ReportDate:            at(r.ReportDate, i),
		Form:                  at(r.Form, i),
		FileNumber:            at(r.FileNumber, i),
		IsXBRL:                at(r.IsXBRL, i),
		IsInlineXBLR:          at(r.IsInlineXBLR, i),
		PrimaryDocument:       at(r.PrimaryDocument, i),
		PrimaryDocDescription: at(r.PrimaryDocDescription, i),
	}
}

func at[T any](s []T, i int) T {
	var zero T
	if i < 0 || i >= len(s) {
		return zero
	}
	return s[i]
}

// Search returns the most recent filing of the given form type. Recent
// filings are listed newest first.
func (f Filings) Search(cik, formName string) (Filing, bool) {
	for i, name := range f.Recent.Form {
		if strings.EqualFold(name, formName) {
			filing := f.Index(i)
			filing.CIK = cik
			return filing, true
		}
	}
	return Filing{}, false
}

// Lookup finds a recent filing by accession number.
func (f Filings) Lookup(cik, accession string) (Filing, bool) {
	for i, acc := range f.Recent.AccessionNumber {
		if acc == accession {
			filing := f.Index(i)
			filing.CIK = cik
			return filing, true
		}
	}
	return Filing{}, false
}

type Submissions struct {
	CIK       string   `json:"cik"`
	Name      string   `json:"name"`
	Tickers   []string `json:"tickers"`
	Exchanges []string `json:"exchanges"`
	Filings   Filings  `json:"filings"`
}
