// Package decode dispatches document text to the decoder for its kind.
package decode

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/saranrapjs/edgar-parser/pkg/edgar"
	"github.com/saranrapjs/edgar-parser/pkg/ownership"
	"github.com/saranrapjs/edgar-parser/pkg/thirteenf"
	"github.com/saranrapjs/edgar-parser/pkg/xbrl"
)

var printer = message.NewPrinter(language.English)

// Document decodes text as kind. The result is a *xbrl.Document,
// *thirteenf.Form, *thirteenf.Table or *ownership.Form.
func Document(kind edgar.Kind, text string, log *zap.Logger) (any, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch kind {
	case edgar.KindXBRL:
		return xbrl.Parse(text, xbrl.WithLogger(log))
	case edgar.Kind13F:
		return thirteenf.ParseForm(text)
	case edgar.Kind13FTable:
		table, err := thirteenf.ParseTable(text)
		if err == nil && table.Skipped > 0 {
			log.Debug("Skipped incomplete table entries", zap.Int("skipped", table.Skipped))
		}
		return table, err
	case edgar.KindOwnership:
		return ownership.Parse(text)
	}
	return nil, fmt.Errorf("unknown document kind %q", kind)
}

// Summary is a one-line description of a decoded document.
func Summary(doc any) string {
	switch d := doc.(type) {
	case *xbrl.Document:
		return printer.Sprintf("%d facts in %d contexts", len(d.Facts()), d.Contexts())
	case *thirteenf.Form:
		cover := d.FormData.CoverPage
		s := printer.Sprintf("%s %s for %s", cover.FilingManager.Name, d.HeaderData.SubmissionType, cover.ReportCalendarOrQuarter)
		if sp := d.FormData.SummaryPage; sp != nil {
			s += printer.Sprintf(": %d entries, $%d", sp.TableEntryTotal, sp.TableValueTotal)
		}
		return s
	case *thirteenf.Table:
		return printer.Sprintf("%d holdings, $%d total, %d skipped", len(d.Entries), d.TotalValue(), d.Skipped)
	case *ownership.Form:
		var transactions, holdings int
		if t := d.NonDerivativeTable; t != nil {
			transactions += len(t.Transactions)
			holdings += len(t.Holdings)
		}
		if t := d.DerivativeTable; t != nil {
			transactions += len(t.Transactions)
			holdings += len(t.Holdings)
		}
		return printer.Sprintf("Form %s for %s (%s): %d transactions, %d holdings",
			d.DocumentType, d.Issuer.TradingSymbol, d.PeriodOfReport, transactions, holdings)
	}
	return fmt.Sprintf("%T", doc)
}
