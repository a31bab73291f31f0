// Package ownership decodes SEC insider ownership reports (Forms 3, 4 and
// 5) from their ownershipDocument XML.
package ownership

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/saranrapjs/edgar-parser/pkg/field"
	"github.com/saranrapjs/edgar-parser/pkg/xmlnode"
)

// Parse decodes an ownershipDocument. The issuer, at least one reporting
// owner and at least one signature are required.
func Parse(text string) (*Form, error) {
	root, err := xmlnode.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ownership form: %w", err)
	}
	form, err := parseForm(root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ownership form: %w", err)
	}
	return form, nil
}

func parseForm(root *etree.Element) (*Form, error) {
	f := &Form{
		SchemaVersion:             field.OptString(root, "schemaVersion"),
		DateOfOriginalSubmission:  field.OptString(root, "dateOfOriginalSubmission"),
		NoSecuritiesOwned:         field.OptBool(root, "noSecuritiesOwned"),
		NotSubjectToSection16:     field.OptBool(root, "notSubjectToSection16"),
		Form3HoldingsReported:     field.OptBool(root, "form3HoldingsReported"),
		Form4TransactionsReported: field.OptBool(root, "form4TransactionsReported"),
		Aff10b5One:                field.OptBool(root, "aff10b5One"),
		Remarks:                   field.OptString(root, "remarks"),
	}

	var err error
	if f.DocumentType, err = field.String(root, "documentType"); err != nil {
		return nil, err
	}
	if f.PeriodOfReport, err = field.String(root, "periodOfReport"); err != nil {
		return nil, err
	}
	if f.Issuer, err = parseIssuer(root); err != nil {
		return nil, err
	}
	if f.ReportingOwners, err = parseReportingOwners(root); err != nil {
		return nil, err
	}
	if f.OwnerSignatures, err = parseOwnerSignatures(root); err != nil {
		return nil, err
	}

	if t := xmlnode.FirstChild(root, "nonDerivativeTable"); t != nil {
		f.NonDerivativeTable = parseNonDerivativeTable(t)
	}
	if t := xmlnode.FirstChild(root, "derivativeTable"); t != nil {
		f.DerivativeTable = parseDerivativeTable(t)
	}
	f.Footnotes = parseFootnotes(root)
	return f, nil
}

func parseIssuer(root *etree.Element) (Issuer, error) {
	el, err := field.Child(root, "issuer")
	if err != nil {
		return Issuer{}, err
	}
	cik, err := field.String(el, "issuerCik")
	if err != nil {
		return Issuer{}, fmt.Errorf("issuer: %w", err)
	}
	symbol, err := field.String(el, "issuerTradingSymbol")
	if err != nil {
		return Issuer{}, fmt.Errorf("issuer: %w", err)
	}
	return Issuer{
		CIK:           cik,
		Name:          field.OptString(el, "issuerName"),
		TradingSymbol: symbol,
	}, nil
}

func parseReportingOwners(root *etree.Element) ([]ReportingOwner, error) {
	els := xmlnode.Children(root, "reportingOwner")
	if len(els) == 0 {
		return nil, &field.MissingError{Tag: "reportingOwner"}
	}

	owners := make([]ReportingOwner, 0, len(els))
	for _, el := range els {
		idEl, err := field.Child(el, "reportingOwnerId")
		if err != nil {
			return nil, fmt.Errorf("reportingOwner: %w", err)
		}
		cik, err := field.String(idEl, "rptOwnerCik")
		if err != nil {
			return nil, fmt.Errorf("reportingOwner: reportingOwnerId: %w", err)
		}

		owner := ReportingOwner{
			ID: ReportingOwnerID{
				CIK:  cik,
				CCC:  field.OptString(idEl, "rptOwnerCcc"),
				Name: field.OptString(idEl, "rptOwnerName"),
			},
		}
		if a := xmlnode.FirstChild(el, "reportingOwnerAddress"); a != nil {
			owner.Address = &ReportingOwnerAddress{
				Street1:          field.OptString(a, "rptOwnerStreet1"),
				Street2:          field.OptString(a, "rptOwnerStreet2"),
				City:             field.OptString(a, "rptOwnerCity"),
				State:            field.OptString(a, "rptOwnerState"),
				ZipCode:          field.OptString(a, "rptOwnerZipCode"),
				StateDescription: field.OptString(a, "rptOwnerStateDescription"),
			}
		}
		if r := xmlnode.FirstChild(el, "reportingOwnerRelationship"); r != nil {
			owner.Relationship = &ReportingOwnerRelationship{
				IsDirector:        field.OptBool(r, "isDirector"),
				IsOfficer:         field.OptBool(r, "isOfficer"),
				IsTenPercentOwner: field.OptBool(r, "isTenPercentOwner"),
				IsOther:           field.OptBool(r, "isOther"),
				OfficerTitle:      field.OptString(r, "officerTitle"),
				OtherText:         field.OptString(r, "otherText"),
			}
		}
		owners = append(owners, owner)
	}
	return owners, nil
}

func parseOwnerSignatures(root *etree.Element) ([]OwnerSignature, error) {
	els := xmlnode.Children(root, "ownerSignature")
	if len(els) == 0 {
		return nil, &field.MissingError{Tag: "ownerSignature"}
	}

	sigs := make([]OwnerSignature, 0, len(els))
	for _, el := range els {
		name, err := field.String(el, "signatureName")
		if err != nil {
			return nil, fmt.Errorf("ownerSignature: %w", err)
		}
		date, err := field.String(el, "signatureDate")
		if err != nil {
			return nil, fmt.Errorf("ownerSignature: %w", err)
		}
		sigs = append(sigs, OwnerSignature{Name: name, Date: date})
	}
	return sigs, nil
}

func parseNonDerivativeTable(el *etree.Element) *NonDerivativeTable {
	t := &NonDerivativeTable{
		Transactions: []NonDerivativeTransaction{},
		Holdings:     []NonDerivativeHolding{},
	}
	for _, tx := range xmlnode.Children(el, "nonDerivativeTransaction") {
		t.Transactions = append(t.Transactions, NonDerivativeTransaction{
			SecurityTitle:          valueFootnote(tx, "securityTitle"),
			TransactionDate:        valueFootnote(tx, "transactionDate"),
			DeemedExecutionDate:    valueFootnote(tx, "deemedExecutionDate"),
			TransactionCoding:      transactionCoding(tx),
			TransactionTimeliness:  valueFootnote(tx, "transactionTimeliness"),
			TransactionAmounts:     transactionAmounts(tx),
			PostTransactionAmounts: postTransactionAmounts(tx),
			OwnershipNature:        ownershipNature(tx),
		})
	}
	for _, h := range xmlnode.Children(el, "nonDerivativeHolding") {
		t.Holdings = append(t.Holdings, NonDerivativeHolding{
			SecurityTitle:          valueFootnote(h, "securityTitle"),
			TransactionCoding:      holdingCoding(h),
			PostTransactionAmounts: postTransactionAmounts(h),
			OwnershipNature:        ownershipNature(h),
		})
	}
	return t
}

func parseDerivativeTable(el *etree.Element) *DerivativeTable {
	t := &DerivativeTable{
		Transactions: []DerivativeTransaction{},
		Holdings:     []DerivativeHolding{},
	}
	for _, tx := range xmlnode.Children(el, "derivativeTransaction") {
		t.Transactions = append(t.Transactions, DerivativeTransaction{
			SecurityTitle:             valueFootnote(tx, "securityTitle"),
			ConversionOrExercisePrice: valueFootnote(tx, "conversionOrExercisePrice"),
			TransactionDate:           valueFootnote(tx, "transactionDate"),
			DeemedExecutionDate:       valueFootnote(tx, "deemedExecutionDate"),
			TransactionCoding:         transactionCoding(tx),
			TransactionTimeliness:     valueFootnote(tx, "transactionTimeliness"),
			TransactionAmounts:        derivativeTransactionAmounts(tx),
			ExerciseDate:              valueFootnote(tx, "exerciseDate"),
			ExpirationDate:            valueFootnote(tx, "expirationDate"),
			UnderlyingSecurity:        underlyingSecurity(tx),
			PostTransactionAmounts:    postTransactionAmounts(tx),
			OwnershipNature:           ownershipNature(tx),
		})
	}
	for _, h := range xmlnode.Children(el, "derivativeHolding") {
		t.Holdings = append(t.Holdings, DerivativeHolding{
			SecurityTitle:             valueFootnote(h, "securityTitle"),
			ConversionOrExercisePrice: valueFootnote(h, "conversionOrExercisePrice"),
			TransactionCoding:         holdingCoding(h),
			ExerciseDate:              valueFootnote(h, "exerciseDate"),
			ExpirationDate:            valueFootnote(h, "expirationDate"),
			UnderlyingSecurity:        underlyingSecurity(h),
			PostTransactionAmounts:    postTransactionAmounts(h),
			OwnershipNature:           ownershipNature(h),
		})
	}
	return t
}

func transactionCoding(el *etree.Element) *TransactionCoding {
	c := xmlnode.FirstChild(el, "transactionCoding")
	if c == nil {
		return nil
	}
	return &TransactionCoding{
		FormType:           field.OptString(c, "transactionFormType"),
		TransactionCode:    field.OptString(c, "transactionCode"),
		EquitySwapInvolved: field.OptBool(c, "equitySwapInvolved"),
		FootnoteID:         footnoteID(c),
	}
}

func holdingCoding(el *etree.Element) *HoldingCoding {
	c := xmlnode.FirstChild(el, "transactionCoding")
	if c == nil {
		return nil
	}
	return &HoldingCoding{
		FormType:   field.OptString(c, "transactionFormType"),
		FootnoteID: footnoteID(c),
	}
}

// footnoteID reads the id attribute of the first footnoteId child.
func footnoteID(el *etree.Element) *string {
	id, ok := xmlnode.Attr(xmlnode.FirstChild(el, "footnoteId"), "id")
	if !ok {
		return nil
	}
	return &id
}

func transactionAmounts(el *etree.Element) *TransactionAmounts {
	a := xmlnode.FirstChild(el, "transactionAmounts")
	if a == nil {
		return nil
	}
	return &TransactionAmounts{
		Shares:               valueFootnote(a, "transactionShares"),
		PricePerShare:        valueFootnote(a, "transactionPricePerShare"),
		AcquiredDisposedCode: valueFootnote(a, "transactionAcquiredDisposedCode"),
	}
}

func derivativeTransactionAmounts(el *etree.Element) *DerivativeTransactionAmounts {
	a := xmlnode.FirstChild(el, "transactionAmounts")
	if a == nil {
		return nil
	}
	return &DerivativeTransactionAmounts{
		Shares:               valueFootnote(a, "transactionShares"),
		PricePerShare:        valueFootnote(a, "transactionPricePerShare"),
		TotalValue:           valueFootnote(a, "transactionTotalValue"),
		AcquiredDisposedCode: valueFootnote(a, "transactionAcquiredDisposedCode"),
	}
}

func underlyingSecurity(el *etree.Element) *UnderlyingSecurity {
	u := xmlnode.FirstChild(el, "underlyingSecurity")
	if u == nil {
		return nil
	}
	return &UnderlyingSecurity{
		Title:  valueFootnote(u, "underlyingSecurityTitle"),
		Shares: valueFootnote(u, "underlyingSecurityShares"),
		Value:  valueFootnote(u, "underlyingSecurityValue"),
	}
}

func postTransactionAmounts(el *etree.Element) *PostTransactionAmounts {
	p := xmlnode.FirstChild(el, "postTransactionAmounts")
	if p == nil {
		return nil
	}
	return &PostTransactionAmounts{
		SharesOwnedFollowingTransaction: valueFootnote(p, "sharesOwnedFollowingTransaction"),
		ValueOwnedFollowingTransaction:  valueFootnote(p, "valueOwnedFollowingTransaction"),
	}
}

func ownershipNature(el *etree.Element) *OwnershipNature {
	n := xmlnode.FirstChild(el, "ownershipNature")
	if n == nil {
		return nil
	}
	return &OwnershipNature{
		DirectOrIndirectOwnership: valueFootnote(n, "directOrIndirectOwnership"),
		NatureOfOwnership:         valueFootnote(n, "natureOfOwnership"),
	}
}

func valueFootnote(el *etree.Element, tag string) *ValueFootnote {
	c := xmlnode.FirstChild(el, tag)
	if c == nil {
		return nil
	}
	vf := &ValueFootnote{Value: field.Value(c, "value")}
	for _, fn := range xmlnode.Children(c, "footnoteId") {
		if id, ok := xmlnode.Attr(fn, "id"); ok {
			vf.FootnoteIDs = append(vf.FootnoteIDs, id)
		}
	}
	return vf
}

func parseFootnotes(root *etree.Element) []Footnote {
	notes := []Footnote{}
	for _, group := range xmlnode.Children(root, "footnotes") {
		for _, fn := range xmlnode.Children(group, "footnote") {
			note := Footnote{}
			if id, ok := xmlnode.Attr(fn, "id"); ok {
				note.ID = &id
			}
			if text, ok := xmlnode.Text(fn); ok {
				note.Note = &text
			}
			notes = append(notes, note)
		}
	}
	return notes
}
