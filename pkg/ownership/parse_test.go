package ownership

import (
	_ "embed"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saranrapjs/edgar-parser/pkg/field"
	"github.com/saranrapjs/edgar-parser/pkg/value"
	"github.com/saranrapjs/edgar-parser/pkg/xmlnode"
)

//go:embed testdata/form4.xml
var form4 string

func TestParse(t *testing.T) {
	form, err := Parse(form4)
	require.NoError(t, err)

	assert.Equal(t, "X0508", *form.SchemaVersion)
	assert.Equal(t, "4", form.DocumentType)
	assert.Equal(t, "2024-04-01", form.PeriodOfReport)
	assert.Nil(t, form.DateOfOriginalSubmission)
	require.NotNil(t, form.NotSubjectToSection16)
	assert.False(t, *form.NotSubjectToSection16)
	assert.True(t, *form.Aff10b5One)
	assert.Equal(t, "Exhibit 24 - Power of Attorney", *form.Remarks)

	assert.Equal(t, Issuer{CIK: "0000320193", Name: strPtr("Apple Inc."), TradingSymbol: "AAPL"}, form.Issuer)

	require.Len(t, form.ReportingOwners, 1)
	owner := form.ReportingOwners[0]
	assert.Equal(t, "0001214156", owner.ID.CIK)
	assert.Nil(t, owner.ID.CCC)
	assert.Equal(t, "COOK TIMOTHY D", *owner.ID.Name)
	require.NotNil(t, owner.Address)
	assert.Equal(t, "CUPERTINO", *owner.Address.City)
	assert.Nil(t, owner.Address.Street2)
	require.NotNil(t, owner.Relationship)
	assert.True(t, *owner.Relationship.IsDirector)
	assert.True(t, *owner.Relationship.IsOfficer)
	assert.Nil(t, owner.Relationship.IsTenPercentOwner)
	assert.Equal(t, "Chief Executive Officer", *owner.Relationship.OfficerTitle)

	require.Len(t, form.OwnerSignatures, 1)
	assert.Equal(t, "2024-04-03", form.OwnerSignatures[0].Date)
}

func TestNonDerivativeTable(t *testing.T) {
	form, err := Parse(form4)
	require.NoError(t, err)
	require.NotNil(t, form.NonDerivativeTable)

	require.Len(t, form.NonDerivativeTable.Transactions, 1)
	tx := form.NonDerivativeTable.Transactions[0]
	assert.Equal(t, value.NewString("Common Stock"), *tx.SecurityTitle.Value)
	assert.Equal(t, value.NewString("L"), *tx.TransactionTimeliness.Value)
	assert.Nil(t, tx.DeemedExecutionDate)

	require.NotNil(t, tx.TransactionCoding)
	assert.Equal(t, "S", *tx.TransactionCoding.TransactionCode)
	assert.False(t, *tx.TransactionCoding.EquitySwapInvolved)
	assert.Equal(t, "F1", *tx.TransactionCoding.FootnoteID)

	amounts := tx.TransactionAmounts
	require.NotNil(t, amounts)
	assert.Equal(t, value.NewInt(196410), *amounts.Shares.Value)
	assert.Equal(t, value.NewFloat(169.0366), *amounts.PricePerShare.Value)
	assert.Equal(t, []string{"F2", "F3"}, amounts.PricePerShare.FootnoteIDs)
	assert.Equal(t, value.NewString("D"), *amounts.AcquiredDisposedCode.Value)

	assert.Equal(t, value.NewInt(3280180), *tx.PostTransactionAmounts.SharesOwnedFollowingTransaction.Value)
	assert.Nil(t, tx.PostTransactionAmounts.ValueOwnedFollowingTransaction)

	require.Len(t, form.NonDerivativeTable.Holdings, 1)
	h := form.NonDerivativeTable.Holdings[0]
	assert.Nil(t, h.TransactionCoding)
	assert.Equal(t, value.NewString("I"), *h.OwnershipNature.DirectOrIndirectOwnership.Value)
	assert.Equal(t, []string{"F4"}, h.OwnershipNature.NatureOfOwnership.FootnoteIDs)
}

func TestDerivativeTable(t *testing.T) {
	form, err := Parse(form4)
	require.NoError(t, err)
	require.NotNil(t, form.DerivativeTable)
	assert.Empty(t, form.DerivativeTable.Holdings)

	require.Len(t, form.DerivativeTable.Transactions, 1)
	tx := form.DerivativeTable.Transactions[0]
	assert.Equal(t, value.NewString("Restricted Stock Unit"), *tx.SecurityTitle.Value)

	// A cell holding only a footnote reference has no value.
	require.NotNil(t, tx.ConversionOrExercisePrice)
	assert.Nil(t, tx.ConversionOrExercisePrice.Value)
	assert.Equal(t, []string{"F5"}, tx.ConversionOrExercisePrice.FootnoteIDs)

	assert.Equal(t, "M", *tx.TransactionCoding.TransactionCode)
	assert.Nil(t, tx.TransactionCoding.FootnoteID)
	assert.Nil(t, tx.TransactionTimeliness)
	assert.Equal(t, value.NewInt(0), *tx.TransactionAmounts.PricePerShare.Value)
	assert.Nil(t, tx.TransactionAmounts.TotalValue)
	assert.Equal(t, value.NewInt(511000), *tx.UnderlyingSecurity.Shares.Value)
	assert.Nil(t, tx.UnderlyingSecurity.Value)
	assert.Equal(t, []string{"F6"}, tx.ExpirationDate.FootnoteIDs)
}

func TestFootnotes(t *testing.T) {
	form, err := Parse(form4)
	require.NoError(t, err)

	require.Len(t, form.Footnotes, 6)
	assert.Equal(t, "F1", *form.Footnotes[0].ID)

	note, ok := form.Footnote("F2")
	assert.True(t, ok)
	assert.Equal(t, "Weighted average price.", note)

	_, ok = form.Footnote("F9")
	assert.False(t, ok)
}

func TestParseMultipleOwners(t *testing.T) {
	second := `<reportingOwner>
        <reportingOwnerId>
            <rptOwnerCik>0000000001</rptOwnerCik>
        </reportingOwnerId>
    </reportingOwner>
    <aff10b5One>`
	form, err := Parse(strings.Replace(form4, "<aff10b5One>", second, 1))
	require.NoError(t, err)
	require.Len(t, form.ReportingOwners, 2)
	assert.Equal(t, "0000000001", form.ReportingOwners[1].ID.CIK)
	assert.Nil(t, form.ReportingOwners[1].Address)
}

func TestParseWithoutTables(t *testing.T) {
	text := form4
	for _, tag := range []string{"nonDerivativeTable", "derivativeTable", "footnotes"} {
		start := strings.Index(text, "<"+tag+">")
		end := strings.Index(text, "</"+tag+">") + len("</"+tag+">")
		text = text[:start] + text[end:]
	}

	form, err := Parse(text)
	require.NoError(t, err)
	assert.Nil(t, form.NonDerivativeTable)
	assert.Nil(t, form.DerivativeTable)
	assert.Empty(t, form.Footnotes)
	assert.NotNil(t, form.Footnotes)
}

func TestParseMissingRequired(t *testing.T) {
	tests := []struct {
		remove string
		tag    string
	}{
		{"<documentType>4</documentType>", "documentType"},
		{"<issuerTradingSymbol>AAPL</issuerTradingSymbol>", "issuerTradingSymbol"},
		{"<rptOwnerCik>0001214156</rptOwnerCik>", "rptOwnerCik"},
		{"<signatureDate>2024-04-03</signatureDate>", "signatureDate"},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			form, err := Parse(strings.Replace(form4, tt.remove, "", 1))
			assert.Nil(t, form)
			var missing *field.MissingError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.tag, missing.Tag)
		})
	}
}

func TestParseMissingSections(t *testing.T) {
	_, err := Parse(`<ownershipDocument>
		<documentType>4</documentType>
		<periodOfReport>2024-04-01</periodOfReport>
		<issuer><issuerCik>1</issuerCik><issuerTradingSymbol>X</issuerTradingSymbol></issuer>
		<ownerSignature><signatureName>a</signatureName><signatureDate>b</signatureDate></ownerSignature>
	</ownershipDocument>`)
	assert.EqualError(t, err, "failed to parse ownership form: reportingOwner not found")
	assert.ErrorIs(t, err, field.ErrMissingField)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse("<ownershipDocument>")
	assert.ErrorIs(t, err, xmlnode.ErrMalformedXML)
}

func TestMarshalJSON(t *testing.T) {
	form, err := Parse(form4)
	require.NoError(t, err)

	data, err := json.Marshal(form.NonDerivativeTable.Transactions[0].TransactionAmounts)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"shares": {"value": 196410},
		"pricePerShare": {"value": 169.0366, "footnoteIds": ["F2", "F3"]},
		"acquiredDisposedCode": {"value": "D"}
	}`, string(data))
}

func strPtr(s string) *string { return &s }
