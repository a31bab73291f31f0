package ownership

import (
	"github.com/saranrapjs/edgar-parser/pkg/value"
)

// Form is a decoded ownershipDocument: a Form 3, 4 or 5 (or an amendment
// of one). DocumentType says which.
type Form struct {
	SchemaVersion             *string             `json:"schemaVersion,omitempty"`
	DocumentType              string              `json:"documentType"`
	PeriodOfReport            string              `json:"periodOfReport"`
	DateOfOriginalSubmission  *string             `json:"dateOfOriginalSubmission,omitempty"`
	NoSecuritiesOwned         *bool               `json:"noSecuritiesOwned,omitempty"`
	NotSubjectToSection16     *bool               `json:"notSubjectToSection16,omitempty"`
	Form3HoldingsReported     *bool               `json:"form3HoldingsReported,omitempty"`
	Form4TransactionsReported *bool               `json:"form4TransactionsReported,omitempty"`
	Issuer                    Issuer              `json:"issuer"`
	ReportingOwners           []ReportingOwner    `json:"reportingOwners"`
	Aff10b5One                *bool               `json:"aff10b5One,omitempty"`
	NonDerivativeTable        *NonDerivativeTable `json:"nonDerivativeTable,omitempty"`
	DerivativeTable           *DerivativeTable    `json:"derivativeTable,omitempty"`
	Footnotes                 []Footnote          `json:"footnotes"`
	Remarks                   *string             `json:"remarks,omitempty"`
	OwnerSignatures           []OwnerSignature    `json:"ownerSignatures"`
}

// Footnote returns the text of the footnote with the given id.
func (f *Form) Footnote(id string) (string, bool) {
	for _, fn := range f.Footnotes {
		if fn.ID != nil && *fn.ID == id && fn.Note != nil {
			return *fn.Note, true
		}
	}
	return "", false
}

type Issuer struct {
	CIK           string  `json:"cik"`
	Name          *string `json:"name,omitempty"`
	TradingSymbol string  `json:"tradingSymbol"`
}

type ReportingOwner struct {
	ID           ReportingOwnerID            `json:"id"`
	Address      *ReportingOwnerAddress      `json:"address,omitempty"`
	Relationship *ReportingOwnerRelationship `json:"relationship,omitempty"`
}

type ReportingOwnerID struct {
	CIK  string  `json:"cik"`
	CCC  *string `json:"ccc,omitempty"`
	Name *string `json:"name,omitempty"`
}

type ReportingOwnerAddress struct {
	Street1          *string `json:"street1,omitempty"`
	Street2          *string `json:"street2,omitempty"`
	City             *string `json:"city,omitempty"`
	State            *string `json:"state,omitempty"`
	ZipCode          *string `json:"zipCode,omitempty"`
	StateDescription *string `json:"stateDescription,omitempty"`
}

type ReportingOwnerRelationship struct {
	IsDirector        *bool   `json:"isDirector,omitempty"`
	IsOfficer         *bool   `json:"isOfficer,omitempty"`
	IsTenPercentOwner *bool   `json:"isTenPercentOwner,omitempty"`
	IsOther           *bool   `json:"isOther,omitempty"`
	OfficerTitle      *string `json:"officerTitle,omitempty"`
	OtherText         *string `json:"otherText,omitempty"`
}

// NonDerivativeTable is Table I: common stock and the like.
type NonDerivativeTable struct {
	Transactions []NonDerivativeTransaction `json:"transactions"`
	Holdings     []NonDerivativeHolding     `json:"holdings"`
}

// DerivativeTable is Table II: options, warrants, convertibles.
type DerivativeTable struct {
	Transactions []DerivativeTransaction `json:"transactions"`
	Holdings     []DerivativeHolding     `json:"holdings"`
}

type NonDerivativeTransaction struct {
	SecurityTitle          *ValueFootnote          `json:"securityTitle,omitempty"`
	TransactionDate        *ValueFootnote          `json:"transactionDate,omitempty"`
	DeemedExecutionDate    *ValueFootnote          `json:"deemedExecutionDate,omitempty"`
	TransactionCoding      *TransactionCoding      `json:"transactionCoding,omitempty"`
	TransactionTimeliness  *ValueFootnote          `json:"transactionTimeliness,omitempty"`
	TransactionAmounts     *TransactionAmounts     `json:"transactionAmounts,omitempty"`
	PostTransactionAmounts *PostTransactionAmounts `json:"postTransactionAmounts,omitempty"`
	OwnershipNature        *OwnershipNature        `json:"ownershipNature,omitempty"`
}

type DerivativeTransaction struct {
	SecurityTitle             *ValueFootnote                `json:"securityTitle,omitempty"`
	ConversionOrExercisePrice *ValueFootnote                `json:"conversionOrExercisePrice,omitempty"`
	TransactionDate           *ValueFootnote                `json:"transactionDate,omitempty"`
	DeemedExecutionDate       *ValueFootnote                `json:"deemedExecutionDate,omitempty"`
	TransactionCoding         *TransactionCoding            `json:"transactionCoding,omitempty"`
	TransactionTimeliness     *ValueFootnote                `json:"transactionTimeliness,omitempty"`
	TransactionAmounts        *DerivativeTransactionAmounts `json:"transactionAmounts,omitempty"`
	ExerciseDate              *ValueFootnote                `json:"exerciseDate,omitempty"`
	ExpirationDate            *ValueFootnote                `json:"expirationDate,omitempty"`
	UnderlyingSecurity        *UnderlyingSecurity           `json:"underlyingSecurity,omitempty"`
	PostTransactionAmounts    *PostTransactionAmounts       `json:"postTransactionAmounts,omitempty"`
	OwnershipNature           *OwnershipNature              `json:"ownershipNature,omitempty"`
}

type NonDerivativeHolding struct {
	SecurityTitle          *ValueFootnote          `json:"securityTitle,omitempty"`
	TransactionCoding      *HoldingCoding          `json:"transactionCoding,omitempty"`
	PostTransactionAmounts *PostTransactionAmounts `json:"postTransactionAmounts,omitempty"`
	OwnershipNature        *OwnershipNature        `json:"ownershipNature,omitempty"`
}

type DerivativeHolding struct {
	SecurityTitle             *ValueFootnote          `json:"securityTitle,omitempty"`
	ConversionOrExercisePrice *ValueFootnote          `json:"conversionOrExercisePrice,omitempty"`
	TransactionCoding         *HoldingCoding          `json:"transactionCoding,omitempty"`
	ExerciseDate              *ValueFootnote          `json:"exerciseDate,omitempty"`
	ExpirationDate            *ValueFootnote          `json:"expirationDate,omitempty"`
	UnderlyingSecurity        *UnderlyingSecurity     `json:"underlyingSecurity,omitempty"`
	PostTransactionAmounts    *PostTransactionAmounts `json:"postTransactionAmounts,omitempty"`
	OwnershipNature           *OwnershipNature        `json:"ownershipNature,omitempty"`
}

// TransactionCoding carries the transaction code (P for an open market
// purchase, S for a sale, A for a grant, and so on).
type TransactionCoding struct {
	FormType           *string `json:"formType,omitempty"`
	TransactionCode    *string `json:"transactionCode,omitempty"`
	EquitySwapInvolved *bool   `json:"equitySwapInvolved,omitempty"`
	FootnoteID         *string `json:"footnoteId,omitempty"`
}

type HoldingCoding struct {
	FormType   *string `json:"formType,omitempty"`
	FootnoteID *string `json:"footnoteId,omitempty"`
}

type TransactionAmounts struct {
	Shares               *ValueFootnote `json:"shares,omitempty"`
	PricePerShare        *ValueFootnote `json:"pricePerShare,omitempty"`
	AcquiredDisposedCode *ValueFootnote `json:"acquiredDisposedCode,omitempty"`
}

type DerivativeTransactionAmounts struct {
	Shares               *ValueFootnote `json:"shares,omitempty"`
	PricePerShare        *ValueFootnote `json:"pricePerShare,omitempty"`
	TotalValue           *ValueFootnote `json:"totalValue,omitempty"`
	AcquiredDisposedCode *ValueFootnote `json:"acquiredDisposedCode,omitempty"`
}

type UnderlyingSecurity struct {
	Title  *ValueFootnote `json:"title,omitempty"`
	Shares *ValueFootnote `json:"shares,omitempty"`
	Value  *ValueFootnote `json:"value,omitempty"`
}

type PostTransactionAmounts struct {
	SharesOwnedFollowingTransaction *ValueFootnote `json:"sharesOwnedFollowingTransaction,omitempty"`
	ValueOwnedFollowingTransaction  *ValueFootnote `json:"valueOwnedFollowingTransaction,omitempty"`
}

type OwnershipNature struct {
	DirectOrIndirectOwnership *ValueFootnote `json:"directOrIndirectOwnership,omitempty"`
	NatureOfOwnership         *ValueFootnote `json:"natureOfOwnership,omitempty"`
}

type Footnote struct {
	ID   *string `json:"id,omitempty"`
	Note *string `json:"note,omitempty"`
}

type OwnerSignature struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// ValueFootnote is the <value> plus <footnoteId id="..."/> pair most
// table cells are made of. Either part may be missing.
type ValueFootnote struct {
	Value       *value.Value `json:"value,omitempty"`
	FootnoteIDs []string     `json:"footnoteIds,omitempty"`
}
