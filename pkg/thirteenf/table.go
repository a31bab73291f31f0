package thirteenf

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/saranrapjs/edgar-parser/pkg/field"
	"github.com/saranrapjs/edgar-parser/pkg/xmlnode"
)

// Table is the 13F information table.
type Table struct {
	Entries []TableEntry `json:"entries"`
	// Skipped counts infoTable elements left out for missing a required
	// field.
	Skipped int `json:"skipped"`
}

// TableEntry is one reported position.
type TableEntry struct {
	NameOfIssuer         string              `json:"nameOfIssuer"`
	TitleOfClass         string              `json:"titleOfClass"`
	CUSIP                string              `json:"cusip"`
	FIGI                 *string             `json:"figi,omitempty"`
	Value                int64               `json:"value"`
	SharesOrPrintAmount  SharesOrPrintAmount `json:"sharesOrPrintAmount"`
	PutCall              *string             `json:"putCall,omitempty"`
	InvestmentDiscretion string              `json:"investmentDiscretion"`
	OtherManager         []int32             `json:"otherManager"`
	VotingAuthority      VotingAuthority     `json:"votingAuthority"`
}

// SharesOrPrintAmount is the position size, either a share count ("SH") or
// a principal amount ("PRN").
type SharesOrPrintAmount struct {
	Amount int64  `json:"amount"`
	Type   string `json:"sharesOrPrintType"`
}

type VotingAuthority struct {
	Sole   int64 `json:"sole"`
	Shared int64 `json:"shared"`
	None   int64 `json:"none"`
}

// ParseTable decodes a 13F information table. Entries missing a required
// field are skipped rather than failing the table.
func ParseTable(text string) (*Table, error) {
	root, err := xmlnode.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse 13F table: %w", err)
	}

	table := &Table{Entries: []TableEntry{}}
	for _, el := range xmlnode.Children(root, "infoTable") {
		entry, err := parseEntry(el)
		if err != nil {
			table.Skipped++
			continue
		}
		table.Entries = append(table.Entries, entry)
	}
	return table, nil
}

// TotalValue sums the value column.
func (t *Table) TotalValue() int64 {
	var total int64
	for _, e := range t.Entries {
		total += e.Value
	}
	return total
}

func parseEntry(el *etree.Element) (TableEntry, error) {
	var (
		e   TableEntry
		err error
	)
	for _, f := range []struct {
		tag string
		dst *string
	}{
		{"nameOfIssuer", &e.NameOfIssuer},
		{"titleOfClass", &e.TitleOfClass},
		{"cusip", &e.CUSIP},
		{"investmentDiscretion", &e.InvestmentDiscretion},
	} {
		if *f.dst, err = field.String(el, f.tag); err != nil {
			return TableEntry{}, err
		}
	}
	if e.Value, err = field.Int64(el, "value"); err != nil {
		return TableEntry{}, err
	}

	amt, err := field.Child(el, "shrsOrPrnAmt")
	if err != nil {
		return TableEntry{}, err
	}
	if e.SharesOrPrintAmount.Amount, err = field.Int64(amt, "sshPrnamt"); err != nil {
		return TableEntry{}, err
	}
	if e.SharesOrPrintAmount.Type, err = field.String(amt, "sshPrnamtType"); err != nil {
		return TableEntry{}, err
	}

	voting, err := field.Child(el, "votingAuthority")
	if err != nil {
		return TableEntry{}, err
	}
	if e.VotingAuthority.Sole, err = field.Int64(voting, "Sole"); err != nil {
		return TableEntry{}, err
	}
	if e.VotingAuthority.Shared, err = field.Int64(voting, "Shared"); err != nil {
		return TableEntry{}, err
	}
	if e.VotingAuthority.None, err = field.Int64(voting, "None"); err != nil {
		return TableEntry{}, err
	}

	e.FIGI = field.OptString(el, "figi")
	e.PutCall = field.OptString(el, "putCall")
	e.OtherManager = field.Ints(el, "otherManager")
	if e.OtherManager == nil {
		e.OtherManager = []int32{}
	}
	return e, nil
}
