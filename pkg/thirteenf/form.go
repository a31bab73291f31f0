// Package thirteenf decodes SEC Form 13F holdings reports: the cover
// document (edgarSubmission) and the information table listing positions.
package thirteenf

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/saranrapjs/edgar-parser/pkg/field"
	"github.com/saranrapjs/edgar-parser/pkg/xmlnode"
)

// Form is the 13F cover document.
type Form struct {
	SchemaVersion *string    `json:"schemaVersion,omitempty"`
	HeaderData    HeaderData `json:"headerData"`
	FormData      FormData   `json:"formData"`
}

type HeaderData struct {
	SubmissionType string    `json:"submissionType"`
	FilerInfo      FilerInfo `json:"filerInfo"`
}

type FilerInfo struct {
	LiveTestFlag   string         `json:"liveTestFlag"`
	Flags          *Flags         `json:"flags,omitempty"`
	Filer          Filer          `json:"filer"`
	Contact        *Contact       `json:"contact,omitempty"`
	Notifications  *Notifications `json:"notifications,omitempty"`
	PeriodOfReport string         `json:"periodOfReport"`
	DenovoRequest  *bool          `json:"denovoRequest,omitempty"`
}

type Flags struct {
	ConfirmingCopyFlag   *bool `json:"confirmingCopyFlag,omitempty"`
	ReturnCopyFlag       *bool `json:"returnCopyFlag,omitempty"`
	OverrideInternetFlag *bool `json:"overrideInternetFlag,omitempty"`
}

type Filer struct {
	Credentials Credentials `json:"credentials"`
	FileNumber  *string     `json:"fileNumber,omitempty"`
}

// Credentials identify the filer on EDGAR. CCC is the filer's confirmation
// code.
type Credentials struct {
	CIK string `json:"cik"`
	CCC string `json:"ccc"`
}

type Contact struct {
	Name         *string `json:"name,omitempty"`
	PhoneNumber  *string `json:"phoneNumber,omitempty"`
	EmailAddress *string `json:"emailAddress,omitempty"`
}

type Notifications struct {
	EmailAddress *string `json:"emailAddress,omitempty"`
}

type FormData struct {
	CoverPage      CoverPage       `json:"coverPage"`
	SignatureBlock SignatureBlock  `json:"signatureBlock"`
	SummaryPage    *SummaryPage    `json:"summaryPage,omitempty"`
	Documents      []OtherDocument `json:"documents"`
}

type CoverPage struct {
	ReportCalendarOrQuarter    string             `json:"reportCalendarOrQuarter"`
	IsAmendment                *bool              `json:"isAmendment,omitempty"`
	AmendmentNumber            *int32             `json:"amendmentNumber,omitempty"`
	AmendmentInfo              *AmendmentInfo     `json:"amendmentInfo,omitempty"`
	FilingManager              FilingManager      `json:"filingManager"`
	ReportType                 string             `json:"reportType"`
	Form13FFileNumber          *string            `json:"form13FFileNumber,omitempty"`
	CRDNumber                  *int32             `json:"crdNumber,omitempty"`
	SECFileNumber              *string            `json:"secFileNumber,omitempty"`
	OtherManagersInfo          *OtherManagersInfo `json:"otherManagersInfo,omitempty"`
	ProvideInfoForInstruction5 bool               `json:"provideInfoForInstruction5"`
	AdditionalInformation      *string            `json:"additionalInformation,omitempty"`
}

type AmendmentInfo struct {
	AmendmentType               *string `json:"amendmentType,omitempty"`
	ConfDeniedExpired           *bool   `json:"confDeniedExpired,omitempty"`
	DataDeniedExpired           *string `json:"dataDeniedExpired,omitempty"`
	DateReported                *string `json:"dateReported,omitempty"`
	ReasonForNonConfidentiality *string `json:"reasonForNonConfidentiality,omitempty"`
}

type FilingManager struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

type Address struct {
	Street1        string  `json:"street1"`
	Street2        *string `json:"street2,omitempty"`
	City           string  `json:"city"`
	StateOrCountry string  `json:"stateOrCountry"`
	ZipCode        string  `json:"zipCode"`
}

type OtherManagersInfo struct {
	OtherManager *OtherManager `json:"otherManager,omitempty"`
}

type OtherManager struct {
	CIK               *string `json:"cik,omitempty"`
	Name              *string `json:"name,omitempty"`
	Form13FFileNumber *string `json:"form13FFileNumber,omitempty"`
	CRDNumber         *int32  `json:"crdNumber,omitempty"`
	SECFileNumber     *string `json:"secFileNumber,omitempty"`
}

type SignatureBlock struct {
	Name           string `json:"name"`
	Title          string `json:"title"`
	Phone          string `json:"phone"`
	Signature      string `json:"signature"`
	City           string `json:"city"`
	StateOrCountry string `json:"stateOrCountry"`
	SignatureDate  string `json:"signatureDate"`
}

type SummaryPage struct {
	OtherIncludedManagersCount int32                      `json:"otherIncludedManagersCount"`
	TableEntryTotal            int32                      `json:"tableEntryTotal"`
	TableValueTotal            int64                      `json:"tableValueTotal"`
	IsConfidentialOmitted      *bool                      `json:"isConfidentialOmitted,omitempty"`
	OtherManagers              []OtherManagerWithSequence `json:"otherManagers"`
}

// OtherManagerWithSequence is an otherManager2 entry of the summary page.
// Table entries refer to managers by SequenceNumber.
type OtherManagerWithSequence struct {
	SequenceNumber *int32        `json:"sequenceNumber,omitempty"`
	Manager        *OtherManager `json:"manager,omitempty"`
}

type OtherDocument struct {
	ConformedName         *string `json:"conformedName,omitempty"`
	ConformedDocumentType *string `json:"conformedDocumentType,omitempty"`
	Description           *string `json:"description,omitempty"`
	Contents              *string `json:"contents,omitempty"`
}

// ParseForm decodes a 13F cover document. Any missing required element
// fails the whole decode.
func ParseForm(text string) (*Form, error) {
	root, err := xmlnode.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse 13F form: %w", err)
	}

	header, err := parseHeaderData(root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse 13F form: %w", err)
	}
	data, err := parseFormData(root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse 13F form: %w", err)
	}

	return &Form{
		SchemaVersion: field.OptString(root, "schemaVersion"),
		HeaderData:    header,
		FormData:      data,
	}, nil
}

func parseHeaderData(root *etree.Element) (HeaderData, error) {
	el, err := field.Child(root, "headerData")
	if err != nil {
		return HeaderData{}, err
	}
	submissionType, err := field.String(el, "submissionType")
	if err != nil {
		return HeaderData{}, fmt.Errorf("headerData: %w", err)
	}
	info, err := parseFilerInfo(el)
	if err != nil {
		return HeaderData{}, fmt.Errorf("headerData: %w", err)
	}
	return HeaderData{SubmissionType: submissionType, FilerInfo: info}, nil
}

func parseFilerInfo(header *etree.Element) (FilerInfo, error) {
	el, err := field.Child(header, "filerInfo")
	if err != nil {
		return FilerInfo{}, err
	}

	var info FilerInfo
	if info.LiveTestFlag, err = field.String(el, "liveTestFlag"); err != nil {
		return FilerInfo{}, fmt.Errorf("filerInfo: %w", err)
	}
	if info.Filer, err = parseFiler(el); err != nil {
		return FilerInfo{}, fmt.Errorf("filerInfo: %w", err)
	}
	if info.PeriodOfReport, err = field.String(el, "periodOfReport"); err != nil {
		return FilerInfo{}, fmt.Errorf("filerInfo: %w", err)
	}

	if flags := xmlnode.FirstChild(el, "flags"); flags != nil {
		info.Flags = &Flags{
			ConfirmingCopyFlag:   field.OptBool(flags, "confirmingCopyFlag"),
			ReturnCopyFlag:       field.OptBool(flags, "returnCopyFlag"),
			OverrideInternetFlag: field.OptBool(flags, "overrideInternetFlag"),
		}
	}
	if contact := xmlnode.FirstChild(el, "contact"); contact != nil {
		info.Contact = &Contact{
			Name:         field.OptString(contact, "contactName"),
			PhoneNumber:  field.OptString(contact, "contactPhoneNumber"),
			EmailAddress: field.OptString(contact, "contactEmailAddress"),
		}
	}
	if n := xmlnode.FirstChild(el, "notifications"); n != nil {
		info.Notifications = &Notifications{EmailAddress: field.OptString(n, "emailAddress")}
	}
	info.DenovoRequest = field.OptBool(el, "denovoRequest")
	return info, nil
}

func parseFiler(info *etree.Element) (Filer, error) {
	el, err := field.Child(info, "filer")
	if err != nil {
		return Filer{}, err
	}
	creds, err := field.Child(el, "credentials")
	if err != nil {
		return Filer{}, fmt.Errorf("filer: %w", err)
	}
	cik, err := field.String(creds, "cik")
	if err != nil {
		return Filer{}, fmt.Errorf("filer: credentials: %w", err)
	}
	ccc, err := field.String(creds, "ccc")
	if err != nil {
		return Filer{}, fmt.Errorf("filer: credentials: %w", err)
	}
	return Filer{
		Credentials: Credentials{CIK: cik, CCC: ccc},
		FileNumber:  field.OptString(el, "fileNumber"),
	}, nil
}

func parseFormData(root *etree.Element) (FormData, error) {
	el, err := field.Child(root, "formData")
	if err != nil {
		return FormData{}, err
	}

	var data FormData
	if data.CoverPage, err = parseCoverPage(el); err != nil {
		return FormData{}, fmt.Errorf("formData: %w", err)
	}
	if data.SignatureBlock, err = parseSignatureBlock(el); err != nil {
		return FormData{}, fmt.Errorf("formData: %w", err)
	}
	if data.SummaryPage, err = parseSummaryPage(el); err != nil {
		return FormData{}, fmt.Errorf("formData: %w", err)
	}
	data.Documents = parseDocuments(el)
	return data, nil
}

func parseCoverPage(data *etree.Element) (CoverPage, error) {
	el, err := field.Child(data, "coverPage")
	if err != nil {
		return CoverPage{}, err
	}

	var cp CoverPage
	if cp.ReportCalendarOrQuarter, err = field.String(el, "reportCalendarOrQuarter"); err != nil {
		return CoverPage{}, fmt.Errorf("coverPage: %w", err)
	}
	if cp.FilingManager, err = parseFilingManager(el); err != nil {
		return CoverPage{}, fmt.Errorf("coverPage: %w", err)
	}
	if cp.ReportType, err = field.String(el, "reportType"); err != nil {
		return CoverPage{}, fmt.Errorf("coverPage: %w", err)
	}
	if cp.ProvideInfoForInstruction5, err = field.Bool(el, "provideInfoForInstruction5"); err != nil {
		return CoverPage{}, fmt.Errorf("coverPage: %w", err)
	}

	cp.IsAmendment = field.OptBool(el, "isAmendment")
	cp.AmendmentNumber = field.OptInt32(el, "amendmentNo")
	if info := xmlnode.FirstChild(el, "amendmentInfo"); info != nil {
		cp.AmendmentInfo = &AmendmentInfo{
			AmendmentType:               field.OptString(info, "amendmentType"),
			ConfDeniedExpired:           field.OptBool(info, "confDeniedExpired"),
			DataDeniedExpired:           field.OptString(info, "dataDeniedExpired"),
			DateReported:                field.OptString(info, "dateReported"),
			ReasonForNonConfidentiality: field.OptString(info, "reasonForNonConfidentiality"),
		}
	}
	cp.Form13FFileNumber = field.OptString(el, "form13FFileNumber")
	cp.CRDNumber = field.OptInt32(el, "crdNumber")
	cp.SECFileNumber = field.OptString(el, "secFileNumber")
	if info := xmlnode.FirstChild(el, "otherManagersInfo"); info != nil {
		cp.OtherManagersInfo = &OtherManagersInfo{OtherManager: parseOtherManager(info)}
	}
	cp.AdditionalInformation = field.OptString(el, "additionalInformation")
	return cp, nil
}

func parseFilingManager(cover *etree.Element) (FilingManager, error) {
	el, err := field.Child(cover, "filingManager")
	if err != nil {
		return FilingManager{}, err
	}
	name, err := field.String(el, "name")
	if err != nil {
		return FilingManager{}, fmt.Errorf("filingManager: %w", err)
	}
	addr, err := field.Child(el, "address")
	if err != nil {
		return FilingManager{}, fmt.Errorf("filingManager: %w", err)
	}

	a := Address{Street2: field.OptString(addr, "street2")}
	for _, f := range []struct {
		tag string
		dst *string
	}{
		{"street1", &a.Street1},
		{"city", &a.City},
		{"stateOrCountry", &a.StateOrCountry},
		{"zipCode", &a.ZipCode},
	} {
		if *f.dst, err = field.String(addr, f.tag); err != nil {
			return FilingManager{}, fmt.Errorf("filingManager: address: %w", err)
		}
	}
	return FilingManager{Name: name, Address: a}, nil
}

// parseOtherManager reads the first otherManager child of el, if any.
func parseOtherManager(el *etree.Element) *OtherManager {
	m := xmlnode.FirstChild(el, "otherManager")
	if m == nil {
		return nil
	}
	return &OtherManager{
		CIK:               field.OptString(m, "cik"),
		Name:              field.OptString(m, "name"),
		Form13FFileNumber: field.OptString(m, "form13FFileNumber"),
		CRDNumber:         field.OptInt32(m, "crdNumber"),
		SECFileNumber:     field.OptString(m, "secFileNumber"),
	}
}

func parseSignatureBlock(data *etree.Element) (SignatureBlock, error) {
	el, err := field.Child(data, "signatureBlock")
	if err != nil {
		return SignatureBlock{}, err
	}

	var sb SignatureBlock
	for _, f := range []struct {
		tag string
		dst *string
	}{
		{"name", &sb.Name},
		{"title", &sb.Title},
		{"phone", &sb.Phone},
		{"signature", &sb.Signature},
		{"city", &sb.City},
		{"stateOrCountry", &sb.StateOrCountry},
		{"signatureDate", &sb.SignatureDate},
	} {
		if *f.dst, err = field.String(el, f.tag); err != nil {
			return SignatureBlock{}, fmt.Errorf("signatureBlock: %w", err)
		}
	}
	return sb, nil
}

func parseSummaryPage(data *etree.Element) (*SummaryPage, error) {
	el := xmlnode.FirstChild(data, "summaryPage")
	if el == nil {
		return nil, nil
	}

	var (
		sp  SummaryPage
		err error
	)
	if sp.OtherIncludedManagersCount, err = field.Int32(el, "otherIncludedManagersCount"); err != nil {
		return nil, fmt.Errorf("summaryPage: %w", err)
	}
	if sp.TableEntryTotal, err = field.Int32(el, "tableEntryTotal"); err != nil {
		return nil, fmt.Errorf("summaryPage: %w", err)
	}
	if sp.TableValueTotal, err = field.Int64(el, "tableValueTotal"); err != nil {
		return nil, fmt.Errorf("summaryPage: %w", err)
	}
	sp.IsConfidentialOmitted = field.OptBool(el, "isConfidentialOmitted")

	sp.OtherManagers = []OtherManagerWithSequence{}
	for _, info := range xmlnode.Children(el, "otherManagers2Info") {
		for _, m := range xmlnode.Children(info, "otherManager2") {
			sp.OtherManagers = append(sp.OtherManagers, OtherManagerWithSequence{
				SequenceNumber: field.OptInt32(m, "sequenceNumber"),
				Manager:        parseOtherManager(m),
			})
		}
	}
	return &sp, nil
}

func parseDocuments(data *etree.Element) []OtherDocument {
	docs := []OtherDocument{}
	for _, group := range xmlnode.Children(data, "documents") {
		for _, d := range xmlnode.Children(group, "document") {
			docs = append(docs, OtherDocument{
				ConformedName:         field.OptString(d, "conformedName"),
				ConformedDocumentType: field.OptString(d, "conformedDocumentType"),
				Description:           field.OptString(d, "description"),
				Contents:              field.OptString(d, "contents"),
			})
		}
	}
	return docs
}
