package domain

import "time"

// caseDateLayout is the day/month/year form case dates are submitted in.
const caseDateLayout = "2/1/2006"

// Case is the aggregate for a conveyancing transaction.
type Case struct {
	ID        string
	CreatedBy string
	Date      *time.Time
	Active    bool
	Details   CaseDetails
	Colors    map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CaseWithOwner joins the owner's display name onto a case for listings.
type CaseWithOwner struct {
	Case
	OwnerUsername string
}

// CaseDetails carries the milestone and document-status fields of a case.
// Every field is free text; the "Requested"/"Received" pairs track the
// conveyancing documents collected during a transfer.
type CaseDetails struct {
	Reference           string `json:"reference"`
	InstructionReceived string `json:"instructionReceived"`
	Parties             string `json:"parties"`
	Agency              string `json:"agency"`
	PurchasePrice       string `json:"purchasePrice"`
	Agent               string `json:"agent"`
	Property            string `json:"property"`

	DepositAmount        string `json:"depositAmount"`
	DepositDueDate       string `json:"depositDueDate"`
	DepositFulfilledDate string `json:"depositFulfilledDate"`
	BondAmount           string `json:"bondAmount"`
	BondDueDate          string `json:"bondDueDate"`
	BondFulfilledDate    string `json:"bondFulfilledDate"`

	SellerFicaDocumentsRequested              string `json:"sellerFicaDocumentsRequested"`
	SellerFicaDocumentsReceived               string `json:"sellerFicaDocumentsReceived"`
	PurchaserFicaDocumentsRequested           string `json:"purchaserFicaDocumentsRequested"`
	PurchaserFicaDocumentsReceived            string `json:"purchaserFicaDocumentsReceived"`
	TitleDeedRequested                        string `json:"titleDeedRequested"`
	TitleDeedReceived                         string `json:"titleDeedReceived"`
	BondCancellationFiguresRequested          string `json:"bondCancellationFiguresRequested"`
	BondCancellationFiguresReceived           string `json:"bondCancellationFiguresReceived"`
	MunicipalClearanceFiguresRequested        string `json:"municipalClearanceFiguresRequested"`
	MunicipalClearanceFiguresReceived         string `json:"municipalClearanceFiguresReceived"`
	TransferDutyReceiptRequested              string `json:"transferDutyReceiptRequested"`
	TransferDutyReceiptReceived               string `json:"transferDutyReceiptReceived"`
	GuaranteesFromBondAttorneysRequested      string `json:"guaranteesFromBondAttorneysRequested"`
	GuaranteesFromBondAttorneysReceived       string `json:"guaranteesFromBondAttorneysReceived"`
	TransferCostRequested                     string `json:"transferCostRequested"`
	TransferCostReceived                      string `json:"transferCostReceived"`
	ElectricalComplianceCertificateRequested  string `json:"electricalComplianceCertificateRequested"`
	ElectricalComplianceCertificateReceived   string `json:"electricalComplianceCertificateReceived"`
	MunicipalClearanceCertificateRequested    string `json:"municipalClearanceCertificateRequested"`
	MunicipalClearanceCertificateReceived     string `json:"municipalClearanceCertificateReceived"`
	LevyClearanceCertificateRequested         string `json:"levyClearanceCertificateRequested"`
	LevyClearanceCertificateReceived          string `json:"levyClearanceCertificateReceived"`
	HOACertificateRequested                   string `json:"hoaCertificateRequested"`
	HOACertificateReceived                    string `json:"hoaCertificateReceived"`

	TransferSignedSellerDate    string `json:"transferSignedSellerDate"`
	TransferSignedPurchaserDate string `json:"transferSignedPurchaserDate"`
	DocumentsLodgedDate         string `json:"documentsLodgedDate"`
	DeedsPrepDate               string `json:"deedsPrepDate"`
	RegistrationDate            string `json:"registrationDate"`
	Comments                    string `json:"comments"`
}

// ParseCaseDate parses day/month/year text into a calendar date. Empty or
// malformed input yields nil rather than an error: a bad date is stored as
// absent, never rejected.
func ParseCaseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(caseDateLayout, value)
	if err != nil {
		return nil
	}
	return &parsed
}

// FormatCaseDate renders a case date back into day/month/year text.
func FormatCaseDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format(caseDateLayout)
}

// CasePatch is the subset of case fields present in a create or update
// request. Nil means the field was not submitted. Applied fields overwrite
// the stored value wholesale; CreatedBy is never touched.
type CasePatch struct {
	Date   *string        `json:"date"`
	Active *bool          `json:"active"`
	Colors map[string]any `json:"colors"`

	Reference           *string `json:"reference"`
	InstructionReceived *string `json:"instructionReceived"`
	Parties             *string `json:"parties"`
	Agency              *string `json:"agency"`
	PurchasePrice       *string `json:"purchasePrice"`
	Agent               *string `json:"agent"`
	Property            *string `json:"property"`

	DepositAmount        *string `json:"depositAmount"`
	DepositDueDate       *string `json:"depositDueDate"`
	DepositFulfilledDate *string `json:"depositFulfilledDate"`
	BondAmount           *string `json:"bondAmount"`
	BondDueDate          *string `json:"bondDueDate"`
	BondFulfilledDate    *string `json:"bondFulfilledDate"`

	SellerFicaDocumentsRequested             *string `json:"sellerFicaDocumentsRequested"`
	SellerFicaDocumentsReceived              *string `json:"sellerFicaDocumentsReceived"`
	PurchaserFicaDocumentsRequested          *string `json:"purchaserFicaDocumentsRequested"`
	PurchaserFicaDocumentsReceived           *string `json:"purchaserFicaDocumentsReceived"`
	TitleDeedRequested                       *string `json:"titleDeedRequested"`
	TitleDeedReceived                        *string `json:"titleDeedReceived"`
	BondCancellationFiguresRequested         *string `json:"bondCancellationFiguresRequested"`
	BondCancellationFiguresReceived          *string `json:"bondCancellationFiguresReceived"`
	MunicipalClearanceFiguresRequested       *string `json:"municipalClearanceFiguresRequested"`
	MunicipalClearanceFiguresReceived        *string `json:"municipalClearanceFiguresReceived"`
	TransferDutyReceiptRequested             *string `json:"transferDutyReceiptRequested"`
	TransferDutyReceiptReceived              *string `json:"transferDutyReceiptReceived"`
	GuaranteesFromBondAttorneysRequested     *string `json:"guaranteesFromBondAttorneysRequested"`
	GuaranteesFromBondAttorneysReceived      *string `json:"guaranteesFromBondAttorneysReceived"`
	TransferCostRequested                    *string `json:"transferCostRequested"`
	TransferCostReceived                     *string `json:"transferCostReceived"`
	ElectricalComplianceCertificateRequested *string `json:"electricalComplianceCertificateRequested"`
	ElectricalComplianceCertificateReceived  *string `json:"electricalComplianceCertificateReceived"`
	MunicipalClearanceCertificateRequested   *string `json:"municipalClearanceCertificateRequested"`
	MunicipalClearanceCertificateReceived    *string `json:"municipalClearanceCertificateReceived"`
	LevyClearanceCertificateRequested        *string `json:"levyClearanceCertificateRequested"`
	LevyClearanceCertificateReceived         *string `json:"levyClearanceCertificateReceived"`
	HOACertificateRequested                  *string `json:"hoaCertificateRequested"`
	HOACertificateReceived                   *string `json:"hoaCertificateReceived"`

	TransferSignedSellerDate    *string `json:"transferSignedSellerDate"`
	TransferSignedPurchaserDate *string `json:"transferSignedPurchaserDate"`
	DocumentsLodgedDate         *string `json:"documentsLodgedDate"`
	DeedsPrepDate               *string `json:"deedsPrepDate"`
	RegistrationDate            *string `json:"registrationDate"`
	Comments                    *string `json:"comments"`
}

// Apply merges the submitted fields over the stored case. Omitted fields keep
// their existing values; the date is re-parsed when resubmitted.
func (p *CasePatch) Apply(c *Case) {
	if p.Date != nil {
		c.Date = ParseCaseDate(*p.Date)
	}
	if p.Active != nil {
		c.Active = *p.Active
	}
	if p.Colors != nil {
		c.Colors = p.Colors
	}

	d := &c.Details
	assign(&d.Reference, p.Reference)
	assign(&d.InstructionReceived, p.InstructionReceived)
	assign(&d.Parties, p.Parties)
	assign(&d.Agency, p.Agency)
	assign(&d.PurchasePrice, p.PurchasePrice)
	assign(&d.Agent, p.Agent)
	assign(&d.Property, p.Property)

	assign(&d.DepositAmount, p.DepositAmount)
	assign(&d.DepositDueDate, p.DepositDueDate)
	assign(&d.DepositFulfilledDate, p.DepositFulfilledDate)
	assign(&d.BondAmount, p.BondAmount)
	assign(&d.BondDueDate, p.BondDueDate)
	assign(&d.BondFulfilledDate, p.BondFulfilledDate)

	assign(&d.SellerFicaDocumentsRequested, p.SellerFicaDocumentsRequested)
	assign(&d.SellerFicaDocumentsReceived, p.SellerFicaDocumentsReceived)
	assign(&d.PurchaserFicaDocumentsRequested, p.PurchaserFicaDocumentsRequested)
	assign(&d.PurchaserFicaDocumentsReceived, p.PurchaserFicaDocumentsReceived)
	assign(&d.TitleDeedRequested, p.TitleDeedRequested)
	assign(&d.TitleDeedReceived, p.TitleDeedReceived)
	assign(&d.BondCancellationFiguresRequested, p.BondCancellationFiguresRequested)
	assign(&d.BondCancellationFiguresReceived, p.BondCancellationFiguresReceived)
	assign(&d.MunicipalClearanceFiguresRequested, p.MunicipalClearanceFiguresRequested)
	assign(&d.MunicipalClearanceFiguresReceived, p.MunicipalClearanceFiguresReceived)
	assign(&d.TransferDutyReceiptRequested, p.TransferDutyReceiptRequested)
	assign(&d.TransferDutyReceiptReceived, p.TransferDutyReceiptReceived)
	assign(&d.GuaranteesFromBondAttorneysRequested, p.GuaranteesFromBondAttorneysRequested)
	assign(&d.GuaranteesFromBondAttorneysReceived, p.GuaranteesFromBondAttorneysReceived)
	assign(&d.TransferCostRequested, p.TransferCostRequested)
	assign(&d.TransferCostReceived, p.TransferCostReceived)
	assign(&d.ElectricalComplianceCertificateRequested, p.ElectricalComplianceCertificateRequested)
	assign(&d.ElectricalComplianceCertificateReceived, p.ElectricalComplianceCertificateReceived)
	assign(&d.MunicipalClearanceCertificateRequested, p.MunicipalClearanceCertificateRequested)
	assign(&d.MunicipalClearanceCertificateReceived, p.MunicipalClearanceCertificateReceived)
	assign(&d.LevyClearanceCertificateRequested, p.LevyClearanceCertificateRequested)
	assign(&d.LevyClearanceCertificateReceived, p.LevyClearanceCertificateReceived)
	assign(&d.HOACertificateRequested, p.HOACertificateRequested)
	assign(&d.HOACertificateReceived, p.HOACertificateReceived)

	assign(&d.TransferSignedSellerDate, p.TransferSignedSellerDate)
	assign(&d.TransferSignedPurchaserDate, p.TransferSignedPurchaserDate)
	assign(&d.DocumentsLodgedDate, p.DocumentsLodgedDate)
	assign(&d.DeedsPrepDate, p.DeedsPrepDate)
	assign(&d.RegistrationDate, p.RegistrationDate)
	assign(&d.Comments, p.Comments)
}

func assign(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
