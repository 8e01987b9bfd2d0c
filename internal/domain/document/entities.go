package document

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrUnknownType = errors.New("unknown document type")
)

type Type string

const (
	// Client documents.
	TypeHandwrittenRequest Type = "DEMANDE_MANUSCRITE"
	TypeSignedIDCard       Type = "CNI_SIGNEE"
	TypeOwnershipCert      Type = "CERTIFICAT_PROPRIETE"
	TypeLocationPlan       Type = "PLAN_LOCALISATION"
	TypeCriminalRecord     Type = "CASIER_JUDICIAIRE"
	TypeUtilityBill        Type = "FACTURE_ENEO"

	// Loan documents.
	TypeLoanContract       Type = "CONTRAT_PRET"
	TypeApprovalNotice     Type = "NOTIFICATION_ACCORD"
	TypeSignedAgreement    Type = "CONVENTION_SIGNEE"

	// Disbursement documents.
	TypeDisbursementRequest Type = "DEMANDE_DEBLOCAGE"
	TypeSiteVisitReport     Type = "RAPPORT_VISITE"
	TypeBETReport           Type = "RAPPORT_BET"

	// Insurance documents.
	TypeLifeInsurance Type = "BIA_DGE"
	TypeFireInsurance Type = "BIA_INCENDIE"
	TypeWorksInsurance Type = "BIA_TRC"

	TypeOther Type = "AUTRES"
)

func (t Type) Valid() bool {
	switch t {
	case TypeHandwrittenRequest, TypeSignedIDCard, TypeOwnershipCert,
		TypeLocationPlan, TypeCriminalRecord, TypeUtilityBill,
		TypeLoanContract, TypeApprovalNotice, TypeSignedAgreement,
		TypeDisbursementRequest, TypeSiteVisitReport, TypeBETReport,
		TypeLifeInsurance, TypeFireInsurance, TypeWorksInsurance,
		TypeOther:
		return true
	}
	return false
}

// Document stores file metadata only; the files themselves live in an
// external object store.
type Document struct {
	ID             uint64  `gorm:"primaryKey;column:id" json:"id"`
	ClientID       uint64  `gorm:"column:client_id;not null;index:idx_documents_client" json:"client_id"`
	LoanID         *uint64 `gorm:"column:loan_id;index:idx_documents_loan" json:"loan_id,omitempty"`
	DisbursementID *uint64 `gorm:"column:disbursement_id" json:"disbursement_id,omitempty"`

	Type        Type   `gorm:"column:document_type;size:64;not null" json:"document_type"`
	FileName    string `gorm:"column:file_name;size:255;not null" json:"file_name"`
	FilePath    string `gorm:"column:file_path;size:500;not null" json:"file_path"`
	FileSize    int64  `gorm:"column:file_size" json:"file_size"`
	MimeType    string `gorm:"column:mime_type;size:100" json:"mime_type"`
	Description string `gorm:"type:text" json:"description"`

	UploadedAt time.Time `gorm:"column:uploaded_at;autoCreateTime" json:"uploaded_at"`
	UploadedBy *uint64   `gorm:"column:uploaded_by" json:"uploaded_by,omitempty"`
}

func (Document) TableName() string { return "documents" }
