package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "cfc-deblocages/internal/domain/document"

	"gorm.io/gorm"
)

// Usecase manages document metadata only; file content lives in an
// external object store referenced by FilePath.
type Usecase struct{ repo domain.Repository }

func NewUsecase(repo domain.Repository) *Usecase { return &Usecase{repo: repo} }

type CreateDocumentInput struct {
	ClientID       uint64  `json:"client_id"`
	LoanID         *uint64 `json:"loan_id,omitempty"`
	DisbursementID *uint64 `json:"disbursement_id,omitempty"`
	Type           string  `json:"document_type"`
	FileName       string  `json:"file_name"`
	FilePath       string  `json:"file_path"`
	FileSize       int64   `json:"file_size"`
	MimeType       string  `json:"mime_type"`
	Description    string  `json:"description"`
	UploadedBy     *uint64 `json:"uploaded_by,omitempty"`
}

type DocumentDTO struct {
	ID          uint64    `json:"id"`
	ClientID    uint64    `json:"client_id"`
	LoanID      *uint64   `json:"loan_id,omitempty"`
	Type        string    `json:"document_type"`
	FileName    string    `json:"file_name"`
	FilePath    string    `json:"file_path"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	Description string    `json:"description"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func (u *Usecase) Create(ctx context.Context, in CreateDocumentInput) (*DocumentDTO, error) {
	if in.ClientID == 0 || in.FileName == "" || in.FilePath == "" {
		return nil, errors.New("client_id, file_name and file_path are required")
	}
	if !domain.Type(in.Type).Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownType, in.Type)
	}
	d := &domain.Document{
		ClientID:       in.ClientID,
		LoanID:         in.LoanID,
		DisbursementID: in.DisbursementID,
		Type:           domain.Type(in.Type),
		FileName:       in.FileName,
		FilePath:       in.FilePath,
		FileSize:       in.FileSize,
		MimeType:       in.MimeType,
		Description:    in.Description,
		UploadedBy:     in.UploadedBy,
	}
	if err := u.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return toDTO(d), nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*DocumentDTO, error) {
	d, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(d), nil
}

func (u *Usecase) ListByLoan(ctx context.Context, loanID uint64) ([]DocumentDTO, error) {
	ds, err := u.repo.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	out := make([]DocumentDTO, 0, len(ds))
	for i := range ds {
		out = append(out, *toDTO(&ds[i]))
	}
	return out, nil
}

func (u *Usecase) ListByClient(ctx context.Context, clientID uint64) ([]DocumentDTO, error) {
	ds, err := u.repo.ListByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]DocumentDTO, 0, len(ds))
	for i := range ds {
		out = append(out, *toDTO(&ds[i]))
	}
	return out, nil
}

func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	if _, err := u.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return u.repo.Delete(ctx, id)
}

func toDTO(d *domain.Document) *DocumentDTO {
	return &DocumentDTO{
		ID:          d.ID,
		ClientID:    d.ClientID,
		LoanID:      d.LoanID,
		Type:        string(d.Type),
		FileName:    d.FileName,
		FilePath:    d.FilePath,
		FileSize:    d.FileSize,
		MimeType:    d.MimeType,
		Description: d.Description,
		UploadedAt:  d.UploadedAt,
	}
}
