package payslip

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/events"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/extraction"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/messaging/kafka"
	paysliperrors "github.com/davidvasconcellos/PayrollDataExtractor/internal/payslip/errors"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/shared/contextutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assembler runs the extraction pipeline over one uploaded document.
type Assembler interface {
	Assemble(doc []byte, wantedCodes []string, source extraction.Source) ([]extraction.Payslip, error)
}

// CodeProvider resolves a saved template into its wanted-code string.
type CodeProvider interface {
	CodesByID(ctx context.Context, userID, templateID string) (string, error)
}

type Service interface {
	ProcessUpload(ctx context.Context, userID string, document []byte, req UploadPayslipRequest) ([]PayslipResponse, error)
	GetAll(ctx context.Context, userID string) ([]PayslipResponse, error)
	GetByID(ctx context.Context, userID, id string) (PayslipResponse, error)
	Delete(ctx context.Context, userID, id string) error
	ListExtracted(ctx context.Context, userID string) ([]extraction.Payslip, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	assembler Assembler
	templates CodeProvider
	outbox    kafka.OutboxRepository
}

func NewService(db *sql.DB, repo Repository, assembler Assembler, templates CodeProvider) Service {
	return &service{db: db, repo: repo, assembler: assembler, templates: templates}
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	assembler Assembler,
	templates CodeProvider,
	outbox kafka.OutboxRepository,
) Service {
	return &service{db: db, repo: repo, assembler: assembler, templates: templates, outbox: outbox}
}

func (s *service) ProcessUpload(
	ctx context.Context,
	userID string,
	document []byte,
	req UploadPayslipRequest,
) ([]PayslipResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, paysliperrors.ErrInvalidUserID
	}

	source, ok := extraction.ParseSource(req.Source)
	if !ok {
		return nil, paysliperrors.ErrInvalidSource
	}

	if len(document) == 0 {
		return nil, paysliperrors.ErrMissingDocument
	}

	wanted, err := s.resolveWantedCodes(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	extracted, err := s.assembler.Assemble(document, wanted, source)
	if err != nil {
		return nil, paysliperrors.ErrDocumentUnreadable
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	responses := make([]PayslipResponse, 0, len(extracted))
	for _, p := range extracted {
		record := &ProcessedPayslip{
			ID:     uuid.New(),
			UserID: userUUID,
			Date:   p.Date,
			Source: string(p.Source),
		}
		if err := record.SetItems(p.Items); err != nil {
			return nil, err
		}

		// Always an insert: duplicate uploads accumulate additional
		// records rather than upserting.
		if err := qtx.Create(ctx, record); err != nil {
			return nil, err
		}

		if err := s.enqueueProcessedEvent(ctx, tx, record, len(p.Items)); err != nil {
			return nil, err
		}

		responses = append(responses, mapToResponse(record, p.Items))
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return responses, nil
}

func (s *service) resolveWantedCodes(
	ctx context.Context,
	userID string,
	req UploadPayslipRequest,
) ([]string, error) {
	raw := req.Codes
	if raw == "" && req.TemplateID != "" && s.templates != nil {
		templateCodes, err := s.templates.CodesByID(ctx, userID, req.TemplateID)
		if err != nil {
			return nil, err
		}
		raw = templateCodes
	}

	wanted := extraction.ParseCodeList(raw)
	if len(wanted) == 0 {
		return nil, paysliperrors.ErrEmptyCodeList
	}
	return wanted, nil
}

func (s *service) enqueueProcessedEvent(
	ctx context.Context,
	tx *sql.Tx,
	record *ProcessedPayslip,
	itemCount int,
) error {
	if s.outbox == nil {
		return nil
	}

	event := events.PayslipProcessedEvent{
		EventType:  events.PayslipProcessedType,
		UserID:     record.UserID.String(),
		PayslipID:  record.ID.String(),
		Date:       record.Date,
		Source:     record.Source,
		ItemCount:  itemCount,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payslip",
		AggregateID:   record.ID.String(),
		EventType:     events.PayslipProcessedType,
		Topic:         events.PayslipProcessedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAll(ctx context.Context, userID string) ([]PayslipResponse, error) {
	records, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]PayslipResponse, 0, len(records))
	for i := range records {
		items, err := records[i].DecodeItems()
		if err != nil {
			return nil, err
		}
		responses = append(responses, mapToResponse(&records[i], items))
	}
	return responses, nil
}

func (s *service) GetByID(ctx context.Context, userID, id string) (PayslipResponse, error) {
	record, err := s.repo.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, paysliperrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}

	items, err := record.DecodeItems()
	if err != nil {
		return PayslipResponse{}, err
	}
	return mapToResponse(record, items), nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

// ListExtracted rehydrates every stored record back into pipeline form for
// consolidation reads.
func (s *service) ListExtracted(ctx context.Context, userID string) ([]extraction.Payslip, error) {
	records, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	payslips := make([]extraction.Payslip, 0, len(records))
	for i := range records {
		items, err := records[i].DecodeItems()
		if err != nil {
			// A corrupt blob should not block the user's whole history.
			continue
		}
		payslips = append(payslips, extraction.Payslip{
			Date:   records[i].Date,
			Source: extraction.Source(records[i].Source),
			Items:  items,
		})
	}
	return payslips, nil
}

func mapToResponse(record *ProcessedPayslip, items []extraction.LineItem) PayslipResponse {
	itemResponses := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		itemResponses = append(itemResponses, LineItemResponse{
			Code:        item.Code,
			Description: item.Description,
			Value:       item.Value.StringFixed(2),
		})
	}

	resp := PayslipResponse{
		ID:     record.ID.String(),
		Date:   record.Date,
		Source: record.Source,
		Items:  itemResponses,
	}
	if !record.CreatedAt.IsZero() {
		resp.CreatedAt = record.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
