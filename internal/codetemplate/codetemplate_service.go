package codetemplate

import (
	"context"
	"database/sql"
	"errors"
	"time"

	codetemplateerrors "github.com/davidvasconcellos/PayrollDataExtractor/internal/codetemplate/errors"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/extraction"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, userID string, req CreateCodeTemplateRequest) (CodeTemplateResponse, error)
	GetAll(ctx context.Context, userID string) ([]CodeTemplateResponse, error)
	GetByID(ctx context.Context, userID, id string) (CodeTemplateResponse, error)
	Update(ctx context.Context, userID, id string, req UpdateCodeTemplateRequest) (CodeTemplateResponse, error)
	Delete(ctx context.Context, userID, id string) error
	CodesByID(ctx context.Context, userID, templateID string) (string, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	userID string,
	req CreateCodeTemplateRequest,
) (CodeTemplateResponse, error) {

	uid, err := uuid.Parse(userID)
	if err != nil {
		return CodeTemplateResponse{}, codetemplateerrors.ErrInvalidUserID
	}

	codes := extraction.ParseCodeList(req.Codes)
	if len(codes) == 0 {
		return CodeTemplateResponse{}, codetemplateerrors.ErrEmptyCodeList
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CodeTemplateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	tmpl := &CodeTemplate{
		ID:     uuid.New(),
		UserID: uid,
		Name:   req.Name,
	}
	tmpl.SetCodeList(codes)

	if err := qtx.Create(ctx, tmpl); err != nil {
		return CodeTemplateResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return CodeTemplateResponse{}, err
	}

	return mapToResponse(*tmpl), nil
}

func (s *service) GetAll(ctx context.Context, userID string) ([]CodeTemplateResponse, error) {
	tmpls, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]CodeTemplateResponse, len(tmpls))
	for i, t := range tmpls {
		res[i] = mapToResponse(t)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, userID, id string) (CodeTemplateResponse, error) {
	tmpl, err := s.repo.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CodeTemplateResponse{}, codetemplateerrors.ErrTemplateNotFound
		}
		return CodeTemplateResponse{}, err
	}

	return mapToResponse(*tmpl), nil
}

func (s *service) Update(
	ctx context.Context,
	userID, id string,
	req UpdateCodeTemplateRequest,
) (CodeTemplateResponse, error) {

	codes := extraction.ParseCodeList(req.Codes)
	if len(codes) == 0 {
		return CodeTemplateResponse{}, codetemplateerrors.ErrEmptyCodeList
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CodeTemplateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	tmpl, err := qtx.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CodeTemplateResponse{}, codetemplateerrors.ErrTemplateNotFound
		}
		return CodeTemplateResponse{}, err
	}

	tmpl.Name = req.Name
	tmpl.SetCodeList(codes)

	if err := qtx.Update(ctx, tmpl); err != nil {
		return CodeTemplateResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return CodeTemplateResponse{}, err
	}

	return mapToResponse(*tmpl), nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByIDAndUser(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return codetemplateerrors.ErrTemplateNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, userID, id); err != nil {
		return err
	}

	return tx.Commit()
}

// CodesByID feeds the upload flow when the request names a template
// instead of an inline code list.
func (s *service) CodesByID(ctx context.Context, userID, templateID string) (string, error) {
	tmpl, err := s.repo.FindByIDAndUser(ctx, userID, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", codetemplateerrors.ErrTemplateNotFound
		}
		return "", err
	}
	return tmpl.Codes, nil
}

func mapToResponse(tmpl CodeTemplate) CodeTemplateResponse {
	return CodeTemplateResponse{
		ID:        tmpl.ID.String(),
		Name:      tmpl.Name,
		Codes:     tmpl.CodeList(),
		CreatedAt: tmpl.CreatedAt.Format(time.RFC3339),
		UpdatedAt: tmpl.UpdatedAt.Format(time.RFC3339),
	}
}
