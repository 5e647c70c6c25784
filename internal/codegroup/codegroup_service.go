package codegroup

import (
	"context"
	"database/sql"
	"errors"
	"time"

	codegrouperrors "github.com/davidvasconcellos/PayrollDataExtractor/internal/codegroup/errors"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/extraction"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, userID string, req CreateCodeGroupRequest) (CodeGroupResponse, error)
	GetAll(ctx context.Context, userID string) ([]CodeGroupResponse, error)
	GetByID(ctx context.Context, userID, id string) (CodeGroupResponse, error)
	Update(ctx context.Context, userID, id string, req UpdateCodeGroupRequest) (CodeGroupResponse, error)
	Delete(ctx context.Context, userID, id string) error
	ListGroups(ctx context.Context, userID string) ([]CodeGroup, error)
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
	req CreateCodeGroupRequest,
) (CodeGroupResponse, error) {

	uid, err := uuid.Parse(userID)
	if err != nil {
		return CodeGroupResponse{}, codegrouperrors.ErrInvalidUserID
	}

	codes := extraction.ParseCodeList(req.Codes)
	if len(codes) == 0 {
		return CodeGroupResponse{}, codegrouperrors.ErrEmptyCodeList
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CodeGroupResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := s.checkCodeConflicts(ctx, userID, "", codes); err != nil {
		return CodeGroupResponse{}, err
	}

	group := &CodeGroup{
		ID:          uuid.New(),
		UserID:      uid,
		DisplayCode: req.DisplayCode,
		DisplayName: req.DisplayName,
	}
	group.SetCodeList(codes)

	if err := qtx.Create(ctx, group); err != nil {
		return CodeGroupResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return CodeGroupResponse{}, err
	}

	return mapToResponse(*group), nil
}

func (s *service) GetAll(ctx context.Context, userID string) ([]CodeGroupResponse, error) {
	groups, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]CodeGroupResponse, len(groups))
	for i, g := range groups {
		res[i] = mapToResponse(g)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, userID, id string) (CodeGroupResponse, error) {
	group, err := s.repo.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CodeGroupResponse{}, codegrouperrors.ErrGroupNotFound
		}
		return CodeGroupResponse{}, err
	}

	return mapToResponse(*group), nil
}

func (s *service) Update(
	ctx context.Context,
	userID, id string,
	req UpdateCodeGroupRequest,
) (CodeGroupResponse, error) {

	codes := extraction.ParseCodeList(req.Codes)
	if len(codes) == 0 {
		return CodeGroupResponse{}, codegrouperrors.ErrEmptyCodeList
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CodeGroupResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	group, err := qtx.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CodeGroupResponse{}, codegrouperrors.ErrGroupNotFound
		}
		return CodeGroupResponse{}, err
	}

	if err := s.checkCodeConflicts(ctx, userID, id, codes); err != nil {
		return CodeGroupResponse{}, err
	}

	group.DisplayCode = req.DisplayCode
	group.DisplayName = req.DisplayName
	group.SetCodeList(codes)

	if err := qtx.Update(ctx, group); err != nil {
		return CodeGroupResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return CodeGroupResponse{}, err
	}

	return mapToResponse(*group), nil
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
			return codegrouperrors.ErrGroupNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, userID, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) ListGroups(ctx context.Context, userID string) ([]CodeGroup, error) {
	return s.repo.FindAllByUser(ctx, userID)
}

// checkCodeConflicts rejects codes already claimed by another group of the
// same user. excludeID skips the group being updated.
func (s *service) checkCodeConflicts(
	ctx context.Context,
	userID, excludeID string,
	codes []string,
) error {

	groups, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return err
	}

	claimed := make(map[string]struct{})
	for _, g := range groups {
		if g.ID.String() == excludeID {
			continue
		}
		for _, code := range g.CodeList() {
			claimed[code] = struct{}{}
		}
	}

	for _, code := range codes {
		if _, taken := claimed[code]; taken {
			return codegrouperrors.ErrCodeAlreadyGrouped
		}
	}

	return nil
}

func mapToResponse(group CodeGroup) CodeGroupResponse {
	return CodeGroupResponse{
		ID:          group.ID.String(),
		DisplayCode: group.DisplayCode,
		DisplayName: group.DisplayName,
		Codes:       group.CodeList(),
		CreatedAt:   group.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   group.UpdatedAt.Format(time.RFC3339),
	}
}
