package codegroup_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/codegroup"
	codegrouperrors "github.com/davidvasconcellos/PayrollDataExtractor/internal/codegroup/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeCodeGroupRepository struct {
	withTxFn          func(tx *sql.Tx) codegroup.Repository
	createFn          func(ctx context.Context, group *codegroup.CodeGroup) error
	findAllByUserFn   func(ctx context.Context, userID string) ([]codegroup.CodeGroup, error)
	findByIDAndUserFn func(ctx context.Context, userID, id string) (*codegroup.CodeGroup, error)
	updateFn          func(ctx context.Context, group *codegroup.CodeGroup) error
	deleteFn          func(ctx context.Context, userID, id string) error
}

func (f *fakeCodeGroupRepository) WithTx(tx *sql.Tx) codegroup.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeCodeGroupRepository) Create(ctx context.Context, group *codegroup.CodeGroup) error {
	if f.createFn != nil {
		return f.createFn(ctx, group)
	}
	return nil
}

func (f *fakeCodeGroupRepository) FindAllByUser(ctx context.Context, userID string) ([]codegroup.CodeGroup, error) {
	if f.findAllByUserFn != nil {
		return f.findAllByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeCodeGroupRepository) FindByIDAndUser(ctx context.Context, userID, id string) (*codegroup.CodeGroup, error) {
	if f.findByIDAndUserFn != nil {
		return f.findByIDAndUserFn(ctx, userID, id)
	}
	return nil, nil
}

func (f *fakeCodeGroupRepository) Update(ctx context.Context, group *codegroup.CodeGroup) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, group)
	}
	return nil
}

func (f *fakeCodeGroupRepository) Delete(ctx context.Context, userID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, userID, id)
	}
	return nil
}

type codeGroupServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service codegroup.Service
	repo    *fakeCodeGroupRepository
}

func setupCodeGroupServiceTest(t *testing.T) *codeGroupServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeCodeGroupRepository{}
	svc := codegroup.NewService(db, repo)

	return &codeGroupServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func existingGroup(userID, displayCode string, codes string) codegroup.CodeGroup {
	return codegroup.CodeGroup{
		ID:          uuid.New(),
		UserID:      uuid.MustParse(userID),
		DisplayCode: displayCode,
		DisplayName: "Grupo " + displayCode,
		Codes:       codes,
	}
}

func TestCodeGroupService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	deps := setupCodeGroupServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	var created *codegroup.CodeGroup
	deps.repo.createFn = func(ctx context.Context, group *codegroup.CodeGroup) error {
		created = group
		return nil
	}

	resp, err := deps.service.Create(ctx, userID, codegroup.CreateCodeGroupRequest{
		DisplayCode: "SAL",
		DisplayName: "Salario Base",
		Codes:       "0010, 0125; 0300",
	})

	assert.NoError(t, err)
	assert.Equal(t, "SAL", resp.DisplayCode)
	assert.Equal(t, []string{"0010", "0125", "0300"}, resp.Codes)
	assert.NotNil(t, created)
	assert.Equal(t, "0010 0125 0300", created.Codes)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestCodeGroupService_Create_CodeClaimedByOtherGroup(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	deps := setupCodeGroupServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)

	deps.repo.findAllByUserFn = func(ctx context.Context, uid string) ([]codegroup.CodeGroup, error) {
		return []codegroup.CodeGroup{existingGroup(userID, "SAL", "0010 0020")}, nil
	}

	_, err := deps.service.Create(ctx, userID, codegroup.CreateCodeGroupRequest{
		DisplayCode: "ADI",
		DisplayName: "Adicionais",
		Codes:       "0020 0030",
	})

	assert.ErrorIs(t, err, codegrouperrors.ErrCodeAlreadyGrouped)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestCodeGroupService_Create_EmptyCodes(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	deps := setupCodeGroupServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.Create(ctx, userID, codegroup.CreateCodeGroupRequest{
		DisplayCode: "SAL",
		DisplayName: "Salario",
		Codes:       " ;, ",
	})

	assert.ErrorIs(t, err, codegrouperrors.ErrEmptyCodeList)
}

func TestCodeGroupService_Update_AllowsOwnCodes(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	deps := setupCodeGroupServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	group := existingGroup(userID, "SAL", "0010 0020")
	deps.repo.findByIDAndUserFn = func(ctx context.Context, uid, id string) (*codegroup.CodeGroup, error) {
		g := group
		return &g, nil
	}
	deps.repo.findAllByUserFn = func(ctx context.Context, uid string) ([]codegroup.CodeGroup, error) {
		return []codegroup.CodeGroup{group}, nil
	}

	var updated *codegroup.CodeGroup
	deps.repo.updateFn = func(ctx context.Context, g *codegroup.CodeGroup) error {
		updated = g
		return nil
	}

	// Keeping 0010 while adding 0030 must not conflict with itself.
	resp, err := deps.service.Update(ctx, userID, group.ID.String(), codegroup.UpdateCodeGroupRequest{
		DisplayCode: "SAL",
		DisplayName: "Salario Base",
		Codes:       "0010 0030",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"0010", "0030"}, resp.Codes)
	assert.NotNil(t, updated)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestCodeGroupService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	deps := setupCodeGroupServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)

	deps.repo.findByIDAndUserFn = func(ctx context.Context, uid, id string) (*codegroup.CodeGroup, error) {
		return nil, gorm.ErrRecordNotFound
	}

	err := deps.service.Delete(ctx, userID, uuid.New().String())

	assert.ErrorIs(t, err, codegrouperrors.ErrGroupNotFound)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
