package codetemplate_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/codetemplate"
	codetemplateerrors "github.com/davidvasconcellos/PayrollDataExtractor/internal/codetemplate/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeCodeTemplateRepository struct {
	withTxFn          func(tx *sql.Tx) codetemplate.Repository
	createFn          func(ctx context.Context, tmpl *codetemplate.CodeTemplate) error
	findAllByUserFn   func(ctx context.Context, userID string) ([]codetemplate.CodeTemplate, error)
	findByIDAndUserFn func(ctx context.Context, userID, id string) (*codetemplate.CodeTemplate, error)
	updateFn          func(ctx context.Context, tmpl *codetemplate.CodeTemplate) error
	deleteFn          func(ctx context.Context, userID, id string) error
}

func (f *fakeCodeTemplateRepository) WithTx(tx *sql.Tx) codetemplate.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeCodeTemplateRepository) Create(ctx context.Context, tmpl *codetemplate.CodeTemplate) error {
	if f.createFn != nil {
		return f.createFn(ctx, tmpl)
	}
	return nil
}

func (f *fakeCodeTemplateRepository) FindAllByUser(ctx context.Context, userID string) ([]codetemplate.CodeTemplate, error) {
	if f.findAllByUserFn != nil {
		return f.findAllByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeCodeTemplateRepository) FindByIDAndUser(ctx context.Context, userID, id string) (*codetemplate.CodeTemplate, error) {
	if f.findByIDAndUserFn != nil {
		return f.findByIDAndUserFn(ctx, userID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCodeTemplateRepository) Update(ctx context.Context, tmpl *codetemplate.CodeTemplate) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, tmpl)
	}
	return nil
}

func (f *fakeCodeTemplateRepository) Delete(ctx context.Context, userID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, userID, id)
	}
	return nil
}

func setupCodeTemplateServiceTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *fakeCodeTemplateRepository, codetemplate.Service) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeCodeTemplateRepository{}
	svc := codetemplate.NewService(db, repo)
	return db, sqlMock, repo, svc
}

func TestCodeTemplateService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	db, sqlMock, repo, svc := setupCodeTemplateServiceTest(t)
	defer db.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	var created *codetemplate.CodeTemplate
	repo.createFn = func(ctx context.Context, tmpl *codetemplate.CodeTemplate) error {
		created = tmpl
		return nil
	}

	resp, err := svc.Create(ctx, userID, codetemplate.CreateCodeTemplateRequest{
		Name:  "Holerite mensal",
		Codes: "0010,0020;0125",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Holerite mensal", resp.Name)
	assert.Equal(t, []string{"0010", "0020", "0125"}, resp.Codes)
	assert.NotNil(t, created)
	assert.Equal(t, "0010 0020 0125", created.Codes)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestCodeTemplateService_Create_EmptyCodes(t *testing.T) {
	ctx := context.Background()

	db, _, _, svc := setupCodeTemplateServiceTest(t)
	defer db.Close()

	_, err := svc.Create(ctx, uuid.New().String(), codetemplate.CreateCodeTemplateRequest{
		Name:  "Vazio",
		Codes: " ; , ",
	})

	assert.ErrorIs(t, err, codetemplateerrors.ErrEmptyCodeList)
}

func TestCodeTemplateService_CodesByID(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()
	templateID := uuid.New()

	db, _, repo, svc := setupCodeTemplateServiceTest(t)
	defer db.Close()

	t.Run("found", func(t *testing.T) {
		repo.findByIDAndUserFn = func(ctx context.Context, uid, id string) (*codetemplate.CodeTemplate, error) {
			assert.Equal(t, userID, uid)
			assert.Equal(t, templateID.String(), id)
			return &codetemplate.CodeTemplate{
				ID:     templateID,
				UserID: uuid.MustParse(userID),
				Name:   "Holerite mensal",
				Codes:  "0010 0020",
			}, nil
		}

		codes, err := svc.CodesByID(ctx, userID, templateID.String())
		assert.NoError(t, err)
		assert.Equal(t, "0010 0020", codes)
	})

	t.Run("not found", func(t *testing.T) {
		repo.findByIDAndUserFn = func(ctx context.Context, uid, id string) (*codetemplate.CodeTemplate, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := svc.CodesByID(ctx, userID, uuid.New().String())
		assert.ErrorIs(t, err, codetemplateerrors.ErrTemplateNotFound)
	})
}

func TestCodeTemplateService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()

	db, sqlMock, _, svc := setupCodeTemplateServiceTest(t)
	defer db.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	err := svc.Delete(ctx, uuid.New().String(), uuid.New().String())

	assert.ErrorIs(t, err, codetemplateerrors.ErrTemplateNotFound)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
