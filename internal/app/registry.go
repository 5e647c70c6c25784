package app

import (
	"context"
	"database/sql"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/auth"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/codegroup"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/codetemplate"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/consolidation"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/extraction"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/messaging/kafka"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/payslip"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// aliasSource bridges the alias directory into consolidation terms without
// the consolidation package knowing about codegroup.
type aliasSource struct {
	groups codegroup.Service
}

func (a aliasSource) ListAliasGroups(ctx context.Context, userID string) ([]consolidation.AliasGroup, error) {
	groups, err := a.groups.ListGroups(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]consolidation.AliasGroup, len(groups))
	for i, g := range groups {
		res[i] = consolidation.AliasGroup{
			DisplayCode: g.DisplayCode,
			DisplayName: g.DisplayName,
			Codes:       g.CodeList(),
		}
	}
	return res, nil
}

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)
	codeGroupRepo := codegroup.NewRepository(gormDB)
	codeTemplateRepo := codetemplate.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Extraction pipeline ---
	assembler := extraction.NewAssembler(extraction.NewExtractor(extraction.WithFallbackScan()))

	// --- Services ---
	authService := auth.NewService(authRepo)
	codeTemplateService := codetemplate.NewService(db, codeTemplateRepo)
	codeGroupService := codegroup.NewService(db, codeGroupRepo)
	payslipService := payslip.NewServiceWithOutbox(db, payslipRepo, assembler, codeTemplateService, outboxRepo)
	consolidationService := consolidation.NewService(
		payslipService,
		aliasSource{groups: codeGroupService},
		rdb,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	payslipHandler := payslip.NewHandlerWithRedis(payslipService, rdb)
	codeGroupHandler := codegroup.NewHandlerWithRedis(codeGroupService, rdb)
	codeTemplateHandler := codetemplate.NewHandler(codeTemplateService)
	consolidationHandler := consolidation.NewHandler(consolidationService, payslipService)

	// --- Routes Registration ---
	logger := zap.L()
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		payslip.RegisterRoutes(api, payslipHandler, logger)
		codegroup.RegisterRoutes(api, codeGroupHandler, logger)
		codetemplate.RegisterRoutes(api, codeTemplateHandler, logger)
		consolidation.RegisterRoutes(api, consolidationHandler, logger)
	}

	return nil
}
