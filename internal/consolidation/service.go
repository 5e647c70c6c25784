package consolidation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/extraction"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const tableKeyPrefix = "consolidation:table:"

// CacheKey names the cached consolidated table of one user. Handlers that
// mutate payslips or alias groups delete this key.
func CacheKey(userID string) string {
	return tableKeyPrefix + userID
}

// PayslipSource yields every stored payslip of a user, rehydrated into
// extraction form.
type PayslipSource interface {
	ListExtracted(ctx context.Context, userID string) ([]extraction.Payslip, error)
}

// AliasSource yields the user's alias directory.
type AliasSource interface {
	ListAliasGroups(ctx context.Context, userID string) ([]AliasGroup, error)
}

type Service interface {
	GetConsolidated(ctx context.Context, userID string) (Result, error)
}

type service struct {
	payslips PayslipSource
	aliases  AliasSource
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(payslips PayslipSource, aliases AliasSource, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("consolidation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("consolidation.service")
	}
	return &service{
		payslips: payslips,
		aliases:  aliases,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) GetConsolidated(ctx context.Context, userID string) (Result, error) {
	cacheKey := CacheKey(userID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var res Result
			if json.Unmarshal([]byte(cached), &res) == nil {
				return res, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		payslips, err := s.payslips.ListExtracted(ctx, userID)
		if err != nil {
			return nil, err
		}

		groups, err := s.aliases.ListAliasGroups(ctx, userID)
		if err != nil {
			return nil, err
		}

		res := Consolidate(payslips, groups)
		SortRowsChronologically(res.Rows)

		if s.rdb != nil {
			if payload, err := json.Marshal(res); err == nil {
				s.rdb.Set(ctx, cacheKey, payload, 1*time.Hour)
			}
		}

		s.logger.Debug("consolidated table rebuilt",
			zap.String("user_id", userID),
			zap.Int("rows", len(res.Rows)),
			zap.Int("codes", len(res.DisplayCodes)),
		)

		return res, nil
	})

	if err != nil {
		return Result{}, err
	}

	return v.(Result), nil
}
