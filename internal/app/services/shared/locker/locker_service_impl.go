package locker

import (
	"context"
	"fmt"
	"time"

	"oneroom-connector/internal/app/contracts"
	"oneroom-connector/internal/pkg/constvars"
	"oneroom-connector/internal/pkg/exceptions"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type lockService struct {
	redisRepo contracts.RedisRepository
	log       *zap.Logger
}

// NewLockService builds a best-effort distributed lock on top of Redis
// SETNX. Lock values are random so an instance can only release locks it
// owns.
func NewLockService(repo contracts.RedisRepository, logger *zap.Logger) contracts.LockerService {
	return &lockService{redisRepo: repo, log: logger}
}

func (s *lockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	lockValue := uuid.NewString()
	acquired, err := s.redisRepo.TrySetNX(ctx, key, lockValue, expiration)
	if err != nil {
		s.log.Error("lockService.TryLock error calling redisRepo.TrySetNX",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false, "", err
	}
	if !acquired {
		s.log.Info("lockService.TryLock not acquired",
			zap.String(constvars.LoggingRedisKey, key),
		)
		return false, "", nil
	}
	s.log.Info("lockService.TryLock acquired lock",
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockValueKey, lockValue),
		zap.Duration(constvars.LoggingLockTTLKey, expiration),
	)
	return true, lockValue, nil
}

func (s *lockService) Unlock(ctx context.Context, key, lockValue string) error {
	storedVal, err := s.redisRepo.Get(ctx, key)
	if err != nil {
		return err
	}
	if storedVal == "" {
		// Expired or never held; nothing to release.
		return nil
	}

	// Values round-trip through JSON marshaling, hence the quotes.
	expectedValue := fmt.Sprintf("%q", lockValue)
	if storedVal != expectedValue {
		err := exceptions.ErrRedisUnlock(fmt.Errorf("lock not owned by this client"))
		s.log.Error("lockService.Unlock lock ownership mismatch",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}

	return s.redisRepo.Delete(ctx, key)
}
