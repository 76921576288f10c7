package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultRoleCacheTTL = 60 * time.Second

// Resolver determines a user's canonical role. The local role attribute wins
// when present; otherwise the external store is consulted by id, then by
// email. A store failure resolves to RoleUnknown, never an error.
type Resolver struct {
	store  Store
	rdb    *redis.Client
	ttl    time.Duration
	sf     singleflight.Group
	logger *zap.Logger
}

func NewResolver(store Store, rdb *redis.Client, logger ...*zap.Logger) *Resolver {
	l := zap.L().Named("identity.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.resolver")
	}
	return &Resolver{
		store:  store,
		rdb:    rdb,
		ttl:    defaultRoleCacheTTL,
		logger: l,
	}
}

func (r *Resolver) Resolve(ctx context.Context, userID int64, email, localRole string) Role {
	if localRole != "" {
		return NormalizeRole(localRole)
	}

	cacheKey := fmt.Sprintf("identity:role:%d", userID)
	if r.rdb != nil {
		if cached, err := r.rdb.Get(ctx, cacheKey).Result(); err == nil {
			return Role(cached)
		}
	}

	v, err, _ := r.sf.Do(cacheKey, func() (any, error) {
		rec, err := r.lookup(ctx, userID, email)
		if err != nil {
			return RoleUnknown, err
		}
		if rec == nil {
			return RoleUnknown, nil
		}
		return NormalizeRole(rec.Role), nil
	})
	if err != nil {
		r.logger.Warn("role resolution failed, denying by default",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return RoleUnknown
	}

	role := v.(Role)
	if r.rdb != nil && role != RoleUnknown {
		if err := r.rdb.Set(ctx, cacheKey, string(role), r.ttl).Err(); err != nil {
			r.logger.Debug("role cache write failed", zap.Error(err))
		}
	}

	return role
}

// CompanyID resolves the user's company association from the external store.
// ok=false means no usable association, including store failure.
func (r *Resolver) CompanyID(ctx context.Context, userID int64, email string) (int64, bool) {
	rec, err := r.lookup(ctx, userID, email)
	if err != nil {
		r.logger.Warn("company association lookup failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return 0, false
	}
	if rec == nil {
		return 0, false
	}

	return ParseCompanyID(rec.Company)
}

// PromoteToAdmin writes the admin role back to the external store. Best
// effort: the caller treats a failure as sync lag, not as a failed promotion.
func (r *Resolver) PromoteToAdmin(ctx context.Context, userID int64, email string) error {
	if r.rdb != nil {
		r.rdb.Del(ctx, fmt.Sprintf("identity:role:%d", userID))
	}
	return r.store.UpdateRole(ctx, email, RoleAdmin)
}

func (r *Resolver) lookup(ctx context.Context, userID int64, email string) (*Record, error) {
	rec, err := r.store.GetByID(ctx, fmt.Sprintf("%d", userID))
	if err == nil && rec != nil {
		return rec, nil
	}
	if err != nil {
		r.logger.Debug("identity lookup by id failed, trying email",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	return r.store.GetByEmail(ctx, email)
}
