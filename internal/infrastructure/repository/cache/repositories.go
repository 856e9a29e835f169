package cache

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/cbb-tracker/internal/domain/team"
	basecache "github.com/riskibarqy/cbb-tracker/internal/platform/cache"
)

// TeamRepository is a read-through cache over a team store. Reports and game
// logs resolve the same few team names once per row.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store[cachedTeamByID]
}

// NewTeamRepository caches lookups, including misses, for ttl.
func NewTeamRepository(next team.Repository, ttl time.Duration) *TeamRepository {
	return &TeamRepository{next: next, cache: basecache.NewStore[cachedTeamByID](ttl)}
}

func (r *TeamRepository) Insert(ctx context.Context, item team.Team) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}
	// a slug or conference may have been backfilled
	r.cache.Delete(ctx, teamKey(item.ID))
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	cached, err := r.cache.GetOrLoad(ctx, teamKey(teamID), func(ctx context.Context) (cachedTeamByID, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return cachedTeamByID{}, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}
	return cached.value, cached.exists, nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

func teamKey(teamID string) string {
	return "team:id:" + strings.TrimSpace(teamID)
}
