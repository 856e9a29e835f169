package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/cbb-tracker/internal/domain/player"
	"github.com/riskibarqy/cbb-tracker/internal/domain/team"
	"github.com/riskibarqy/cbb-tracker/internal/platform/cache"
	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const defaultCatalogTTL = 10 * time.Minute

// DefaultESPNAliases maps frequently used team names to ESPN team ids.
func DefaultESPNAliases() map[string]string {
	return map[string]string{
		"duke":           "150",
		"unc":            "153",
		"north carolina": "153",
		"kentucky":       "96",
		"kansas":         "2305",
		"gonzaga":        "2250",
		"uconn":          "41",
		"connecticut":    "41",
		"houston":        "248",
		"purdue":         "2509",
		"auburn":         "2",
		"alabama":        "333",
		"arizona":        "12",
		"tennessee":      "2633",
		"michigan state": "127",
		"villanova":      "222",
	}
}

type ResolverConfig struct {
	// Aliases keys are matched case-insensitively.
	Aliases    map[string]string
	CatalogTTL time.Duration
}

// ResolverService maps human team and player names to provider identities.
type ResolverService struct {
	provider   StatsProvider
	playerRepo player.Repository
	aliases    map[string]string
	catalog    *cache.Store[[]ExternalTeam]
	logger     *logging.Logger
}

func NewResolverService(provider StatsProvider, playerRepo player.Repository, cfg ResolverConfig, logger *logging.Logger) *ResolverService {
	if logger == nil {
		logger = logging.Default()
	}
	ttl := cfg.CatalogTTL
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}

	aliases := make(map[string]string, len(cfg.Aliases))
	for name, id := range cfg.Aliases {
		aliases[normalizeKey(name)] = strings.TrimSpace(id)
	}

	return &ResolverService{
		provider:   provider,
		playerRepo: playerRepo,
		aliases:    aliases,
		catalog:    cache.NewStore[[]ExternalTeam](ttl),
		logger:     logger,
	}
}

// Catalog returns the provider team catalog, fetched at most once per TTL.
func (s *ResolverService) Catalog(ctx context.Context) ([]ExternalTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.Catalog")
	defer span.End()

	teams, err := s.catalog.GetOrLoad(ctx, s.provider.Name(), func(ctx context.Context) ([]ExternalTeam, error) {
		items, err := s.provider.FetchTeamCatalog(ctx)
		if err != nil {
			return nil, err
		}
		s.logger.DebugContext(ctx, "team catalog loaded", "provider", s.provider.Name(), "teams", len(items))
		return items, nil
	})
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("fetch team catalog: %w", err)
	}
	return teams, nil
}

// ResolveTeam resolves an id, an alias or an exact catalog name. There is no
// fuzzy fallback: a miss is a *ResolutionError.
func (s *ResolverService) ResolveTeam(ctx context.Context, nameOrID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.ResolveTeam",
		attribute.String("team.query", nameOrID),
	)
	defer span.End()

	query := strings.TrimSpace(nameOrID)
	if query == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	if isNumeric(query) {
		return s.fetchTeam(ctx, query)
	}
	if id, ok := s.aliases[normalizeKey(query)]; ok && id != "" {
		return s.fetchTeam(ctx, id)
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		recordSpanError(span, err)
		return team.Team{}, err
	}
	if item, ok := MatchTeamExact(catalog, query); ok {
		return item.ToTeam(), nil
	}

	err = &ResolutionError{Provider: s.provider.Name(), Query: query}
	recordSpanError(span, err)
	return team.Team{}, err
}

func (s *ResolverService) fetchTeam(ctx context.Context, teamID string) (team.Team, error) {
	item, err := s.provider.FetchTeam(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("fetch team id=%s: %w", teamID, err)
	}
	if strings.TrimSpace(item.ID) == "" {
		item.ID = teamID
	}
	return item.ToTeam(), nil
}

// ResolveStoredPlayers looks a name up in the store: exact first, then partial.
func (s *ResolverService) ResolveStoredPlayers(ctx context.Context, name, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.ResolveStoredPlayers")
	defer span.End()

	if s.playerRepo == nil {
		return nil, fmt.Errorf("%w: player repository is not configured", ErrConfiguration)
	}
	players, err := s.playerRepo.FindByName(ctx, name, teamID)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("find players name=%s: %w", name, err)
	}
	return players, nil
}

// MatchTeamExact finds the first catalog team with any key equal to query,
// ignoring case.
func MatchTeamExact(catalog []ExternalTeam, query string) (ExternalTeam, bool) {
	query = normalizeKey(query)
	if query == "" {
		return ExternalTeam{}, false
	}
	for _, item := range catalog {
		for _, key := range item.Keys() {
			if normalizeKey(key) == query {
				return item, true
			}
		}
	}
	return ExternalTeam{}, false
}

// RosterEntry is one candidate athlete for tracked-name matching.
type RosterEntry struct {
	PlayerID string
	Name     string
	TeamID   string
}

// MatchRoster matches tracked names against candidates: exact names
// (ignoring case) win, otherwise every candidate containing the name matches.
// A non-empty teamID drops candidates of other teams. Names without a match
// are absent from the result.
func MatchRoster(names []string, candidates []RosterEntry, teamID string) map[string][]RosterEntry {
	teamID = strings.TrimSpace(teamID)
	pool := make([]RosterEntry, 0, len(candidates))
	for _, item := range candidates {
		if teamID != "" && item.TeamID != teamID {
			continue
		}
		pool = append(pool, item)
	}

	out := make(map[string][]RosterEntry)
	for _, name := range names {
		want := normalizeKey(name)
		if want == "" {
			continue
		}

		var exact, partial []RosterEntry
		for _, item := range pool {
			got := normalizeKey(item.Name)
			switch {
			case got == want:
				exact = append(exact, item)
			case strings.Contains(got, want):
				partial = append(partial, item)
			}
		}
		matched := exact
		if len(matched) == 0 {
			matched = partial
		}
		if len(matched) > 0 {
			out[name] = matched
		}
	}
	return out
}

// FilterTeams keeps catalog teams whose conference contains any filter
// (ignoring case), orders them by name and truncates to maxTeams when positive.
func FilterTeams(catalog []ExternalTeam, conferences []string, maxTeams int) []ExternalTeam {
	filters := make([]string, 0, len(conferences))
	for _, item := range conferences {
		if v := normalizeKey(item); v != "" {
			filters = append(filters, v)
		}
	}

	out := make([]ExternalTeam, 0, len(catalog))
	for _, item := range catalog {
		if len(filters) > 0 && !containsAny(normalizeKey(item.Conference), filters) {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return normalizeKey(out[i].ToTeam().Name) < normalizeKey(out[j].ToTeam().Name)
	})
	if maxTeams > 0 && len(out) > maxTeams {
		out = out[:maxTeams]
	}
	return out
}

func containsAny(value string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(value, needle) {
			return true
		}
	}
	return false
}

func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
