package espn

import (
	"github.com/riskibarqy/cbb-tracker/external/httpjson"
	"github.com/riskibarqy/cbb-tracker/internal/usecase"
)

// parseCatalog walks sports[].leagues[].teams[].team. The league name is
// used as the conference when the team row carries none.
func parseCatalog(doc map[string]any) []usecase.ExternalTeam {
	out := make([]usecase.ExternalTeam, 0, 400)
	seen := make(map[string]struct{})
	for _, sport := range httpjson.Slice(doc, "sports") {
		sportObj, ok := sport.(map[string]any)
		if !ok {
			continue
		}
		for _, league := range httpjson.Slice(sportObj, "leagues") {
			leagueObj, ok := league.(map[string]any)
			if !ok {
				continue
			}
			conference := httpjson.FirstNonEmpty(httpjson.String(leagueObj, "name"), httpjson.String(leagueObj, "shortName"))
			for _, entry := range httpjson.Slice(leagueObj, "teams") {
				entryObj, ok := entry.(map[string]any)
				if !ok {
					continue
				}
				teamObj := httpjson.Map(entryObj, "team")
				if teamObj == nil {
					teamObj = entryObj
				}
				item := parseTeam(teamObj)
				if item.ID == "" {
					continue
				}
				if _, dup := seen[item.ID]; dup {
					continue
				}
				seen[item.ID] = struct{}{}
				if item.Conference == "" {
					item.Conference = conference
				}
				out = append(out, item)
			}
		}
	}
	return out
}

func parseTeam(src map[string]any) usecase.ExternalTeam {
	if src == nil {
		return usecase.ExternalTeam{}
	}
	conference := ""
	if groups := httpjson.Map(src, "groups"); groups != nil {
		conference = httpjson.FirstNonEmpty(httpjson.String(groups, "name"), httpjson.String(groups, "shortName"))
	}
	return usecase.ExternalTeam{
		ID:               httpjson.String(src, "id"),
		DisplayName:      httpjson.String(src, "displayName"),
		ShortDisplayName: httpjson.String(src, "shortDisplayName"),
		Abbreviation:     httpjson.String(src, "abbreviation"),
		Location:         httpjson.String(src, "location"),
		Name:             httpjson.String(src, "name"),
		Slug:             httpjson.String(src, "slug"),
		Conference:       conference,
	}
}
