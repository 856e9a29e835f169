package team

import (
	"fmt"
	"strings"
)

// Team is a provider-identified basketball program.
type Team struct {
	ID         string
	Name       string
	Slug       string
	Conference string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// DisplaySlug returns the slug, falling back to the name and then the id.
func (t Team) DisplaySlug() string {
	for _, candidate := range []string{t.Slug, t.Name, t.ID} {
		if v := strings.TrimSpace(candidate); v != "" {
			return v
		}
	}
	return ""
}
