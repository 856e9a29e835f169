package player

import (
	"fmt"
	"strings"
)

// IdentityKind tells whether a player id was issued by the provider or
// synthesized from non-unique data.
type IdentityKind string

const (
	IdentityProvider IdentityKind = "provider"
	IdentityWeak     IdentityKind = "weak"
)

// Ref is the player identity carried by a box-score line.
type Ref struct {
	ID   string
	Name string
	Kind IdentityKind
}

// ProviderRef builds a ref for a provider-issued athlete id. An empty id
// degrades to a weak ref keyed by the display name.
func ProviderRef(id, name string) Ref {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" {
		return WeakRef(name)
	}
	return Ref{ID: id, Name: name, Kind: IdentityProvider}
}

// WeakRef builds a ref whose id is the display name itself.
func WeakRef(name string) Ref {
	name = strings.TrimSpace(name)
	return Ref{ID: name, Name: name, Kind: IdentityWeak}
}

func (r Ref) IsWeak() bool {
	return r.Kind == IdentityWeak
}

// StorageID returns the id persisted for this ref on the given team. Weak ids
// are scoped to the team as "name|team_id"; two players sharing a name on the
// same team still collide.
func (r Ref) StorageID(teamID string) string {
	if !r.IsWeak() {
		return r.ID
	}
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return r.Name
	}
	return r.Name + "|" + teamID
}

// Player is one athlete on one team.
type Player struct {
	ID     string
	Name   string
	TeamID string
	Kind   IdentityKind
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}
