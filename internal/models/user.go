// Package models contains the domain entities shared by the repositories,
// services and the request layer.
package models

import "time"

// User is a member of the platform. Identity fields (uuid, username,
// creation date) are immutable after creation; profile fields are mutable
// by the owning user only.
type User struct {
	UUID              string    `json:"uuid"`
	Username          string    `json:"username"`
	DisplayedUsername string    `json:"displayed_username"`
	Email             string    `json:"email,omitempty"`
	Description       string    `json:"description,omitempty"`
	AvatarURL         string    `json:"avatar_url,omitempty"`
	CreationDate      time.Time `json:"creation_date"`
	Roles             []string  `json:"roles,omitempty"`
}

// ProfileCounts holds the follow-graph counters shown on a profile.
type ProfileCounts struct {
	Follows   int64 `json:"follows"`
	Followers int64 `json:"followers"`
}

// Principal is the authenticated caller resolved by the credential
// collaborator. A zero Principal is the anonymous marker; the core never
// reads ambient state to discover the caller.
type Principal struct {
	UUID        string
	Username    string
	Authorities []string
}

// Anonymous is the explicit unauthenticated principal.
var Anonymous = Principal{}

// IsAnonymous reports whether the principal carries no identity.
func (p Principal) IsAnonymous() bool {
	return p.UUID == ""
}

// HasAuthority reports whether the principal holds the given authority.
func (p Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}
