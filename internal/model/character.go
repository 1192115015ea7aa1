package model

// Archetype is the coarse IFS grouping of a character.
type Archetype string

const (
	ArchetypeManager     Archetype = "manager"     // proactive protectors
	ArchetypeFirefighter Archetype = "firefighter" // reactive protectors
	ArchetypeExile       Archetype = "exile"       // wounded parts
	ArchetypeUnknown     Archetype = "unknown"
)

// CharacterRecord is the static metadata for one inner-part character.
type CharacterRecord struct {
	CharacterName string    `json:"characterName"`
	DisplayName   string    `json:"displayName"`
	Archetype     Archetype `json:"archetype"`
	Description   string    `json:"description"`
	GLBFileName   string    `json:"glbFileName"`
}

// CharacterProfile is the client-supplied persona sheet used to keep the
// chat agent in character. Fields mirror the app's character documents.
type CharacterProfile struct {
	DisplayName      string   `json:"displayName"`
	Role             string   `json:"role"`
	ShortDescription string   `json:"shortDescription"`
	WhyIExist        string   `json:"whyIExist"`
	Triggers         []string `json:"triggers"`
	CoreBelief       string   `json:"coreBelief"`
	Intention        string   `json:"intention"`
	Fear             string   `json:"fear"`
	WhatINeed        []string `json:"whatINeed"`
}
