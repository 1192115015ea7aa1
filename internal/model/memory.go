package model

import "time"

// AgentMemory is the rolling conversation summary kept per (user, character).
type AgentMemory struct {
	UID         string    `json:"uid" bson:"uid"`
	CharacterID string    `json:"characterId" bson:"characterId"`
	Summary     string    `json:"summary" bson:"summary"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ProgressUpdate carries the fields the agent may change on a user's
// progress summary. Nil pointers mean "leave unchanged".
type ProgressUpdate struct {
	CurrentStage  *string `json:"currentStage,omitempty"`
	StreakDays    *int    `json:"streakDays,omitempty"`
	LastSessionAt *string `json:"lastSessionAt,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// TimelineEvent is one entry in the user's healing timeline.
type TimelineEvent struct {
	ID        string    `json:"id" bson:"_id"`
	UID       string    `json:"uid" bson:"uid"`
	Type      string    `json:"type" bson:"type"`
	Title     string    `json:"title" bson:"title"`
	Summary   string    `json:"summary" bson:"summary"`
	RefPath   string    `json:"refPath,omitempty" bson:"refPath,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
