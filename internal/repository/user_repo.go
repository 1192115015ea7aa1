package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"innerparts/internal/model"
)

// UserRepo handles MongoDB operations for per-user agent state
type UserRepo interface {
	GetAgentMemory(ctx context.Context, uid, characterID string) (*model.AgentMemory, error)
	SaveAgentMemory(ctx context.Context, uid, characterID, summary string) error
	UpdateProgressSummary(ctx context.Context, uid string, update model.ProgressUpdate) error
	AddTimelineEvent(ctx context.Context, event *model.TimelineEvent) error
	SetLastAgentRun(ctx context.Context, uid string) error
}

type userRepo struct {
	users    *mongo.Collection
	memories *mongo.Collection
	timeline *mongo.Collection
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepo{
		users:    db.Collection("users"),
		memories: db.Collection("agent_memories"),
		timeline: db.Collection("timeline_events"),
	}
}

func (r *userRepo) GetAgentMemory(ctx context.Context, uid, characterID string) (*model.AgentMemory, error) {
	var memory model.AgentMemory
	err := r.memories.FindOne(ctx, bson.M{"uid": uid, "characterId": characterID}).Decode(&memory)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &memory, nil
}

func (r *userRepo) SaveAgentMemory(ctx context.Context, uid, characterID, summary string) error {
	memory := &model.AgentMemory{
		UID:         uid,
		CharacterID: characterID,
		Summary:     summary,
		UpdatedAt:   time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.memories.ReplaceOne(ctx, bson.M{"uid": uid, "characterId": characterID}, memory, opts)
	return err
}

func (r *userRepo) UpdateProgressSummary(ctx context.Context, uid string, update model.ProgressUpdate) error {
	set := bson.M{}
	if update.CurrentStage != nil {
		set["progressSummary.currentStage"] = *update.CurrentStage
	}
	if update.StreakDays != nil {
		set["progressSummary.streakDays"] = *update.StreakDays
	}
	if update.LastSessionAt != nil {
		set["progressSummary.lastSessionAt"] = *update.LastSessionAt
	}
	if update.Notes != nil {
		set["progressSummary.notes"] = *update.Notes
	}
	if len(set) == 0 {
		return nil
	}
	set["updatedAt"] = time.Now()

	opts := options.Update().SetUpsert(true)
	_, err := r.users.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": set}, opts)
	return err
}

func (r *userRepo) AddTimelineEvent(ctx context.Context, event *model.TimelineEvent) error {
	event.CreatedAt = time.Now()
	_, err := r.timeline.InsertOne(ctx, event)
	return err
}

func (r *userRepo) SetLastAgentRun(ctx context.Context, uid string) error {
	now := time.Now()
	opts := options.Update().SetUpsert(true)
	_, err := r.users.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": bson.M{
		"lastAgentRunAt": now,
		"updatedAt":      now,
	}}, opts)
	return err
}
