package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innerparts/internal/model"
)

// fakeUserRepo records every mutation the chat turn performs.
type fakeUserRepo struct {
	memories        map[string]string
	progressUpdates []model.ProgressUpdate
	timelineEvents  []*model.TimelineEvent
	lastAgentRuns   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{memories: make(map[string]string)}
}

func (r *fakeUserRepo) memoryKey(uid, characterID string) string {
	return uid + "/" + characterID
}

func (r *fakeUserRepo) GetAgentMemory(ctx context.Context, uid, characterID string) (*model.AgentMemory, error) {
	summary, ok := r.memories[r.memoryKey(uid, characterID)]
	if !ok {
		return nil, nil
	}
	return &model.AgentMemory{UID: uid, CharacterID: characterID, Summary: summary}, nil
}

func (r *fakeUserRepo) SaveAgentMemory(ctx context.Context, uid, characterID, summary string) error {
	r.memories[r.memoryKey(uid, characterID)] = summary
	return nil
}

func (r *fakeUserRepo) UpdateProgressSummary(ctx context.Context, uid string, update model.ProgressUpdate) error {
	r.progressUpdates = append(r.progressUpdates, update)
	return nil
}

func (r *fakeUserRepo) AddTimelineEvent(ctx context.Context, event *model.TimelineEvent) error {
	r.timelineEvents = append(r.timelineEvents, event)
	return nil
}

func (r *fakeUserRepo) SetLastAgentRun(ctx context.Context, uid string) error {
	r.lastAgentRuns++
	return nil
}

// fakeMemoryCache is an in-memory MemoryCache.
type fakeMemoryCache struct {
	summaries map[string]string
}

func newFakeMemoryCache() *fakeMemoryCache {
	return &fakeMemoryCache{summaries: make(map[string]string)}
}

func (c *fakeMemoryCache) GetSummary(ctx context.Context, uid, characterID string) (string, bool, error) {
	summary, ok := c.summaries[uid+"/"+characterID]
	return summary, ok, nil
}

func (c *fakeMemoryCache) SetSummary(ctx context.Context, uid, characterID, summary string) error {
	c.summaries[uid+"/"+characterID] = summary
	return nil
}

func (c *fakeMemoryCache) Invalidate(ctx context.Context, uid, characterID string) error {
	delete(c.summaries, uid+"/"+characterID)
	return nil
}

// offlineAgent returns an AgentService with no API key configured, so
// every call takes the mock path.
func offlineAgent(t *testing.T) *AgentService {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	return NewAgentService()
}

func TestChatTurnOffline(t *testing.T) {
	repo := newFakeUserRepo()
	memCache := newFakeMemoryCache()
	svc := NewChatService(repo, memCache, offlineAgent(t))

	req := &model.ChatRequest{
		CharacterID: "perfectionist",
		Messages: []model.ChatMessage{
			{Role: "user", Content: "I can't stop rewriting the same email."},
		},
	}

	resp, err := svc.Chat(context.Background(), "user_abc", req)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.AssistantMessage)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "set_last_agent_run", resp.ToolCalls[0].Name)

	assert.Equal(t, 1, repo.lastAgentRuns)

	// The offline agent returns no memory summary, so one is generated
	// and persisted to both stores.
	saved := repo.memories["user_abc/perfectionist"]
	assert.NotEmpty(t, saved)
	cached, ok, err := memCache.GetSummary(context.Background(), "user_abc", "perfectionist")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, saved, cached)
}

func TestChatDefaultsCharacterID(t *testing.T) {
	repo := newFakeUserRepo()
	memCache := newFakeMemoryCache()
	svc := NewChatService(repo, memCache, offlineAgent(t))

	req := &model.ChatRequest{
		Messages: []model.ChatMessage{{Role: "user", Content: "hello"}},
	}
	_, err := svc.Chat(context.Background(), "user_abc", req)
	require.NoError(t, err)

	_, exists := repo.memories["user_abc/inner_critic"]
	assert.True(t, exists)
}

func TestChatReusesExistingMemory(t *testing.T) {
	repo := newFakeUserRepo()
	repo.memories["user_abc/inner_critic"] = "- user struggles with deadlines"
	memCache := newFakeMemoryCache()
	svc := NewChatService(repo, memCache, offlineAgent(t))

	req := &model.ChatRequest{
		Messages: []model.ChatMessage{{Role: "user", Content: "hello again"}},
	}
	_, err := svc.Chat(context.Background(), "user_abc", req)
	require.NoError(t, err)

	// The offline summary path keeps an existing summary untouched.
	assert.Equal(t, "- user struggles with deadlines", repo.memories["user_abc/inner_critic"])
}

func TestRunToolCallsDispatch(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewChatService(repo, newFakeMemoryCache(), offlineAgent(t))

	svc.runToolCalls(context.Background(), "user_abc", []model.ToolCall{
		{Name: "update_progress_summary", Args: map[string]interface{}{
			"currentStage": "unblending",
			"streakDays":   float64(4),
		}},
		{Name: "add_timeline_event", Args: map[string]interface{}{
			"type":  "breakthrough",
			"title": "Named the critic",
		}},
		{Name: "set_last_agent_run", Args: map[string]interface{}{}},
		{Name: "launch_rocket", Args: map[string]interface{}{}},
	})

	require.Len(t, repo.progressUpdates, 1)
	require.NotNil(t, repo.progressUpdates[0].CurrentStage)
	assert.Equal(t, "unblending", *repo.progressUpdates[0].CurrentStage)
	require.NotNil(t, repo.progressUpdates[0].StreakDays)
	assert.Equal(t, 4, *repo.progressUpdates[0].StreakDays)

	require.Len(t, repo.timelineEvents, 1)
	assert.Equal(t, "breakthrough", repo.timelineEvents[0].Type)
	assert.Equal(t, "Named the critic", repo.timelineEvents[0].Title)

	assert.Equal(t, 1, repo.lastAgentRuns)
}

func TestProgressUpdateFromArgs(t *testing.T) {
	update := progressUpdateFromArgs(map[string]interface{}{
		"currentStage":  "witnessing",
		"streakDays":    float64(7),
		"lastSessionAt": "2026-08-29",
		"notes":         "calmer today",
	})
	require.NotNil(t, update.CurrentStage)
	assert.Equal(t, "witnessing", *update.CurrentStage)
	require.NotNil(t, update.StreakDays)
	assert.Equal(t, 7, *update.StreakDays)
	require.NotNil(t, update.LastSessionAt)
	assert.Equal(t, "2026-08-29", *update.LastSessionAt)
	require.NotNil(t, update.Notes)
	assert.Equal(t, "calmer today", *update.Notes)

	// "breakthrough" fills notes only when notes is absent.
	update = progressUpdateFromArgs(map[string]interface{}{
		"breakthrough": "spoke to the critic directly",
	})
	require.NotNil(t, update.Notes)
	assert.Equal(t, "spoke to the critic directly", *update.Notes)

	update = progressUpdateFromArgs(map[string]interface{}{
		"notes":        "regular note",
		"breakthrough": "ignored",
	})
	require.NotNil(t, update.Notes)
	assert.Equal(t, "regular note", *update.Notes)

	// Wrongly typed args are dropped, not coerced.
	update = progressUpdateFromArgs(map[string]interface{}{
		"streakDays": "seven",
	})
	assert.Nil(t, update.StreakDays)
}

func TestTimelineEventFromArgs(t *testing.T) {
	event := timelineEventFromArgs("user_abc", map[string]interface{}{
		"title":   "First session",
		"summary": "Met the inner critic",
		"refPath": "sessions/1",
	})
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "user_abc", event.UID)
	assert.Equal(t, "note", event.Type)
	assert.Equal(t, "First session", event.Title)
	assert.Equal(t, "Met the inner critic", event.Summary)
	assert.Equal(t, "sessions/1", event.RefPath)

	typed := timelineEventFromArgs("user_abc", map[string]interface{}{"type": "milestone"})
	assert.Equal(t, "milestone", typed.Type)
}
