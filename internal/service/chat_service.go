package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"innerparts/internal/cache"
	"innerparts/internal/model"
	"innerparts/internal/repository"
)

const defaultCharacterID = "inner_critic"

// ChatService orchestrates a chat turn: memory recall, the agent step,
// tool-call dispatch against the user's record, and memory persistence.
type ChatService struct {
	userRepo repository.UserRepo
	memCache cache.MemoryCache
	agent    *AgentService
}

// NewChatService creates a new chat service
func NewChatService(userRepo repository.UserRepo, memCache cache.MemoryCache, agent *AgentService) *ChatService {
	return &ChatService{
		userRepo: userRepo,
		memCache: memCache,
		agent:    agent,
	}
}

// Chat runs one conversational turn for the authenticated user.
func (s *ChatService) Chat(ctx context.Context, uid string, req *model.ChatRequest) (*model.ChatResponse, error) {
	characterID := req.CharacterID
	if characterID == "" {
		characterID = defaultCharacterID
	}

	memorySummary := s.loadMemorySummary(ctx, uid, characterID)
	systemPrompt := BuildCharacterPromptWithMemory(req.CharacterProfile, memorySummary)

	result, err := s.agent.RunAgentStep(ctx, systemPrompt, req.Messages)
	if err != nil {
		return nil, err
	}

	s.runToolCalls(ctx, uid, result.ToolCalls)

	updatedSummary := result.MemorySummary
	if updatedSummary == "" {
		transcript := append(append([]model.ChatMessage{}, req.Messages...),
			model.ChatMessage{Role: "assistant", Content: result.AssistantMessage})
		updatedSummary, err = s.agent.GenerateSummary(ctx, memorySummary, transcript)
		if err != nil {
			log.Printf("chat: summary generation failed for uid=%s: %v", uid, err)
			updatedSummary = memorySummary
		}
	}
	s.saveMemorySummary(ctx, uid, characterID, updatedSummary)

	toolCalls := result.ToolCalls
	if toolCalls == nil {
		toolCalls = []model.ToolCall{}
	}

	return &model.ChatResponse{
		Success:          true,
		AssistantMessage: result.AssistantMessage,
		ToolCalls:        toolCalls,
	}, nil
}

// loadMemorySummary reads the summary from the cache, falling back to
// Mongo. Lookup failures degrade to an empty memory rather than failing
// the turn.
func (s *ChatService) loadMemorySummary(ctx context.Context, uid, characterID string) string {
	if summary, ok, err := s.memCache.GetSummary(ctx, uid, characterID); err == nil && ok {
		return summary
	} else if err != nil {
		log.Printf("chat: memory cache read failed for uid=%s: %v", uid, err)
	}

	memory, err := s.userRepo.GetAgentMemory(ctx, uid, characterID)
	if err != nil {
		log.Printf("chat: memory load failed for uid=%s: %v", uid, err)
		return ""
	}
	if memory == nil {
		return ""
	}
	return memory.Summary
}

func (s *ChatService) saveMemorySummary(ctx context.Context, uid, characterID, summary string) {
	if summary == "" {
		return
	}
	if err := s.userRepo.SaveAgentMemory(ctx, uid, characterID, summary); err != nil {
		log.Printf("chat: memory save failed for uid=%s: %v", uid, err)
		return
	}
	if err := s.memCache.SetSummary(ctx, uid, characterID, summary); err != nil {
		log.Printf("chat: memory cache write failed for uid=%s: %v", uid, err)
	}
}

// runToolCalls dispatches the agent's tool calls. A failing tool never
// fails the turn; it is logged and skipped.
func (s *ChatService) runToolCalls(ctx context.Context, uid string, toolCalls []model.ToolCall) {
	for _, call := range toolCalls {
		log.Printf("agent tool_call: %s args=%v", call.Name, call.Args)
		var err error
		switch call.Name {
		case "update_progress_summary":
			err = s.userRepo.UpdateProgressSummary(ctx, uid, progressUpdateFromArgs(call.Args))
		case "add_timeline_event":
			err = s.userRepo.AddTimelineEvent(ctx, timelineEventFromArgs(uid, call.Args))
		case "set_last_agent_run":
			err = s.userRepo.SetLastAgentRun(ctx, uid)
		default:
			log.Printf("agent tool_call: unknown tool %q ignored", call.Name)
		}
		if err != nil {
			log.Printf("agent tool_call: %s failed for uid=%s: %v", call.Name, uid, err)
		}
	}
}

// progressUpdateFromArgs converts loose agent args into a typed update.
// "breakthrough" aliases "notes" when the agent sent no notes.
func progressUpdateFromArgs(args map[string]interface{}) model.ProgressUpdate {
	update := model.ProgressUpdate{
		CurrentStage:  stringArg(args, "currentStage"),
		StreakDays:    intArg(args, "streakDays"),
		LastSessionAt: stringArg(args, "lastSessionAt"),
		Notes:         stringArg(args, "notes"),
	}
	if update.Notes == nil {
		update.Notes = stringArg(args, "breakthrough")
	}
	return update
}

func timelineEventFromArgs(uid string, args map[string]interface{}) *model.TimelineEvent {
	event := &model.TimelineEvent{
		ID:   uuid.New().String(),
		UID:  uid,
		Type: "note",
	}
	if t := stringArg(args, "type"); t != nil {
		event.Type = *t
	}
	if title := stringArg(args, "title"); title != nil {
		event.Title = *title
	}
	if summary := stringArg(args, "summary"); summary != nil {
		event.Summary = *summary
	}
	if refPath := stringArg(args, "refPath"); refPath != nil {
		event.RefPath = *refPath
	}
	return event
}

func stringArg(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func intArg(args map[string]interface{}, key string) *int {
	// JSON numbers decode as float64
	if v, ok := args[key].(float64); ok {
		n := int(v)
		return &n
	}
	return nil
}
