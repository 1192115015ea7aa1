package registry

import "innerparts/internal/model"

// Fallbacks used when the classifier emits a character the catalog does
// not know about. New characters get added to the catalog, never to
// scoring logic.
const (
	GenericDescription = "An inner part that plays a role in your emotional world."
	FallbackGLBFile    = "inner_critic.glb"
)

// CharacterRegistry is the read-only metadata lookup for the character
// catalog. It is built once at startup and shared across requests.
type CharacterRegistry struct {
	records map[string]model.CharacterRecord
}

// New builds a registry from explicit records.
func New(records []model.CharacterRecord) *CharacterRegistry {
	byName := make(map[string]model.CharacterRecord, len(records))
	for _, rec := range records {
		byName[rec.CharacterName] = rec
	}
	return &CharacterRegistry{records: byName}
}

// Default returns the registry for the production character catalog.
func Default() *CharacterRegistry {
	return New(defaultCatalog)
}

// Lookup returns the record for a character name. Unknown names resolve
// to a synthetic record with documented fallbacks: the raw name as
// display name, archetype "unknown", the generic description and the
// Inner Critic asset.
func (r *CharacterRegistry) Lookup(characterName string) model.CharacterRecord {
	if rec, ok := r.records[characterName]; ok {
		return rec
	}
	return model.CharacterRecord{
		CharacterName: characterName,
		DisplayName:   characterName,
		Archetype:     model.ArchetypeUnknown,
		Description:   GenericDescription,
		GLBFileName:   FallbackGLBFile,
	}
}

// Len returns the number of known characters.
func (r *CharacterRegistry) Len() int {
	return len(r.records)
}

var defaultCatalog = []model.CharacterRecord{
	// Managers: proactive protectors.
	{
		CharacterName: "Inner Critic",
		DisplayName:   "The Inner Critic",
		Archetype:     model.ArchetypeManager,
		Description:   "This part helps you stay safe by pointing out potential mistakes and keeping you from taking risks.",
		GLBFileName:   "inner_critic.glb",
	},
	{
		CharacterName: "Perfectionist",
		DisplayName:   "The Perfectionist",
		Archetype:     model.ArchetypeManager,
		Description:   "This part demands flawless performance and sets extremely high standards to prevent criticism.",
		GLBFileName:   "perfectionist.glb",
	},
	{
		CharacterName: "People Pleaser",
		DisplayName:   "The People Pleaser",
		Archetype:     model.ArchetypeManager,
		Description:   "This part works hard to make sure others are happy with you, often suppressing your own needs.",
		GLBFileName:   "people_pleaser.glb",
	},
	{
		CharacterName: "Controller",
		DisplayName:   "The Controller",
		Archetype:     model.ArchetypeManager,
		Description:   "This part tries to manage everything and everyone to create a sense of safety and predictability.",
		GLBFileName:   "controller_part.glb",
	},
	{
		CharacterName: "Stoic Part",
		DisplayName:   "The Stoic Part",
		Archetype:     model.ArchetypeManager,
		Description:   "This protector suppresses emotions and maintains emotional distance as a survival strategy.",
		GLBFileName:   "stoic_part.glb",
	},
	{
		CharacterName: "Workaholic",
		DisplayName:   "The Workaholic",
		Archetype:     model.ArchetypeManager,
		Description:   "This part keeps you constantly busy and productive to avoid facing difficult emotions or inner emptiness.",
		GLBFileName:   "workaholic.glb",
	},
	{
		CharacterName: "Confused Part",
		DisplayName:   "The Confused Part",
		Archetype:     model.ArchetypeManager,
		Description:   "This part emerges when you feel overwhelmed by choices, uncertain about decisions, or disconnected from your intuition.",
		GLBFileName:   "confused_part.glb",
	},

	// Firefighters: reactive protectors.
	{
		CharacterName: "Procrastinator",
		DisplayName:   "The Procrastinator",
		Archetype:     model.ArchetypeFirefighter,
		Description:   "This protective part delays important tasks to avoid potential failure, overwhelm, or facing difficult emotions.",
		GLBFileName:   "procrastinator.glb",
	},
	{
		CharacterName: "Overeater/Binger",
		DisplayName:   "The Overeater/Binger",
		Archetype:     model.ArchetypeFirefighter,
		Description:   "This part uses food to soothe emotional pain, fill inner emptiness, or numb difficult feelings.",
		GLBFileName:   "overeater-binger.glb",
	},
	{
		CharacterName: "Excessive Gamer",
		DisplayName:   "The Excessive Gamer",
		Archetype:     model.ArchetypeFirefighter,
		Description:   "This part uses gaming as an escape from real-world challenges, uncomfortable emotions, or feelings of inadequacy.",
		GLBFileName:   "excessive_gamer.glb",
	},

	// Exiles: wounded parts.
	{
		CharacterName: "Lonely Part",
		DisplayName:   "The Lonely Part",
		Archetype:     model.ArchetypeExile,
		Description:   "This part holds feelings of isolation and longing for connection from earlier experiences.",
		GLBFileName:   "lonely_part.glb",
	},
	{
		CharacterName: "Fearful Part",
		DisplayName:   "The Fearful Part",
		Archetype:     model.ArchetypeExile,
		Description:   "This vigilant protector constantly scans for potential threats and risks.",
		GLBFileName:   "fearful_part.glb",
	},
	{
		CharacterName: "Neglected Part",
		DisplayName:   "The Neglected Part",
		Archetype:     model.ArchetypeExile,
		Description:   "This wounded part holds memories of being overlooked, not listened to, or emotionally abandoned.",
		GLBFileName:   "neglected_part.glb",
	},
	{
		CharacterName: "Ashamed Part",
		DisplayName:   "The Ashamed Part",
		Archetype:     model.ArchetypeExile,
		Description:   "This wounded part carries deep feelings of unworthiness and self-consciousness from past experiences.",
		GLBFileName:   "ashamed_part.glb",
	},
	{
		CharacterName: "Overwhelmed Part",
		DisplayName:   "The Overwhelmed Part",
		Archetype:     model.ArchetypeExile,
		Description:   "This part feels unable to cope with the demands and responsibilities of life.",
		GLBFileName:   "overwhelmed_part.glb",
	},
	{
		CharacterName: "Dependent Part",
		DisplayName:   "The Dependent Part",
		Archetype:     model.ArchetypeExile,
		Description:   "This part fears autonomy and constantly seeks external validation and support.",
		GLBFileName:   "dependent_part.glb",
	},
	{
		CharacterName: "Jealous Part",
		DisplayName:   "The Jealous Part",
		Archetype:     model.ArchetypeExile,
		Description:   "This protective part emerges when you see others as threats to your relationships or success.",
		GLBFileName:   "jealous_part.glb",
	},
	{
		CharacterName: "Wounded Child",
		DisplayName:   "The Wounded Child",
		Archetype:     model.ArchetypeExile,
		Description:   "This vulnerable part carries childhood pain, trauma, and unmet emotional needs.",
		GLBFileName:   "wounded_child.glb",
	},
}
