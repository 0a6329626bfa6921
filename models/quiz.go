package models

// The four fixed archetypes used for core guild matching.
const (
	ArchetypeFinance        = "finance"
	ArchetypeAdventurer     = "adventurer"
	ArchetypePhilanthropist = "philanthropist"
	ArchetypePartyAnimal    = "party_animal"
)

// Archetypes lists every valid archetype value.
var Archetypes = []string{
	ArchetypeFinance,
	ArchetypeAdventurer,
	ArchetypePhilanthropist,
	ArchetypePartyAnimal,
}

// QuizChoice maps one answer option to an archetype.
type QuizChoice struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Archetype string `json:"-"`
}

// QuizQuestion is one entry of the static archetype quiz pool.
type QuizQuestion struct {
	ID      string       `json:"id"`
	Prompt  string       `json:"prompt"`
	Choices []QuizChoice `json:"choices"`
}

// QuizSampleSize is how many pool questions a single quiz run presents.
const QuizSampleSize = 5

// QuizPool is the static question pool the quiz samples from. Each choice
// feeds exactly one archetype; the final assignment is drawn from the
// archetypes the player actually picked.
var QuizPool = []QuizQuestion{
	{
		ID:     "q-floor-sweep",
		Prompt: "A new collection just minted out. What's your first move?",
		Choices: []QuizChoice{
			{ID: "a", Text: "Check the floor price and start charting", Archetype: ArchetypeFinance},
			{ID: "b", Text: "Dig through the traits nobody has noticed yet", Archetype: ArchetypeAdventurer},
			{ID: "c", Text: "See if the project donates part of the mint", Archetype: ArchetypePhilanthropist},
			{ID: "d", Text: "Jump into the holders' voice chat to celebrate", Archetype: ArchetypePartyAnimal},
		},
	},
	{
		ID:     "q-weekend",
		Prompt: "Ideal weekend?",
		Choices: []QuizChoice{
			{ID: "a", Text: "Rebalancing my portfolio in peace", Archetype: ArchetypeFinance},
			{ID: "b", Text: "A trip somewhere I've never been", Archetype: ArchetypeAdventurer},
			{ID: "c", Text: "Volunteering with friends", Archetype: ArchetypePhilanthropist},
			{ID: "d", Text: "A party that ends at sunrise", Archetype: ArchetypePartyAnimal},
		},
	},
	{
		ID:     "q-windfall",
		Prompt: "You flip an NFT for 10x. What happens to the profit?",
		Choices: []QuizChoice{
			{ID: "a", Text: "Straight back into the market, obviously", Archetype: ArchetypeFinance},
			{ID: "b", Text: "It funds my next adventure", Archetype: ArchetypeAdventurer},
			{ID: "c", Text: "A chunk goes to a cause I care about", Archetype: ArchetypePhilanthropist},
			{ID: "d", Text: "Drinks are on me tonight", Archetype: ArchetypePartyAnimal},
		},
	},
	{
		ID:     "q-guild-role",
		Prompt: "Your guild is planning a raid night. Where do you fit in?",
		Choices: []QuizChoice{
			{ID: "a", Text: "Calculating the optimal quest order for max XP", Archetype: ArchetypeFinance},
			{ID: "b", Text: "First one through the door, scouting the boss", Archetype: ArchetypeAdventurer},
			{ID: "c", Text: "Helping the newer members keep up", Archetype: ArchetypePhilanthropist},
			{ID: "d", Text: "Running the afterparty in voice chat", Archetype: ArchetypePartyAnimal},
		},
	},
	{
		ID:     "q-motto",
		Prompt: "Pick a motto.",
		Choices: []QuizChoice{
			{ID: "a", Text: "Buy low, sell high", Archetype: ArchetypeFinance},
			{ID: "b", Text: "Fortune favors the bold", Archetype: ArchetypeAdventurer},
			{ID: "c", Text: "Rising tides lift all boats", Archetype: ArchetypePhilanthropist},
			{ID: "d", Text: "You only live once", Archetype: ArchetypePartyAnimal},
		},
	},
	{
		ID:     "q-bear-market",
		Prompt: "The market is down bad. How do you cope?",
		Choices: []QuizChoice{
			{ID: "a", Text: "Accumulate. Bear markets are for building positions", Archetype: ArchetypeFinance},
			{ID: "b", Text: "Go explore chains nobody is talking about", Archetype: ArchetypeAdventurer},
			{ID: "c", Text: "Check in on friends who are hurting", Archetype: ArchetypePhilanthropist},
			{ID: "d", Text: "Host a 'we're all down bad' community night", Archetype: ArchetypePartyAnimal},
		},
	},
	{
		ID:     "q-superpower",
		Prompt: "Choose a superpower.",
		Choices: []QuizChoice{
			{ID: "a", Text: "Seeing tomorrow's prices today", Archetype: ArchetypeFinance},
			{ID: "b", Text: "Teleporting anywhere on the map", Archetype: ArchetypeAdventurer},
			{ID: "c", Text: "Healing anyone I touch", Archetype: ArchetypePhilanthropist},
			{ID: "d", Text: "Never needing to sleep", Archetype: ArchetypePartyAnimal},
		},
	},
	{
		ID:     "q-dinner",
		Prompt: "You can invite one guest to dinner.",
		Choices: []QuizChoice{
			{ID: "a", Text: "A legendary investor", Archetype: ArchetypeFinance},
			{ID: "b", Text: "A polar explorer", Archetype: ArchetypeAdventurer},
			{ID: "c", Text: "A humanitarian hero", Archetype: ArchetypePhilanthropist},
			{ID: "d", Text: "A world-famous DJ", Archetype: ArchetypePartyAnimal},
		},
	},
	{
		ID:     "q-free-mint",
		Prompt: "A project you hold airdrops you a mystery box. You...",
		Choices: []QuizChoice{
			{ID: "a", Text: "List it unopened — sealed boxes trade higher", Archetype: ArchetypeFinance},
			{ID: "b", Text: "Open it immediately, the mystery is the point", Archetype: ArchetypeAdventurer},
			{ID: "c", Text: "Gift it to a holder who missed the snapshot", Archetype: ArchetypePhilanthropist},
			{ID: "d", Text: "Open it live on stream with the whole server watching", Archetype: ArchetypePartyAnimal},
		},
	},
	{
		ID:     "q-legacy",
		Prompt: "Years from now, what should people remember you for?",
		Choices: []QuizChoice{
			{ID: "a", Text: "Building serious wealth from nothing", Archetype: ArchetypeFinance},
			{ID: "b", Text: "The stories nobody believes are true", Archetype: ArchetypeAdventurer},
			{ID: "c", Text: "The people I helped along the way", Archetype: ArchetypePhilanthropist},
			{ID: "d", Text: "The best nights this community ever had", Archetype: ArchetypePartyAnimal},
		},
	},
}
