package services

import (
	"math/rand"
	"testing"

	"quest-raid-system/models"
)

func TestSampleQuizQuestions_Size(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sample := SampleQuizQuestions(rng)
	if len(sample) != models.QuizSampleSize {
		t.Fatalf("expected %d questions, got %d", models.QuizSampleSize, len(sample))
	}

	seen := map[string]bool{}
	for _, q := range sample {
		if seen[q.ID] {
			t.Errorf("question %s sampled twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestQuizPool_ChoicesCoverValidArchetypes(t *testing.T) {
	valid := map[string]bool{}
	for _, a := range models.Archetypes {
		valid[a] = true
	}
	for _, q := range models.QuizPool {
		if len(q.Choices) == 0 {
			t.Errorf("question %s has no choices", q.ID)
		}
		for _, c := range q.Choices {
			if !valid[c.Archetype] {
				t.Errorf("question %s choice %s maps to unknown archetype %q", q.ID, c.ID, c.Archetype)
			}
		}
	}
}

// fullAnswerSet answers the first QuizSampleSize pool questions with each
// question's first choice.
func fullAnswerSet() map[string]string {
	answers := make(map[string]string, models.QuizSampleSize)
	for _, q := range models.QuizPool[:models.QuizSampleSize] {
		answers[q.ID] = q.Choices[0].ID
	}
	return answers
}

func TestResolveAnswers(t *testing.T) {
	selected, err := resolveAnswers(fullAnswerSet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(selected) != models.QuizSampleSize {
		t.Errorf("got %d archetypes, want %d", len(selected), models.QuizSampleSize)
	}

	if _, err := resolveAnswers(nil); err == nil {
		t.Error("expected error for empty answers")
	}

	// a single answer is not a completed quiz
	q := models.QuizPool[0]
	if _, err := resolveAnswers(map[string]string{q.ID: q.Choices[0].ID}); err == nil {
		t.Error("expected error for partial answers")
	}

	unknownQ := fullAnswerSet()
	delete(unknownQ, q.ID)
	unknownQ["no-such-question"] = "a"
	if _, err := resolveAnswers(unknownQ); err == nil {
		t.Error("expected error for unknown question")
	}

	unknownC := fullAnswerSet()
	unknownC[q.ID] = "no-such-choice"
	if _, err := resolveAnswers(unknownC); err == nil {
		t.Error("expected error for unknown choice")
	}
}

func TestPickArchetype_OnlyFromSelected(t *testing.T) {
	// The draw must never produce an archetype absent from the answer set,
	// no matter how many runs.
	selected := []string{
		models.ArchetypeFinance,
		models.ArchetypeFinance,
		models.ArchetypeAdventurer,
	}
	allowed := map[string]bool{
		models.ArchetypeFinance:    true,
		models.ArchetypeAdventurer: true,
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		got := PickArchetype(selected, rng)
		if !allowed[got] {
			t.Fatalf("picked %q, not among the selected archetypes", got)
		}
	}
}

func TestPickArchetype_SingleArchetypeAlwaysWins(t *testing.T) {
	selected := []string{
		models.ArchetypePartyAnimal,
		models.ArchetypePartyAnimal,
		models.ArchetypePartyAnimal,
	}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		if got := PickArchetype(selected, rng); got != models.ArchetypePartyAnimal {
			t.Fatalf("got %q", got)
		}
	}
}

func TestArchetypeDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{models.ArchetypePartyAnimal, "Party Animal"},
		{models.ArchetypeFinance, "Finance"},
		{models.ArchetypePhilanthropist, "Philanthropist"},
	}
	for _, tt := range tests {
		if got := ArchetypeDisplayName(tt.in); got != tt.want {
			t.Errorf("ArchetypeDisplayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
