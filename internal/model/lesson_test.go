// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

// samplePlan returns a fully populated plan for copy and wire tests.
func samplePlan() LessonPlan {
	return LessonPlan{
		Title:           "Photosynthesis Basics",
		GradeBand:       "6-8",
		Region:          "Kenya",
		DurationMinutes: 20,
		LearningGoals:   []string{"Explain photosynthesis", "Name its inputs"},
		PriorKnowledgeRecap: PriorKnowledgeRecap{
			Bullets:             []string{"Plants are living things"},
			QuickCheckQuestions: []string{"What do plants need to grow?"},
		},
		CoreExplanation: []string{"Plants make food from sunlight."},
		CommonMisconceptions: []Misconception{
			{
				Misconception: "Plants eat soil",
				Correction:    "Plants build sugars from air and water",
				CheckQuestion: "Where does the mass of a tree come from?",
			},
		},
		Activity: Activity{
			Title:                    "Leaf starch test",
			TimeMinutes:              10,
			Materials:                []string{"Leaf", "Iodine"},
			Steps:                    []string{"Boil the leaf", "Apply iodine"},
			TeacherPrompts:           []string{"What color change do you expect?"},
			ExpectedStudentResponses: []string{"The leaf turns blue-black"},
		},
		ExitTicket: []string{"List the inputs of photosynthesis"},
		Differentiation: Differentiation{
			StrugglingLearners: []string{"Provide a labeled diagram"},
			AdvancedLearners:   []string{"Discuss limiting factors"},
			LanguageLearners:   []string{"Pre-teach key vocabulary"},
		},
		LocalContextExamples: []string{"Maize farms near the school"},
	}
}

// =============================================================================
// CLONE TESTS
// =============================================================================

func TestLessonPlan_Clone_Equal(t *testing.T) {
	plan := samplePlan()
	clone := plan.Clone()

	if !reflect.DeepEqual(plan, clone) {
		t.Errorf("Clone() = %+v, want %+v", clone, plan)
	}
}

func TestLessonPlan_Clone_Independent(t *testing.T) {
	plan := samplePlan()
	clone := plan.Clone()

	clone.LearningGoals[0] = "changed"
	clone.PriorKnowledgeRecap.Bullets[0] = "changed"
	clone.CommonMisconceptions[0].Correction = "changed"
	clone.Activity.Steps[1] = "changed"
	clone.Differentiation.LanguageLearners[0] = "changed"

	if plan.LearningGoals[0] != "Explain photosynthesis" {
		t.Errorf("LearningGoals[0] = %q, original mutated through clone", plan.LearningGoals[0])
	}
	if plan.PriorKnowledgeRecap.Bullets[0] != "Plants are living things" {
		t.Errorf("PriorKnowledgeRecap.Bullets[0] = %q, original mutated through clone", plan.PriorKnowledgeRecap.Bullets[0])
	}
	if plan.CommonMisconceptions[0].Correction == "changed" {
		t.Error("CommonMisconceptions[0] mutated through clone")
	}
	if plan.Activity.Steps[1] != "Apply iodine" {
		t.Errorf("Activity.Steps[1] = %q, original mutated through clone", plan.Activity.Steps[1])
	}
	if plan.Differentiation.LanguageLearners[0] == "changed" {
		t.Error("Differentiation.LanguageLearners mutated through clone")
	}
}

func TestLessonPlan_Clone_NilSlices(t *testing.T) {
	var plan LessonPlan
	clone := plan.Clone()

	if clone.LearningGoals != nil {
		t.Error("Clone() materialized a nil slice")
	}
	if !reflect.DeepEqual(plan, clone) {
		t.Errorf("Clone() of zero plan = %+v, want zero plan", clone)
	}
}

// =============================================================================
// WIRE SHAPE TESTS
// =============================================================================

func TestGenerateRequest_WireNames(t *testing.T) {
	req := GenerateRequest{
		Region:          "Kenya",
		GradeBand:       "9-10",
		DurationMinutes: 60,
		TopicPrompt:     "Fractions with local market prices",
	}
	raw, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{"region", "gradeBand", "durationMinutes", "topicPrompt"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("marshaled request missing %q field", key)
		}
	}
	if len(fields) != 4 {
		t.Errorf("marshaled request has %d fields, want 4", len(fields))
	}
}

func TestLessonDocument_PlanField(t *testing.T) {
	doc := LessonDocument{
		ID:         "abc123",
		OwnerUID:   "uid1",
		LessonPlan: samplePlan(),
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := fields["lessonPlanJson"]; !ok {
		t.Error("document plan should serialize under lessonPlanJson")
	}
	if _, ok := fields["lessonPlan"]; ok {
		t.Error("document plan must not serialize under lessonPlan")
	}
}

func TestLessonPlan_RoundTrip(t *testing.T) {
	plan := samplePlan()
	raw, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded LessonPlan
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(plan, decoded) {
		t.Errorf("round trip = %+v, want %+v", decoded, plan)
	}
}

func TestVideoDocument_OmitsEmptyScript(t *testing.T) {
	doc := VideoDocument{ID: "v1", Title: "Water Cycle"}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := fields["script"]; ok {
		t.Error("nil script should be omitted from the document")
	}
}

// =============================================================================
// ENUM TESTS
// =============================================================================

func TestEnumeratedValues(t *testing.T) {
	if want := []string{"6-8", "9-10", "11-12"}; !reflect.DeepEqual(GradeBands, want) {
		t.Errorf("GradeBands = %v, want %v", GradeBands, want)
	}
	if want := []int{20, 60}; !reflect.DeepEqual(Durations, want) {
		t.Errorf("Durations = %v, want %v", Durations, want)
	}
	if want := []int{3, 4, 5, 6, 7, 8}; !reflect.DeepEqual(SlideCounts, want) {
		t.Errorf("SlideCounts = %v, want %v", SlideCounts, want)
	}
}
