// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"fmt"
	"reflect"

	"github.com/amaliw/somo-tui/internal/model"
)

// Field names accepted by SetField and SetArrayItem. Nested arrays use
// a dotted path. An unknown name or a value of the wrong type is a
// programming error and panics; no user input reaches these names.

// SetField replaces a scalar or nested-object field of the draft. Only
// the draft is touched; the server plan is never written here.
func (e *Editor) SetField(field string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch field {
	case "title":
		e.draftPlan.Title = value.(string)
	case "gradeBand":
		e.draftPlan.GradeBand = value.(string)
	case "region":
		e.draftPlan.Region = value.(string)
	case "durationMinutes":
		e.draftPlan.DurationMinutes = value.(int)
	case "learningGoals":
		e.draftPlan.LearningGoals = value.([]string)
	case "priorKnowledgeRecap":
		e.draftPlan.PriorKnowledgeRecap = value.(model.PriorKnowledgeRecap)
	case "coreExplanation":
		e.draftPlan.CoreExplanation = value.([]string)
	case "commonMisconceptions":
		e.draftPlan.CommonMisconceptions = value.([]model.Misconception)
	case "activity":
		e.draftPlan.Activity = value.(model.Activity)
	case "exitTicket":
		e.draftPlan.ExitTicket = value.([]string)
	case "differentiation":
		e.draftPlan.Differentiation = value.(model.Differentiation)
	case "localContextExamples":
		e.draftPlan.LocalContextExamples = value.([]string)
	default:
		panic(fmt.Sprintf("editor: unknown field %q", field))
	}
}

// SetArrayItem replaces one element of a string-array field of the
// draft. The index must be within the array's current bounds; an
// out-of-bounds index panics rather than extending the array.
func (e *Editor) SetArrayItem(field string, index int, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	arr := e.arrayField(field)
	arr[index] = value
}

// arrayField resolves a string-array field of the draft by name.
func (e *Editor) arrayField(field string) []string {
	d := &e.draftPlan
	switch field {
	case "learningGoals":
		return d.LearningGoals
	case "coreExplanation":
		return d.CoreExplanation
	case "exitTicket":
		return d.ExitTicket
	case "localContextExamples":
		return d.LocalContextExamples
	case "priorKnowledgeRecap.bullets":
		return d.PriorKnowledgeRecap.Bullets
	case "priorKnowledgeRecap.quickCheckQuestions":
		return d.PriorKnowledgeRecap.QuickCheckQuestions
	case "activity.materials":
		return d.Activity.Materials
	case "activity.steps":
		return d.Activity.Steps
	case "activity.teacherPrompts":
		return d.Activity.TeacherPrompts
	case "activity.expectedStudentResponses":
		return d.Activity.ExpectedStudentResponses
	case "differentiation.strugglingLearners":
		return d.Differentiation.StrugglingLearners
	case "differentiation.advancedLearners":
		return d.Differentiation.AdvancedLearners
	case "differentiation.languageLearners":
		return d.Differentiation.LanguageLearners
	default:
		panic(fmt.Sprintf("editor: unknown array field %q", field))
	}
}

func plansEqual(a, b model.LessonPlan) bool {
	return reflect.DeepEqual(a, b)
}
