// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

package lesson

import (
	"fmt"

	"github.com/amaliw/somo-tui/internal/editor"
	"github.com/amaliw/somo-tui/internal/model"
)

// fieldRef is one editable entry in the edit-mode field list. Scalar
// fields have index -1 and commit through SetField; array elements
// commit through SetArrayItem.
type fieldRef struct {
	section string
	label   string
	field   string
	index   int
}

// value reads the entry's current value from a plan.
func (f fieldRef) value(plan model.LessonPlan) string {
	if f.index < 0 {
		// Title is the only editable scalar.
		return plan.Title
	}
	return arrayIn(plan, f.field)[f.index]
}

// commit writes a new value into the editor's draft.
func (f fieldRef) commit(ed *editor.Editor, value string) {
	if f.index < 0 {
		ed.SetField(f.field, value)
		return
	}
	ed.SetArrayItem(f.field, f.index, value)
}

// buildFields flattens the plan's editable entries in document order.
// Array lengths are fixed by the generated plan, so the list stays
// valid for the whole editing session.
func buildFields(plan model.LessonPlan) []fieldRef {
	var fields []fieldRef
	add := func(section, labelFmt, field string, n int) {
		for i := 0; i < n; i++ {
			fields = append(fields, fieldRef{
				section: section,
				label:   fmt.Sprintf(labelFmt, i+1),
				field:   field,
				index:   i,
			})
		}
	}

	fields = append(fields, fieldRef{section: "Lesson", label: "Title", field: "title", index: -1})
	add("Learning Goals", "Goal %d", "learningGoals", len(plan.LearningGoals))
	add("Prior Knowledge", "Review point %d", "priorKnowledgeRecap.bullets", len(plan.PriorKnowledgeRecap.Bullets))
	add("Prior Knowledge", "Quick check %d", "priorKnowledgeRecap.quickCheckQuestions", len(plan.PriorKnowledgeRecap.QuickCheckQuestions))
	add("Core Explanation", "Paragraph %d", "coreExplanation", len(plan.CoreExplanation))
	add("Activity", "Material %d", "activity.materials", len(plan.Activity.Materials))
	add("Activity", "Step %d", "activity.steps", len(plan.Activity.Steps))
	add("Activity", "Teacher prompt %d", "activity.teacherPrompts", len(plan.Activity.TeacherPrompts))
	add("Activity", "Expected response %d", "activity.expectedStudentResponses", len(plan.Activity.ExpectedStudentResponses))
	add("Exit Ticket", "Question %d", "exitTicket", len(plan.ExitTicket))
	add("Differentiation", "Struggling learners %d", "differentiation.strugglingLearners", len(plan.Differentiation.StrugglingLearners))
	add("Differentiation", "Advanced learners %d", "differentiation.advancedLearners", len(plan.Differentiation.AdvancedLearners))
	add("Differentiation", "Language learners %d", "differentiation.languageLearners", len(plan.Differentiation.LanguageLearners))
	add("Local Context", "Example %d", "localContextExamples", len(plan.LocalContextExamples))
	return fields
}

// arrayIn resolves a string-array field of a plan by the same names
// the editor accepts.
func arrayIn(plan model.LessonPlan, field string) []string {
	switch field {
	case "learningGoals":
		return plan.LearningGoals
	case "coreExplanation":
		return plan.CoreExplanation
	case "exitTicket":
		return plan.ExitTicket
	case "localContextExamples":
		return plan.LocalContextExamples
	case "priorKnowledgeRecap.bullets":
		return plan.PriorKnowledgeRecap.Bullets
	case "priorKnowledgeRecap.quickCheckQuestions":
		return plan.PriorKnowledgeRecap.QuickCheckQuestions
	case "activity.materials":
		return plan.Activity.Materials
	case "activity.steps":
		return plan.Activity.Steps
	case "activity.teacherPrompts":
		return plan.Activity.TeacherPrompts
	case "activity.expectedStudentResponses":
		return plan.Activity.ExpectedStudentResponses
	case "differentiation.strugglingLearners":
		return plan.Differentiation.StrugglingLearners
	case "differentiation.advancedLearners":
		return plan.Differentiation.AdvancedLearners
	case "differentiation.languageLearners":
		return plan.Differentiation.LanguageLearners
	default:
		panic(fmt.Sprintf("lesson: unknown array field %q", field))
	}
}
