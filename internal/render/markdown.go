// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns lesson documents into terminal-friendly text.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/amaliw/somo-tui/internal/model"
)

// NewRenderer builds a glamour renderer for the given style ("auto",
// "dark", "light", "notty") and wrap width.
func NewRenderer(style string, width int) (*glamour.TermRenderer, error) {
	if width <= 0 {
		width = 80
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	return glamour.NewTermRenderer(opts...)
}

// LessonMarkdown renders a lesson plan as a markdown document.
func LessonMarkdown(plan model.LessonPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", plan.Title)
	fmt.Fprintf(&b, "**Grades %s** · **%d min** · **%s**\n\n", plan.GradeBand, plan.DurationMinutes, plan.Region)

	b.WriteString("## Learning Goals\n\n")
	writeList(&b, plan.LearningGoals)

	b.WriteString("## Prior Knowledge Recap\n\n")
	if len(plan.PriorKnowledgeRecap.Bullets) > 0 {
		b.WriteString("**Review points**\n\n")
		writeList(&b, plan.PriorKnowledgeRecap.Bullets)
	}
	if len(plan.PriorKnowledgeRecap.QuickCheckQuestions) > 0 {
		b.WriteString("**Quick check**\n\n")
		writeList(&b, plan.PriorKnowledgeRecap.QuickCheckQuestions)
	}

	b.WriteString("## Core Explanation\n\n")
	for _, para := range plan.CoreExplanation {
		b.WriteString(para)
		b.WriteString("\n\n")
	}

	if len(plan.CommonMisconceptions) > 0 {
		b.WriteString("## Common Misconceptions\n\n")
		for _, m := range plan.CommonMisconceptions {
			fmt.Fprintf(&b, "- **Misconception:** %s\n", m.Misconception)
			fmt.Fprintf(&b, "  **Correction:** %s\n", m.Correction)
			fmt.Fprintf(&b, "  **Check:** %s\n", m.CheckQuestion)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Activity: %s (%d min)\n\n", plan.Activity.Title, plan.Activity.TimeMinutes)
	if len(plan.Activity.Materials) > 0 {
		b.WriteString("**Materials**\n\n")
		writeList(&b, plan.Activity.Materials)
	}
	if len(plan.Activity.Steps) > 0 {
		b.WriteString("**Steps**\n\n")
		for i, step := range plan.Activity.Steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
		b.WriteString("\n")
	}
	if len(plan.Activity.TeacherPrompts) > 0 {
		b.WriteString("**Teacher prompts**\n\n")
		writeList(&b, plan.Activity.TeacherPrompts)
	}
	if len(plan.Activity.ExpectedStudentResponses) > 0 {
		b.WriteString("**Expected student responses**\n\n")
		writeList(&b, plan.Activity.ExpectedStudentResponses)
	}

	b.WriteString("## Exit Ticket\n\n")
	writeList(&b, plan.ExitTicket)

	b.WriteString("## Differentiation\n\n")
	if len(plan.Differentiation.StrugglingLearners) > 0 {
		b.WriteString("**Struggling learners**\n\n")
		writeList(&b, plan.Differentiation.StrugglingLearners)
	}
	if len(plan.Differentiation.AdvancedLearners) > 0 {
		b.WriteString("**Advanced learners**\n\n")
		writeList(&b, plan.Differentiation.AdvancedLearners)
	}
	if len(plan.Differentiation.LanguageLearners) > 0 {
		b.WriteString("**Language learners**\n\n")
		writeList(&b, plan.Differentiation.LanguageLearners)
	}

	if len(plan.LocalContextExamples) > 0 {
		b.WriteString("## Local Context Examples\n\n")
		writeList(&b, plan.LocalContextExamples)
	}

	return b.String()
}

// ScriptMarkdown renders a video script as a markdown document.
func ScriptMarkdown(script model.VideoScript) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", script.Title)
	for _, slide := range script.Slides {
		fmt.Fprintf(&b, "## Slide %d: %s\n\n", slide.SlideNumber, slide.Title)
		fmt.Fprintf(&b, "%s\n\n", slide.Narration)
		if len(slide.KeyPoints) > 0 {
			b.WriteString("**Key points**\n\n")
			writeList(&b, slide.KeyPoints)
		}
	}
	return b.String()
}

func writeList(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
