// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the lesson and video document types shared with
// the Lesson Plan Generator backend. JSON field names match the wire
// contract exactly; the backend owns all document IDs and timestamps.
package model

// =============================================================================
// ENUMERATED VALUES
// =============================================================================

// Regions is the suggested region list for generation forms. The region
// field itself is free text; this list only seeds the selector.
var Regions = []string{
	"Kenya",
	"Nigeria",
	"Ghana",
	"South Africa",
	"India",
	"Philippines",
	"Brazil",
	"Mexico",
	"Indonesia",
	"Bangladesh",
	"Other",
}

// GradeBands is the closed set of valid grade bands.
var GradeBands = []string{"6-8", "9-10", "11-12"}

// Durations is the closed set of valid lesson durations in minutes.
var Durations = []int{20, 60}

// =============================================================================
// LESSON PLAN
// =============================================================================

// PriorKnowledgeRecap lists what students should already know.
type PriorKnowledgeRecap struct {
	Bullets             []string `json:"bullets"`
	QuickCheckQuestions []string `json:"quickCheckQuestions"`
}

// Misconception pairs a common student misconception with its correction.
type Misconception struct {
	Misconception string `json:"misconception"`
	Correction    string `json:"correction"`
	CheckQuestion string `json:"checkQuestion"`
}

// Activity is the hands-on portion of a lesson.
type Activity struct {
	Title                    string   `json:"title"`
	TimeMinutes              int      `json:"timeMinutes"`
	Materials                []string `json:"materials"`
	Steps                    []string `json:"steps"`
	TeacherPrompts           []string `json:"teacherPrompts"`
	ExpectedStudentResponses []string `json:"expectedStudentResponses"`
}

// Differentiation holds per-learner-group adjustments.
type Differentiation struct {
	StrugglingLearners []string `json:"strugglingLearners"`
	AdvancedLearners   []string `json:"advancedLearners"`
	LanguageLearners   []string `json:"languageLearners"`
}

// LessonPlan is the full generated lesson structure.
type LessonPlan struct {
	Title                string              `json:"title"`
	GradeBand            string              `json:"gradeBand"`
	Region               string              `json:"region"`
	DurationMinutes      int                 `json:"durationMinutes"`
	LearningGoals        []string            `json:"learningGoals"`
	PriorKnowledgeRecap  PriorKnowledgeRecap `json:"priorKnowledgeRecap"`
	CoreExplanation      []string            `json:"coreExplanation"`
	CommonMisconceptions []Misconception     `json:"commonMisconceptions"`
	Activity             Activity            `json:"activity"`
	ExitTicket           []string            `json:"exitTicket"`
	Differentiation      Differentiation     `json:"differentiation"`
	LocalContextExamples []string            `json:"localContextExamples"`
}

// Clone returns a deep copy of the plan. The editor relies on this to
// keep its draft fully independent of the server-authoritative value.
func (p LessonPlan) Clone() LessonPlan {
	out := p
	out.LearningGoals = cloneStrings(p.LearningGoals)
	out.PriorKnowledgeRecap.Bullets = cloneStrings(p.PriorKnowledgeRecap.Bullets)
	out.PriorKnowledgeRecap.QuickCheckQuestions = cloneStrings(p.PriorKnowledgeRecap.QuickCheckQuestions)
	out.CoreExplanation = cloneStrings(p.CoreExplanation)
	if p.CommonMisconceptions != nil {
		out.CommonMisconceptions = make([]Misconception, len(p.CommonMisconceptions))
		copy(out.CommonMisconceptions, p.CommonMisconceptions)
	}
	out.Activity.Materials = cloneStrings(p.Activity.Materials)
	out.Activity.Steps = cloneStrings(p.Activity.Steps)
	out.Activity.TeacherPrompts = cloneStrings(p.Activity.TeacherPrompts)
	out.Activity.ExpectedStudentResponses = cloneStrings(p.Activity.ExpectedStudentResponses)
	out.ExitTicket = cloneStrings(p.ExitTicket)
	out.Differentiation.StrugglingLearners = cloneStrings(p.Differentiation.StrugglingLearners)
	out.Differentiation.AdvancedLearners = cloneStrings(p.Differentiation.AdvancedLearners)
	out.Differentiation.LanguageLearners = cloneStrings(p.Differentiation.LanguageLearners)
	out.LocalContextExamples = cloneStrings(p.LocalContextExamples)
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// =============================================================================
// REQUESTS AND DOCUMENTS
// =============================================================================

// GenerateRequest asks the backend to generate a new lesson plan.
type GenerateRequest struct {
	Region          string `json:"region"`
	GradeBand       string `json:"gradeBand"`
	DurationMinutes int    `json:"durationMinutes"`
	TopicPrompt     string `json:"topicPrompt"`
}

// GenerateResponse is the backend's reply to a generation request.
type GenerateResponse struct {
	LessonID   string     `json:"lessonId"`
	LessonPlan LessonPlan `json:"lessonPlan"`
}

// UpdateLessonRequest commits an edited plan back to the backend.
type UpdateLessonRequest struct {
	LessonPlan LessonPlan `json:"lessonPlan"`
}

// LessonDocument is a stored lesson with backend-assigned metadata.
type LessonDocument struct {
	ID              string     `json:"id"`
	OwnerUID        string     `json:"ownerUid"`
	Region          string     `json:"region"`
	GradeBand       string     `json:"gradeBand"`
	DurationMinutes int        `json:"durationMinutes"`
	TopicPrompt     string     `json:"topicPrompt"`
	CreatedAt       string     `json:"createdAt"`
	UpdatedAt       string     `json:"updatedAt"`
	LessonPlan      LessonPlan `json:"lessonPlanJson"`
}

// LessonSummary is the listing projection of a LessonDocument.
type LessonSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Region    string `json:"region"`
	GradeBand string `json:"gradeBand"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
