package models

import "time"

// VocabularyItem is one user's learning record for a dictionary word.
// The descriptive word fields are joined in read-only from the shared
// dictionary; only the learning state is owned (and mutated) here.
type VocabularyItem struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	WordID         int64      `json:"word_id"`
	Word           string     `json:"word"`
	Language       string     `json:"language"`
	Definition     string     `json:"definition"`
	Example        string     `json:"example,omitempty"`
	Phonetic       string     `json:"phonetic,omitempty"`
	PartOfSpeech   string     `json:"part_of_speech,omitempty"`
	Difficulty     string     `json:"difficulty,omitempty"`
	MasteryLevel   int        `json:"mastery_level"`
	ReviewCount    int        `json:"review_count"`
	IsMastered     bool       `json:"is_mastered"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	NextReviewDate *time.Time `json:"next_review_date,omitempty"`
	Source         string     `json:"source,omitempty"`
	SkipCount      int        `json:"skip_count"`
	ResetCount     int        `json:"reset_count"`
	LastResetAt    *time.Time `json:"last_reset_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Due-word priority buckets, ordered from most to least urgent.
const (
	PriorityOverdue   = "overdue"
	PriorityDueToday  = "due_today"
	PriorityScheduled = "scheduled"
)

// DueWord is a vocabulary item projected for a review round, tagged with
// its scheduling bucket.
type DueWord struct {
	VocabularyItem
	Priority string `json:"priority"`
}

// DueWordFilter narrows due-word selection.
type DueWordFilter struct {
	UserID     int64
	Limit      int
	Language   string
	Difficulty string
	// FreshOnly restricts candidates to items added today with a non-empty
	// source tag (the "smart words" mode).
	FreshOnly bool
}

// Distractor is a wrong-answer candidate for quiz rendering.
type Distractor struct {
	ID         int64  `json:"id"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Phonetic   string `json:"phonetic,omitempty"`
}

// DueWordsResult is the full payload for a review round.
type DueWordsResult struct {
	Words       []DueWord    `json:"words"`
	Distractors []Distractor `json:"distractors"`
	Total       int          `json:"total"`
	DueCount    int          `json:"due_count"`
}
