// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidItemType = errors.New("invalid item type")
	ErrInvalidLikeType = errors.New("invalid like type")
	ErrInvalidAction   = errors.New("invalid action")
)

// ItemType selects the like endpoint and the id form field
type ItemType string

const (
	ItemQuestion ItemType = "question"
	ItemAnswer   ItemType = "answer"
)

// LikeType is the vote direction
type LikeType string

const (
	Like    LikeType = "like"
	Dislike LikeType = "dislike"
)

// Outcome kinds
const (
	KindReaction    = "reaction"
	KindCorrectness = "correctness"
)

// Endpoint paths
const (
	PathMakeCorrect = "/make_correct/"
)

// Form field and cookie names
const (
	FieldLikeType  = "like_type"
	FieldAnswerID  = "answer_id"
	CookieCSRF     = "csrftoken"
	HeaderCSRF     = "X-CSRFToken"
	CookieSession  = "sessionid"
	AttrDataID     = "id" // read as data-id
	ClassQuestions = "question-reputation"
	ClassAnswers   = "answer-reputation"
	ClassCorrect   = "correct-answer"
	ClassLabel     = "form-check-label"
)

// ParseItemType validates an item type string
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemQuestion, ItemAnswer:
		return ItemType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidItemType, s)
}

// LikePath returns the endpoint for votes on this item type: /question_like/ or /answer_like/
func (t ItemType) LikePath() string {
	return "/" + string(t) + "_like/"
}

// IDField returns the form field carrying the item id: question_id or answer_id
func (t ItemType) IDField() string {
	return string(t) + "_id"
}

// GroupClass is the class of the reaction groups rendered for this item type
func (t ItemType) GroupClass() string {
	if t == ItemQuestion {
		return ClassQuestions
	}
	return ClassAnswers
}

// ParseLikeType validates a like type string
func ParseLikeType(s string) (LikeType, error) {
	switch LikeType(s) {
	case Like, Dislike:
		return LikeType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLikeType, s)
}

// Action is one click requested on the command line
type Action struct {
	Kind     string
	ItemType ItemType
	ItemID   string
	LikeType LikeType
}

// ParseAction parses "question:42:like", "answer:7:dislike" or "correct:5"
func ParseAction(s string) (Action, error) {
	parts := strings.Split(s, ":")
	if len(parts) == 2 && parts[0] == "correct" {
		if parts[1] == "" {
			return Action{}, fmt.Errorf("%w: %q: empty id", ErrInvalidAction, s)
		}
		return Action{Kind: KindCorrectness, ItemType: ItemAnswer, ItemID: parts[1]}, nil
	}
	if len(parts) != 3 {
		return Action{}, fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}

	itemType, err := ParseItemType(parts[0])
	if err != nil {
		return Action{}, fmt.Errorf("%w: %q: %v", ErrInvalidAction, s, err)
	}
	likeType, err := ParseLikeType(parts[2])
	if err != nil {
		return Action{}, fmt.Errorf("%w: %q: %v", ErrInvalidAction, s, err)
	}
	if parts[1] == "" {
		return Action{}, fmt.Errorf("%w: %q: empty id", ErrInvalidAction, s)
	}

	return Action{Kind: KindReaction, ItemType: itemType, ItemID: parts[1], LikeType: likeType}, nil
}

func (a Action) String() string {
	if a.Kind == KindCorrectness {
		return "correct:" + a.ItemID
	}
	return string(a.ItemType) + ":" + a.ItemID + ":" + string(a.LikeType)
}

// Labels are the two fixed strings shown next to the "mark correct" button
type Labels struct {
	Correct    string
	NotCorrect string
}

// DefaultLabels matches the text rendered by the Q&A templates
func DefaultLabels() Labels {
	return Labels{
		Correct:    "Правильный ответ",
		NotCorrect: "Отметить как правильный",
	}
}

// Response types

// LikeResponse is returned by /question_like/ and /answer_like/.
// Count is a pointer so a body without the field is detectable.
type LikeResponse struct {
	Count *int `json:"count"`
}

// CorrectResponse is returned by /make_correct/
type CorrectResponse struct {
	Correct *bool `json:"correct"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Outcome records one finished submission
type Outcome struct {
	RequestID string        `json:"request_id"`
	Kind      string        `json:"kind"`
	ItemType  ItemType      `json:"item_type"`
	ItemID    string        `json:"item_id"`
	LikeType  LikeType      `json:"like_type,omitempty"`
	Result    string        `json:"result,omitempty"` // applied text, empty on failure
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	At        time.Time     `json:"at"`
}

// OK reports whether the submission reached the DOM
func (o Outcome) OK() bool {
	return o.Error == ""
}
