// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"testing"
)

func TestItemTypeEndpoints(t *testing.T) {
	tests := []struct {
		itemType  ItemType
		wantPath  string
		wantField string
		wantClass string
	}{
		{ItemQuestion, "/question_like/", "question_id", "question-reputation"},
		{ItemAnswer, "/answer_like/", "answer_id", "answer-reputation"},
	}

	for _, tt := range tests {
		t.Run(string(tt.itemType), func(t *testing.T) {
			if got := tt.itemType.LikePath(); got != tt.wantPath {
				t.Errorf("LikePath() = %q, want %q", got, tt.wantPath)
			}
			if got := tt.itemType.IDField(); got != tt.wantField {
				t.Errorf("IDField() = %q, want %q", got, tt.wantField)
			}
			if got := tt.itemType.GroupClass(); got != tt.wantClass {
				t.Errorf("GroupClass() = %q, want %q", got, tt.wantClass)
			}
		})
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		input   string
		want    Action
		wantErr bool
	}{
		{"question:42:like", Action{Kind: KindReaction, ItemType: ItemQuestion, ItemID: "42", LikeType: Like}, false},
		{"answer:7:dislike", Action{Kind: KindReaction, ItemType: ItemAnswer, ItemID: "7", LikeType: Dislike}, false},
		{"correct:5", Action{Kind: KindCorrectness, ItemType: ItemAnswer, ItemID: "5"}, false},
		{"comment:1:like", Action{}, true},
		{"question:1:love", Action{}, true},
		{"question::like", Action{}, true},
		{"correct:", Action{}, true},
		{"question:42", Action{}, true},
		{"", Action{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAction(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAction) {
					t.Errorf("ParseAction(%q) error = %v, want ErrInvalidAction", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAction(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAction(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestParseLikeType(t *testing.T) {
	if _, err := ParseLikeType("like"); err != nil {
		t.Errorf("ParseLikeType(like) error = %v", err)
	}
	if _, err := ParseLikeType("LIKE"); !errors.Is(err, ErrInvalidLikeType) {
		t.Errorf("expected ErrInvalidLikeType, got %v", err)
	}
	if _, err := ParseItemType("tag"); !errors.Is(err, ErrInvalidItemType) {
		t.Errorf("expected ErrInvalidItemType, got %v", err)
	}
}
