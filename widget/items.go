// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package widget

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/danielhkuo/askme-reactions/dom"
	"github.com/danielhkuo/askme-reactions/models"
)

// ReactionItem is one vote group: increase control, counter, decrease control.
type ReactionItem struct {
	Type     models.ItemType
	ItemID   string
	Increase *html.Node
	Counter  *html.Node
	Decrease *html.Node
}

// CorrectnessItem is one "mark as correct" group of an answer.
type CorrectnessItem struct {
	ItemID string
	Button *html.Node
	Label  *html.Node
}

// FindReactionItems builds view models for every reaction group of
// itemType. A group must have exactly three element children and the
// middle one must carry data-id. Groups that don't are returned as errors
// alongside the valid items.
func FindReactionItems(doc *dom.Document, itemType models.ItemType) ([]ReactionItem, []error) {
	var items []ReactionItem
	var errs []error

	for i, group := range doc.ElementsByClass(itemType.GroupClass()) {
		children := dom.ElementChildren(group)
		if len(children) != 3 {
			errs = append(errs, fmt.Errorf("%s group %d: expected 3 children, got %d", itemType, i, len(children)))
			continue
		}

		id, ok := dom.Dataset(children[1], models.AttrDataID)
		if !ok || id == "" {
			errs = append(errs, fmt.Errorf("%s group %d: counter has no data-id", itemType, i))
			continue
		}

		items = append(items, ReactionItem{
			Type:     itemType,
			ItemID:   id,
			Increase: children[0],
			Counter:  children[1],
			Decrease: children[2],
		})
	}

	return items, errs
}

// FindCorrectnessItems builds view models for every correctness group.
// The group carries data-id, its first element child is the button and
// the label is the first descendant with class form-check-label.
func FindCorrectnessItems(doc *dom.Document) ([]CorrectnessItem, []error) {
	var items []CorrectnessItem
	var errs []error

	for i, group := range doc.ElementsByClass(models.ClassCorrect) {
		id, ok := dom.Dataset(group, models.AttrDataID)
		if !ok || id == "" {
			errs = append(errs, fmt.Errorf("correctness group %d: no data-id", i))
			continue
		}

		children := dom.ElementChildren(group)
		if len(children) == 0 {
			errs = append(errs, fmt.Errorf("correctness group %s: no button", id))
			continue
		}

		label := dom.FindByClass(group, models.ClassLabel)
		if label == nil {
			errs = append(errs, fmt.Errorf("correctness group %s: no .%s", id, models.ClassLabel))
			continue
		}

		items = append(items, CorrectnessItem{
			ItemID: id,
			Button: children[0],
			Label:  label,
		})
	}

	return items, errs
}
