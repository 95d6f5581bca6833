package ycmd

import (
	"github.com/tidwall/gjson"
)

// Completion is one candidate returned by the backend.
type Completion struct {
	// InsertionText is the text to insert.
	InsertionText string

	// MenuText is the label shown in the completion menu, if distinct.
	MenuText string

	// ExtraMenuInfo is supplemental menu text (often the type).
	ExtraMenuInfo string

	// Kind is the backend's candidate kind (FUNCTION, CLASS, ...).
	Kind string

	// DetailedInfo is the long-form documentation, if provided.
	DetailedInfo string

	// DocString is the candidate's docstring, if provided.
	DocString string
}

// CompletionList is the backend's answer to a completions query.
type CompletionList struct {
	// Completions are the candidates, in backend ranking order.
	Completions []Completion

	// StartColumn is the one-based byte column the candidates replace from,
	// in the backend's coordinate convention.
	StartColumn int
}

// parseCompletionList decodes a /completions response. Malformed entries are
// skipped rather than failing the whole list.
func parseCompletionList(res gjson.Result) *CompletionList {
	list := &CompletionList{
		StartColumn: int(res.Get("completion_start_column").Int()),
	}

	res.Get("completions").ForEach(func(_, item gjson.Result) bool {
		text := item.Get("insertion_text").String()
		if text == "" {
			return true
		}
		list.Completions = append(list.Completions, Completion{
			InsertionText: text,
			MenuText:      item.Get("menu_text").String(),
			ExtraMenuInfo: item.Get("extra_menu_info").String(),
			Kind:          item.Get("kind").String(),
			DetailedInfo:  item.Get("detailed_info").String(),
			DocString:     item.Get("extra_data.doc_string").String(),
		})
		return true
	})

	return list
}
