package concept

import "strings"

// ChangeSentinel in the change column means the whole descriptor changed.
const ChangeSentinel = "K"

// ParseDescriptor splits a descriptor on its first period into a preferred
// label and a definition. The definition is nil when there is no period or
// nothing follows it; the label is nil for a blank descriptor.
func ParseDescriptor(descriptor, lang string) (prefLabel, definition *Label) {
	text := strings.TrimSpace(descriptor)
	if text == "" {
		return nil, nil
	}

	head, tail, found := strings.Cut(text, ".")
	prefLabel = &Label{Lang: lang, Value: strings.TrimSpace(head)}

	if found {
		if tail = strings.TrimSpace(tail); tail != "" {
			definition = &Label{Lang: lang, Value: tail}
		}
	}
	return prefLabel, definition
}

// HistoryNote returns the descriptor verbatim, or nil when it is blank.
func HistoryNote(descriptor string) *string {
	if strings.TrimSpace(descriptor) == "" {
		return nil
	}
	return &descriptor
}

// ChangeNote derives the change note from the change-indicator cell.
//
//	""                  -> nil
//	"K"                 -> descriptor
//	"K2 added subfield" -> "added subfield"
//
// Anything other than the bare sentinel is a two-character prefix followed
// by explanatory text.
func ChangeNote(descriptor, indicator string) *string {
	indicator = strings.TrimSpace(indicator)
	if indicator == "" {
		return nil
	}
	if indicator == ChangeSentinel {
		return HistoryNote(descriptor)
	}

	r := []rune(indicator)
	if len(r) <= 2 {
		return nil
	}
	note := strings.TrimSpace(string(r[2:]))
	if note == "" {
		return nil
	}
	return &note
}
