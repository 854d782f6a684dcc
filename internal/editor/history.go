package editor

import (
	"github.com/thenoetrevino/pilar/internal/document"
)

const defaultHistoryLimit = 100

// historyEntry holds the steps that undo (or redo) one transaction, already
// mapped onto the current document.
type historyEntry struct {
	label     string
	steps     []document.Step
	selection document.Selection
}

func (e *Editor) pushUndo(entry historyEntry) {
	e.undo = append(e.undo, entry)
	if len(e.undo) > e.historyLimit {
		e.undo = e.undo[len(e.undo)-e.historyLimit:]
	}
}

// mapHistory moves every recorded entry through a change that is not itself
// in the history, so undo keeps addressing the right content. Entries whose
// content was deleted are dropped.
func (e *Editor) mapHistory(m document.Mapping) {
	e.undo = mapEntries(e.undo, m)
	e.redo = mapEntries(e.redo, m)
}

func mapEntries(entries []historyEntry, m document.Mapping) []historyEntry {
	out := entries[:0]
	for _, entry := range entries {
		mapped, ok := mapEntry(entry, m)
		if ok {
			out = append(out, mapped)
		}
	}
	return out
}

func mapEntry(entry historyEntry, m document.Mapping) (historyEntry, bool) {
	steps := make([]document.Step, 0, len(entry.steps))
	for _, s := range entry.steps {
		mapped := s.Map(m)
		if mapped == nil {
			return historyEntry{}, false
		}
		steps = append(steps, mapped)
	}
	return historyEntry{
		label:     entry.label,
		steps:     steps,
		selection: document.Selection{Anchor: m.Map(entry.selection.Anchor, 1), Head: m.Map(entry.selection.Head, 1)},
	}, true
}

// CanUndo reports whether there is anything to undo.
func (e *Editor) CanUndo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.undo) > 0
}

// CanRedo reports whether there is anything to redo.
func (e *Editor) CanRedo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.redo) > 0
}

// Undo reverts the most recent local transaction. An entry that no longer
// applies is discarded and Undo reports false.
func (e *Editor) Undo() bool {
	return e.travel(&e.undo, &e.redo, "undo")
}

// Redo re-applies the most recently undone transaction.
func (e *Editor) Redo() bool {
	return e.travel(&e.redo, &e.undo, "redo")
}

func (e *Editor) travel(from, to *[]historyEntry, verb string) bool {
	e.mu.Lock()
	if len(*from) == 0 {
		e.mu.Unlock()
		return false
	}
	entry := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]
	current := e.state

	tr := current.Tr().
		SetOrigin(document.OriginHistory).
		SetAddToHistory(false).
		SetLabel(verb + " " + entry.label).
		SetSelection(entry.selection)
	for _, s := range entry.steps {
		tr.Step(s)
	}

	next, listeners, err := e.commit(tr)
	if err != nil {
		e.mu.Unlock()
		e.logger.Warn("history entry no longer applies", "action", verb, "label", entry.label, "error", err)
		return false
	}
	*to = append(*to, historyEntry{label: entry.label, steps: tr.Inverted(), selection: current.Selection()})
	e.mu.Unlock()
	e.flush()

	for _, l := range listeners {
		l(tr, next)
	}
	return true
}
