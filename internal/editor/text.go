package editor

import (
	"github.com/thenoetrevino/pilar/internal/document"
)

// Direction is a cursor movement direction.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// cursorBlock finds the textblock holding the cursor and the cursor's offset
// inside it.
func cursorBlock(s *document.State) (document.TextblockSpan, int, bool) {
	pos := s.Selection().Head
	for _, b := range s.Doc().Textblocks() {
		if pos >= b.Start && pos <= b.End {
			return b, pos - b.Start, true
		}
	}
	return document.TextblockSpan{}, 0, false
}

// InsertText types text at the cursor, replacing the selection when it lies
// inside one textblock.
func (e *Editor) InsertText(text string) bool {
	s := e.State()
	sel := s.Selection()
	block, _, ok := cursorBlock(s)
	if !ok || sel.From() < block.Start || sel.To() > block.End {
		return false
	}
	tr := s.Tr().SetLabel("insertText")
	if !sel.Empty() {
		tr.DeleteText(sel.From(), sel.To())
	}
	tr.InsertText(sel.From(), text)
	return e.Dispatch(tr) == nil
}

// DeleteBackward deletes the rune before the cursor, or joins the block
// into the textblock right before it when the cursor is at the block start.
func (e *Editor) DeleteBackward() bool {
	s := e.State()
	block, offset, ok := cursorBlock(s)
	if !ok {
		return false
	}
	tr := s.Tr().SetLabel("deleteBackward")
	if offset > 0 {
		tr.DeleteText(block.Start+offset-1, block.Start+offset)
		return e.Dispatch(tr) == nil
	}

	d := s.Doc()
	cur, _ := d.Node(block.ID)
	idx := d.IndexOf(cur)
	parent, _ := d.Node(cur.Parent)
	prev := d.Child(parent, idx-1)
	if prev == nil || !prev.Type.IsTextblock() {
		return false
	}
	prevPos, _ := d.PosOf(prev.ID)
	join := prevPos + 1 + prev.TextLen()
	curPos := block.Start - 1
	size := d.Size(cur)

	tr.InsertText(join, cur.Text).
		Delete(curPos+cur.TextLen(), curPos+cur.TextLen()+size).
		SetSelection(document.Cursor(join))
	return e.Dispatch(tr) == nil
}

// SplitBlock splits the textblock at the cursor. The tail moves into a new
// paragraph and the cursor follows it.
func (e *Editor) SplitBlock() bool {
	s := e.State()
	block, offset, ok := cursorBlock(s)
	if !ok {
		return false
	}
	cur, _ := s.Doc().Node(block.ID)
	rest := string([]rune(cur.Text)[offset:])
	pos := block.Start + offset

	tr := s.Tr().SetLabel("splitBlock")
	if rest != "" {
		tr.DeleteText(pos, block.End)
	}
	tr.Insert(pos+1, document.Paragraph(rest)).
		SetSelection(document.Cursor(pos + 2))
	return e.Dispatch(tr) == nil
}

// MoveCursor moves a collapsed cursor one step in dir.
func (e *Editor) MoveCursor(dir Direction) bool {
	s := e.State()
	blocks := s.Doc().Textblocks()
	pos := s.Selection().Head
	at := -1
	for i, b := range blocks {
		if pos >= b.Start && pos <= b.End {
			at = i
			break
		}
	}
	if at < 0 {
		return false
	}
	b := blocks[at]
	offset := pos - b.Start

	target := pos
	switch dir {
	case Left:
		switch {
		case pos > b.Start:
			target = pos - 1
		case at > 0:
			target = blocks[at-1].End
		}
	case Right:
		switch {
		case pos < b.End:
			target = pos + 1
		case at < len(blocks)-1:
			target = blocks[at+1].Start
		}
	case Up:
		if at > 0 {
			prev := blocks[at-1]
			target = min(prev.Start+offset, prev.End)
		}
	case Down:
		if at < len(blocks)-1 {
			next := blocks[at+1]
			target = min(next.Start+offset, next.End)
		}
	}
	if target == pos && s.Selection().Empty() {
		return false
	}
	return e.SetSelection(document.Cursor(target)) == nil
}

// CursorTo places the cursor at offset runes into the textblock with the
// given id.
func (e *Editor) CursorTo(id document.NodeID, offset int) bool {
	for _, b := range e.State().Doc().Textblocks() {
		if b.ID != id {
			continue
		}
		pos := b.Start + max(0, min(offset, b.End-b.Start))
		return e.SetSelection(document.Cursor(pos)) == nil
	}
	return false
}
