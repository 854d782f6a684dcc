// Package scenario replays named structural edits headlessly. The inspect
// command prints them and the tests use them as end-to-end checks.
package scenario

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/thenoetrevino/pilar/internal/app"
	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/gesture"
	"github.com/thenoetrevino/pilar/internal/services/dnd"
)

// ErrUnknownScenario indicates that no scenario has the requested name.
var ErrUnknownScenario = errors.New("unknown scenario")

// ErrScenarioFailed indicates that a step of the scenario was rejected.
var ErrScenarioFailed = errors.New("scenario step rejected")

// Scenario is one named edit run against a fresh document.
type Scenario struct {
	Name    string
	Title   string
	Summary string

	root   func() *document.Spec
	cursor int
	run    func(a *app.App) error
}

// Result is the document before and after a scenario ran.
type Result struct {
	Scenario  Scenario
	Before    *document.Spec
	After     *document.Spec
	Selection document.Selection
	CanUndo   bool
}

// All lists every scenario in display order.
func All() []Scenario {
	return []Scenario{
		{
			Name:    "a",
			Title:   "Delete a column of a two-column group",
			Summary: "Group [X, Y], deleteColumn(X): the group dissolves into Y's content.",
			root: func() *document.Spec {
				return document.DocSpec(pair("X", "Y"))
			},
			cursor: 3,
			run: func(a *app.App) error {
				return check(a.ColumnService.DeleteColumn(1), "deleteColumn")
			},
		},
		{
			Name:    "b",
			Title:   "Delete the middle column of three",
			Summary: "Group [X, Y, Z], deleteColumn(Y): X and Z keep their widths.",
			root: func() *document.Spec {
				return document.DocSpec(document.ColumnGroup(
					document.Column(1.5, document.Paragraph("X")).WithID("X"),
					document.Column(1, document.Paragraph("Y")).WithID("Y"),
					document.Column(0.7, document.Paragraph("Z")).WithID("Z"),
				).WithID("g"))
			},
			cursor: 3,
			run: func(a *app.App) error {
				return check(a.ColumnService.DeleteColumn(6), "deleteColumn")
			},
		},
		{
			Name:    "c",
			Title:   "Resize two equal columns",
			Summary: "Two columns 200px wide, the divider is dragged 120px right: weights become 1.3 and 0.7.",
			root: func() *document.Spec {
				return document.DocSpec(pair("left", "right"))
			},
			cursor: 3,
			run: func(a *app.App) error {
				c := a.Gestures(fixedLayout(200, 200))
				return drag(c, gesture.Hit{Kind: gesture.HitGap, Group: "g", Index: 0}, 200, 320, gesture.ResultResized)
			},
		},
		{
			Name:    "d",
			Title:   "Backspace in an empty column",
			Summary: "Group [empty, \"Hello\"], Backspace at the empty column: the group dissolves and the cursor ends after Hello.",
			root: func() *document.Spec {
				return document.DocSpec(document.ColumnGroup(
					document.EmptyColumn(),
					document.Column(1, document.Paragraph("Hello")),
				))
			},
			cursor: 3,
			run: func(a *app.App) error {
				return check(a.Keyboard.Backspace(), "backspace")
			},
		},
		{
			Name:    "e",
			Title:   "Reorder four columns",
			Summary: "Group [A, B, C, D], A is dragged onto slot 2: the columns swap pairwise into [C, B, A, D].",
			root: func() *document.Spec {
				return document.DocSpec(document.ColumnGroup(
					document.Column(1, document.Paragraph("A")).WithID("A"),
					document.Column(1, document.Paragraph("B")).WithID("B"),
					document.Column(1, document.Paragraph("C")).WithID("C"),
					document.Column(1, document.Paragraph("D")).WithID("D"),
				).WithID("g"))
			},
			cursor: 3,
			run: func(a *app.App) error {
				c := a.Gestures(fixedLayout(20, 20, 20, 20))
				return drag(c, gesture.Hit{Kind: gesture.HitHandle, Group: "g", Index: 0}, 5, 47, gesture.ResultMoved)
			},
		},
		{
			Name:    "dnd",
			Title:   "Drop a block beside another",
			Summary: "Paragraph \"note\" is dragged onto the right edge of \"body\": both end up side by side in a new group.",
			root: func() *document.Spec {
				return document.DocSpec(
					document.Paragraph("body").WithID("body"),
					document.Paragraph("note").WithID("note"),
				)
			},
			cursor: 1,
			run: func(a *app.App) error {
				return check(a.DropService.Drop(dnd.Drop{
					Dragged: "note",
					Target:  "body",
					Side:    dnd.SideRight,
					IsMove:  true,
				}), "drop")
			},
		},
		{
			Name:    "insert",
			Title:   "Insert a column group",
			Summary: "An empty paragraph is replaced by a three-column group.",
			root: func() *document.Spec {
				return document.DocSpec(document.Paragraph("title"), document.Paragraph(""))
			},
			cursor: 8,
			run: func(a *app.App) error {
				return check(a.ColumnService.InsertColumnGroup(3), "insertColumnGroup")
			},
		},
	}
}

// Names returns the scenario names in display order.
func Names() []string {
	var names []string
	for _, s := range All() {
		names = append(names, s.Name)
	}
	return names
}

// Find returns the scenario called name.
func Find(name string) (Scenario, error) {
	all := All()
	i := slices.IndexFunc(all, func(s Scenario) bool { return s.Name == name })
	if i < 0 {
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	return all[i], nil
}

// Run replays s on a fresh document.
func (s Scenario) Run(logger *slog.Logger) (Result, error) {
	d, err := document.New(s.root(), document.WithIDGenerator(document.SequentialIDs(s.Name)))
	if err != nil {
		return Result{}, err
	}
	a := app.New(d,
		app.WithSelection(document.Cursor(s.cursor)),
		app.WithLogger(logger))
	defer func() { _ = a.Close() }()

	res := Result{Scenario: s, Before: d.Spec()}
	if err := s.run(a); err != nil {
		return res, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	st := a.Editor.State()
	res.After = st.Doc().Spec()
	res.Selection = st.Selection()
	res.CanUndo = a.Editor.CanUndo()
	return res, nil
}

func pair(left, right string) *document.Spec {
	return document.ColumnGroup(
		document.Column(1, document.Paragraph(left)).WithID(document.NodeID(left)),
		document.Column(1, document.Paragraph(right)).WithID(document.NodeID(right)),
	).WithID("g")
}

func check(ok bool, command string) error {
	if !ok {
		return fmt.Errorf("%w: %s", ErrScenarioFailed, command)
	}
	return nil
}

// fixedLayout places columns of the given pixel widths one cell apart.
func fixedLayout(widths ...int) gesture.Layout {
	return gesture.LayoutFunc(func(group document.NodeID) (gesture.Snapshot, bool) {
		snap := gesture.Snapshot{Group: group, Gap: 1}
		left := 0
		for _, w := range widths {
			snap.Columns = append(snap.Columns, gesture.Box{Left: left, Width: w})
			left += w + 1
		}
		return snap, true
	})
}

// drag presses at from, moves to and releases at to on the first row.
func drag(c *gesture.Controller, hit gesture.Hit, from, to int, want gesture.Result) error {
	if err := c.PointerDown(hit, from, 0); err != nil {
		return err
	}
	if err := c.PointerMove(to, 0); err != nil {
		return err
	}
	got, err := c.PointerUp(to, 0)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: gesture ended %s, want %s", ErrScenarioFailed, got, want)
	}
	return nil
}
