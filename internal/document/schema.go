package document

import (
	"fmt"
	"math"
)

// allowedChildren is the content grammar of every container type.
var allowedChildren = map[NodeType]map[NodeType]bool{
	TypeDoc: {
		TypeParagraph:   true,
		TypeHeading:     true,
		TypeColumnGroup: true,
	},
	TypeColumnGroup: {
		TypeColumn: true,
	},
	TypeColumn: {
		TypeParagraph: true,
		TypeHeading:   true,
	},
}

// minChildren is the smallest child count each container accepts.
var minChildren = map[NodeType]int{
	TypeDoc:         1,
	TypeColumnGroup: 2,
	TypeColumn:      1,
}

// Check validates the whole document against the schema:
//   - doc holds ≥1 block; groups hold ≥2 columns; columns hold ≥1 textblock
//   - a column group never appears inside a column
//   - every column weight is finite and ≥ MinColumnWidth
//   - parent links agree with child lists and no node is reachable twice
func Check(d *Doc) error {
	root, ok := d.nodes[d.root]
	if !ok || root.Type != TypeDoc {
		return fmt.Errorf("%w: missing doc root", ErrSchemaViolation)
	}
	seen := make(map[NodeID]bool, len(d.nodes))
	if err := d.checkNode(root, seen); err != nil {
		return err
	}
	if len(seen) != len(d.nodes) {
		return fmt.Errorf("%w: %d orphaned nodes", ErrSchemaViolation, len(d.nodes)-len(seen))
	}
	return nil
}

func (d *Doc) checkNode(n *Node, seen map[NodeID]bool) error {
	if seen[n.ID] {
		return fmt.Errorf("%w: node %s reachable twice", ErrSchemaViolation, n.ID)
	}
	seen[n.ID] = true

	switch n.Type {
	case TypeParagraph:
		if len(n.Children) > 0 {
			return fmt.Errorf("%w: paragraph %s has children", ErrSchemaViolation, n.ID)
		}
		return nil
	case TypeHeading:
		if len(n.Children) > 0 {
			return fmt.Errorf("%w: heading %s has children", ErrSchemaViolation, n.ID)
		}
		if n.Attrs.Level < 1 || n.Attrs.Level > 3 {
			return fmt.Errorf("%w: heading %s level %d", ErrSchemaViolation, n.ID, n.Attrs.Level)
		}
		return nil
	case TypeColumn:
		w := n.Attrs.Width
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: column %s width %v is not finite", ErrSchemaViolation, n.ID, w)
		}
		if w < MinColumnWidth {
			return fmt.Errorf("%w: column %s width %.2f below %.2f", ErrSchemaViolation, n.ID, w, MinColumnWidth)
		}
	case TypeDoc, TypeColumnGroup:
	default:
		return fmt.Errorf("%w: unknown node type %q", ErrSchemaViolation, n.Type)
	}

	if n.Text != "" {
		return fmt.Errorf("%w: container %s holds text", ErrSchemaViolation, n.ID)
	}
	if len(n.Children) < minChildren[n.Type] {
		return fmt.Errorf("%w: %s %s has %d children, needs %d",
			ErrSchemaViolation, n.Type, n.ID, len(n.Children), minChildren[n.Type])
	}
	allowed := allowedChildren[n.Type]
	for _, id := range n.Children {
		child, ok := d.nodes[id]
		if !ok {
			return fmt.Errorf("%w: dangling child %s", ErrSchemaViolation, id)
		}
		if child.Parent != n.ID {
			return fmt.Errorf("%w: child %s points at parent %s, not %s", ErrSchemaViolation, id, child.Parent, n.ID)
		}
		if !allowed[child.Type] {
			return fmt.Errorf("%w: %s not allowed inside %s", ErrSchemaViolation, child.Type, n.Type)
		}
		if err := d.checkNode(child, seen); err != nil {
			return err
		}
	}
	return nil
}
