// Package categorytree converts a user's flat category list into the nested
// forest shown in the UI and back into flat placements for persistence.
//
// Categories are stored with a nullable parent_id and nothing prevents that
// column from forming a cycle, so every walk in this package is guarded.
package categorytree

import (
	"cmp"
	"slices"

	"github.com/stoicaandrei/monney2/internal/models"
)

// Node is a category with its ordered children.
type Node struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Type     models.CategoryType `json:"type"`
	Color    string              `json:"color"`
	Order    int                 `json:"order"`
	Children []*Node             `json:"children"`
}

// Placement is the position of one category after a tree edit: its parent
// (nil for a root) and its index among its siblings.
type Placement struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parent_id,omitempty"`
	Order    int     `json:"order"`
}

// Build groups categories by parent, sorts each sibling group by Order
// (stable, so equal orders keep input order) and nests them.
//
// A category whose parent is not part of the input is treated as a root.
// Categories that are only reachable through a parent cycle are surfaced as
// roots too, with the cycle cut where it was entered, so no input row is lost.
func Build(categories []models.Category) []*Node {
	present := make(map[string]bool, len(categories))
	for _, c := range categories {
		present[c.ID] = true
	}

	byParent := make(map[string][]models.Category)
	for _, c := range categories {
		key := ""
		if c.ParentID != nil && present[*c.ParentID] {
			key = *c.ParentID
		}
		byParent[key] = append(byParent[key], c)
	}
	for _, group := range byParent {
		sortByOrder(group)
	}

	visited := make(map[string]bool, len(categories))
	var build func(parentKey string) []*Node
	build = func(parentKey string) []*Node {
		group := byParent[parentKey]
		nodes := make([]*Node, 0, len(group))
		for _, c := range group {
			if visited[c.ID] {
				continue
			}
			visited[c.ID] = true
			n := newNode(c)
			n.Children = build(c.ID)
			nodes = append(nodes, n)
		}
		return nodes
	}

	roots := build("")

	if len(visited) < len(categories) {
		stranded := make([]models.Category, 0, len(categories)-len(visited))
		for _, c := range categories {
			if !visited[c.ID] {
				stranded = append(stranded, c)
			}
		}
		sortByOrder(stranded)
		for _, c := range stranded {
			if visited[c.ID] {
				continue
			}
			visited[c.ID] = true
			n := newNode(c)
			n.Children = build(c.ID)
			roots = append(roots, n)
		}
	}

	return roots
}

// Flatten walks the forest in pre-order and emits one Placement per node.
// Order is the node's index in its sibling slice, so the result is always a
// dense 0..n-1 sequence per sibling group regardless of the Order values the
// nodes carried in.
func Flatten(nodes []*Node, parentID *string) []Placement {
	var out []Placement
	for i, n := range nodes {
		out = append(out, Placement{ID: n.ID, ParentID: parentID, Order: i})
		if len(n.Children) > 0 {
			id := n.ID
			out = append(out, Flatten(n.Children, &id)...)
		}
	}
	return out
}

func newNode(c models.Category) *Node {
	return &Node{
		ID:       c.ID,
		Name:     c.Name,
		Type:     c.Type,
		Color:    c.Color,
		Order:    c.Order,
		Children: []*Node{},
	}
}

func sortByOrder(group []models.Category) {
	slices.SortStableFunc(group, func(a, b models.Category) int {
		return cmp.Compare(a.Order, b.Order)
	})
}
