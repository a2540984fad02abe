package analytics

import (
	"github.com/stoicaandrei/monney2/internal/categorytree"
	"github.com/stoicaandrei/monney2/internal/models"
)

// SankeyRoot is the id and label of the synthetic source node.
const SankeyRoot = "Total Spending"

// SankeyNode is one vertex of the flow graph. ID is the full path label;
// Label is its last segment.
type SankeyNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// SankeyLink is the summed expense volume flowing from Source to Target.
type SankeyLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int64  `json:"value"`
}

// Sankey is the node/link graph of expense volume by category ancestry.
type Sankey struct {
	Nodes []SankeyNode `json:"nodes"`
	Links []SankeyLink `json:"links"`
}

type edge struct {
	source, target string
}

// BuildSankey routes each expense transaction from SankeyRoot down its
// category's ancestry to the category itself, adding the transaction's
// magnitude to every edge on the way.
//
// Only expense categories take part, so a parent of another type truncates
// the walk as a missing parent would. Transactions whose category does not
// resolve are skipped. Nodes are keyed by path label, so distinct categories
// with identical name paths merge into one node whose color is that of the
// last category seen. The graph is empty only when there is no expense
// transaction at all; otherwise it holds at least the root.
func BuildSankey(txs []models.Transaction, categories []models.Category) Sankey {
	expense := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if c.Type == models.CategoryTypeExpense {
			expense = append(expense, c)
		}
	}
	ix := categorytree.NewIndex(expense)

	nodes := []SankeyNode{}
	nodePos := make(map[string]int)
	links := []SankeyLink{}
	linkPos := make(map[edge]int)

	addNode := func(id, label, color string) {
		if i, ok := nodePos[id]; ok {
			nodes[i].Color = color
			return
		}
		nodePos[id] = len(nodes)
		nodes = append(nodes, SankeyNode{ID: id, Label: label, Color: color})
	}
	addLink := func(source, target string, value int64) {
		e := edge{source, target}
		if i, ok := linkPos[e]; ok {
			links[i].Value += value
			return
		}
		linkPos[e] = len(links)
		links = append(links, SankeyLink{Source: source, Target: target, Value: value})
	}

	for _, tx := range txs {
		if tx.Amount >= 0 {
			continue
		}
		if len(nodes) == 0 {
			addNode(SankeyRoot, SankeyRoot, "")
		}
		chain := ix.Chain(tx.CategoryID)
		if len(chain) == 0 {
			continue
		}

		value := -tx.Amount
		source := SankeyRoot
		for i, c := range chain {
			target := categorytree.JoinPath(chain[:i+1])
			addNode(target, c.Name, c.Color)
			addLink(source, target, value)
			source = target
		}
	}

	return Sankey{Nodes: nodes, Links: links}
}
