package categorytree

import (
	"strings"

	"github.com/stoicaandrei/monney2/internal/models"
)

// PathSeparator joins ancestor names in a path label.
const PathSeparator = " › "

// Index is an id lookup over a set of categories that can resolve ancestry.
type Index struct {
	byID map[string]models.Category
}

// NewIndex indexes categories by id. Later duplicates win.
func NewIndex(categories []models.Category) *Index {
	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	return &Index{byID: byID}
}

// Get returns the category with the given id.
func (ix *Index) Get(id string) (models.Category, bool) {
	c, ok := ix.byID[id]
	return c, ok
}

// Len returns the number of indexed categories.
func (ix *Index) Len() int {
	return len(ix.byID)
}

// Chain returns the ancestry of id ordered root first, ending with id itself.
// The walk stops at a parent that is not in the index (that ancestor is then
// treated as the root) and at the first category seen twice, so a cyclic
// parent chain terminates. An unknown id yields nil.
func (ix *Index) Chain(id string) []models.Category {
	var chain []models.Category
	seen := make(map[string]bool)
	current := id
	for {
		c, ok := ix.byID[current]
		if !ok || seen[current] {
			break
		}
		seen[current] = true
		chain = append(chain, c)
		if c.ParentID == nil {
			break
		}
		current = *c.ParentID
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// PathLabel joins the names along Chain(id), e.g. "Food › Groceries › Organic".
// An unknown id yields the id itself.
func (ix *Index) PathLabel(id string) string {
	chain := ix.Chain(id)
	if len(chain) == 0 {
		return id
	}
	return JoinPath(chain)
}

// JoinPath joins the names of chain with PathSeparator.
func JoinPath(chain []models.Category) string {
	names := make([]string, len(chain))
	for i, c := range chain {
		names[i] = c.Name
	}
	return strings.Join(names, PathSeparator)
}
