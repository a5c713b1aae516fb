// filter.go - Query matching that narrows the forest to hits and their ancestors
package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/Dicklesworthstone/arbor/pkg/model"
	"github.com/Dicklesworthstone/arbor/pkg/tree"
)

// FilterForest returns the subset of the forest that matches the query,
// keeping every ancestor of a match so the result is still a valid
// forest, plus the number of directly matching items (kept-for-context
// ancestors are not counted). A case-insensitive substring hit on name
// or id matches directly; names additionally go through a fuzzy
// subsequence pass, so "psr" finds "parser.go".
//
// An empty query returns the input unchanged with a zero count; a query
// with no hits returns a nil forest.
func FilterForest(items []model.Item, query string) ([]model.Item, int) {
	query = strings.TrimSpace(query)
	if query == "" {
		return items, 0
	}

	m := tree.Build(items)
	matched := matchIDs(m, query)
	if len(matched) == 0 {
		return nil, 0
	}

	keep := make(map[string]bool, len(matched))
	for id := range matched {
		keep[id] = true
		for _, ancestor := range m.AncestorPath(id) {
			keep[ancestor] = true
		}
	}

	return pruneForest(items, keep), len(matched)
}

// matchIDs returns the ids whose name or id matches the query.
func matchIDs(m *tree.Model, query string) map[string]bool {
	lower := strings.ToLower(query)

	var ids []string
	var names []string
	m.Walk(func(n *tree.Node) {
		ids = append(ids, n.Item.ID)
		names = append(names, n.Item.Name)
	})

	matched := make(map[string]bool)
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), lower) ||
			strings.Contains(strings.ToLower(ids[i]), lower) {
			matched[ids[i]] = true
		}
	}
	for _, hit := range fuzzy.Find(query, names) {
		matched[ids[hit.Index]] = true
	}
	return matched
}

// pruneForest clones the kept part of the forest. A kept branch whose
// children were all pruned stays an empty branch rather than turning
// into a leaf.
func pruneForest(items []model.Item, keep map[string]bool) []model.Item {
	var out []model.Item
	for i := range items {
		if !keep[items[i].ID] {
			continue
		}
		kept := items[i].Clone()
		if items[i].Children != nil {
			kept.Children = pruneForest(items[i].Children, keep)
			if kept.Children == nil {
				kept.Children = []model.Item{}
			}
		}
		out = append(out, kept)
	}
	return out
}
