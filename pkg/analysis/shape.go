// Package analysis computes structural metrics over a built forest.
// Outputs are deterministic and bounded so they are safe for scripted
// consumers as well as the TUI insights view.
package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/Dicklesworthstone/arbor/pkg/tree"
)

// Shape summarizes the structure of a forest.
type Shape struct {
	NodeCount        int `json:"node_count"`
	RootCount        int `json:"root_count"`
	LeafCount        int `json:"leaf_count"`
	BranchCount      int `json:"branch_count"`
	EmptyBranchCount int `json:"empty_branch_count"`

	// Depth metrics over all nodes; roots sit at depth 0.
	MaxDepth    int     `json:"max_depth"`
	MeanDepth   float64 `json:"mean_depth"`
	DepthStdDev float64 `json:"depth_std_dev"`

	// DepthHistogram counts nodes per depth, index = depth.
	DepthHistogram []int `json:"depth_histogram,omitempty"`

	// Branching metrics over branches only.
	MeanBranching float64 `json:"mean_branching"`
	MaxBranching  int     `json:"max_branching"`

	DraggableCount   int `json:"draggable_count"`
	UndroppableCount int `json:"undroppable_count"`

	// DeepestID is the first node at MaxDepth in display order;
	// WidestID the first branch with MaxBranching children.
	DeepestID string `json:"deepest_id,omitempty"`
	WidestID  string `json:"widest_id,omitempty"`
}

// Analyze walks the whole forest once and fills in every metric.
func Analyze(m *tree.Model) *Shape {
	shape := &Shape{RootCount: m.RootCount()}

	var depths []float64
	var branching []float64

	m.Walk(func(node *tree.Node) {
		shape.NodeCount++
		depths = append(depths, float64(node.Depth))

		for len(shape.DepthHistogram) <= node.Depth {
			shape.DepthHistogram = append(shape.DepthHistogram, 0)
		}
		shape.DepthHistogram[node.Depth]++

		if shape.DeepestID == "" || node.Depth > shape.MaxDepth {
			shape.MaxDepth = node.Depth
			shape.DeepestID = node.Item.ID
		}

		if node.IsBranch() {
			shape.BranchCount++
			branching = append(branching, float64(len(node.Children)))
			if len(node.Children) == 0 {
				shape.EmptyBranchCount++
			}
			if shape.WidestID == "" || len(node.Children) > shape.MaxBranching {
				shape.MaxBranching = len(node.Children)
				shape.WidestID = node.Item.ID
			}
		} else {
			shape.LeafCount++
		}

		if node.Item.Draggable {
			shape.DraggableCount++
		}
		if !node.Item.CanDrop() {
			shape.UndroppableCount++
		}
	})

	if len(depths) > 0 {
		shape.MeanDepth = stat.Mean(depths, nil)
	}
	if len(depths) > 1 {
		shape.DepthStdDev = stat.StdDev(depths, nil)
	}
	if len(branching) > 0 {
		shape.MeanBranching = stat.Mean(branching, nil)
	}

	return shape
}

// Insight is one human-readable observation about the forest shape.
type Insight struct {
	Label  string `json:"label"`
	Detail string `json:"detail"`
}

// Insights derives observations worth surfacing. The list is ordered
// from structural facts to oddities and is empty only for an empty
// forest.
func (s *Shape) Insights() []Insight {
	if s.NodeCount == 0 {
		return nil
	}

	insights := []Insight{
		{
			Label: "size",
			Detail: fmt.Sprintf("%d nodes across %d roots: %d branches, %d leaves",
				s.NodeCount, s.RootCount, s.BranchCount, s.LeafCount),
		},
		{
			Label: "depth",
			Detail: fmt.Sprintf("max depth %d, mean %.1f (spread %.1f)",
				s.MaxDepth, s.MeanDepth, s.DepthStdDev),
		},
	}

	if s.BranchCount > 0 {
		insights = append(insights, Insight{
			Label: "branching",
			Detail: fmt.Sprintf("branches hold %.1f children on average, widest is %s with %d",
				s.MeanBranching, s.WidestID, s.MaxBranching),
		})
	}

	if s.MaxDepth >= 8 {
		insights = append(insights, Insight{
			Label:  "deep chain",
			Detail: fmt.Sprintf("%s sits %d levels down, a long way to drill", s.DeepestID, s.MaxDepth),
		})
	}

	if s.MaxBranching >= 15 {
		insights = append(insights, Insight{
			Label:  "wide fan",
			Detail: fmt.Sprintf("%s has %d direct children, scrolling will dominate", s.WidestID, s.MaxBranching),
		})
	}

	if s.EmptyBranchCount > 0 {
		insights = append(insights, Insight{
			Label:  "empty sections",
			Detail: fmt.Sprintf("%d branch(es) expand to nothing", s.EmptyBranchCount),
		})
	}

	if s.DraggableCount > 0 {
		insights = append(insights, Insight{
			Label: "drag surface",
			Detail: fmt.Sprintf("%d draggable item(s), %d spot(s) refuse drops",
				s.DraggableCount, s.UndroppableCount),
		})
	}

	return insights
}
