package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

type DecisionTree struct {
	nodes   []TreeNode
	classes []string
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`
}

type decisionTreeArtifact struct {
	FeatureNames []string   `json:"feature_names"`
	Classes      []string   `json:"classes"`
	Nodes        []TreeNode `json:"nodes"`
}

func (dt *DecisionTree) Predict(ctx context.Context, rows []FeatureRow) ([]Label, error) {
	if len(dt.nodes) == 0 {
		return nil, errors.New("model not loaded")
	}
	labels := make([]Label, 0, len(rows))
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		label, err := dt.walk(row.Values())
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, nil
}

func (dt *DecisionTree) walk(features []float64) (Label, error) {
	idx := 0
	// A well-formed tree reaches a leaf in fewer steps than it has nodes.
	for steps := 0; steps <= len(dt.nodes); steps++ {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return dt.label(node.ClassLabel), nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return "", errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(dt.nodes) {
			return "", errors.New("invalid tree state")
		}
	}
	return "", errors.New("invalid tree state: cycle detected")
}

// label maps a class index to its declared name, if the artifact names its classes.
func (dt *DecisionTree) label(classIdx int) Label {
	if len(dt.classes) > 0 {
		return Label(dt.classes[classIdx])
	}
	return Label(strconv.Itoa(classIdx))
}

// Unmarshal accepts either {"feature_names": [...], "classes": [...], "nodes": [...]} or a bare
// node array.
func (dt *DecisionTree) Unmarshal(payload []byte) error {
	var artifact decisionTreeArtifact
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &artifact.Nodes); err != nil {
			return err
		}
	} else if err := json.Unmarshal(trimmed, &artifact); err != nil {
		return err
	}

	if err := checkFeatureNames(artifact.FeatureNames); err != nil {
		return err
	}
	if err := validateNodes(artifact.Nodes, len(artifact.Classes)); err != nil {
		return err
	}
	dt.nodes = artifact.Nodes
	dt.classes = artifact.Classes
	return nil
}

func validateNodes(nodes []TreeNode, classCount int) error {
	if len(nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	for i, node := range nodes {
		if node.IsLeaf {
			if classCount > 0 && (node.ClassLabel < 0 || node.ClassLabel >= classCount) {
				return fmt.Errorf("node %d: class label %d has no class name", i, node.ClassLabel)
			}
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(FeatureNames) {
			return fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		if node.LeftChild < 0 || node.LeftChild >= len(nodes) {
			return fmt.Errorf("node %d: left child %d out of range", i, node.LeftChild)
		}
		if node.RightChild < 0 || node.RightChild >= len(nodes) {
			return fmt.Errorf("node %d: right child %d out of range", i, node.RightChild)
		}
	}
	return nil
}
