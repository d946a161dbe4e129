// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffman

import "container/heap"

// Node is a Huffman tree node. A leaf carries a symbol and its
// frequency and has no children. An internal node carries the sum of
// its children's frequencies and always has exactly two children.
type Node struct {
	Symbol    byte
	Frequency uint64
	Zero      *Node
	One       *Node

	// sequence is the creation order used to break frequency ties.
	sequence int
}

// IsLeaf reports whether the node carries a symbol.
func (node *Node) IsLeaf() bool {
	return node.Zero == nil && node.One == nil
}

// BuildTree builds a Huffman tree from byte frequencies by greedy
// minimum-pair merging. Returns [ErrEmptyAlphabet] when every count
// is zero. With a single distinct byte the returned root is that
// byte's leaf.
func BuildTree(frequencies FrequencyTable) (*Node, error) {
	queue := make(nodeHeap, 0, 256)
	sequence := 0
	for symbol, count := range frequencies {
		if count == 0 {
			continue
		}
		queue = append(queue, &Node{
			Symbol:    byte(symbol),
			Frequency: count,
			sequence:  sequence,
		})
		sequence++
	}
	if len(queue) == 0 {
		return nil, ErrEmptyAlphabet
	}
	heap.Init(&queue)

	for queue.Len() > 1 {
		zero := heap.Pop(&queue).(*Node)
		one := heap.Pop(&queue).(*Node)
		heap.Push(&queue, &Node{
			Frequency: zero.Frequency + one.Frequency,
			Zero:      zero,
			One:       one,
			sequence:  sequence,
		})
		sequence++
	}
	return queue[0], nil
}

// nodeHeap is a min-heap of tree nodes ordered by frequency, then by
// creation sequence. Implements container/heap.Interface.
type nodeHeap []*Node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].Frequency != h[j].Frequency {
		return h[i].Frequency < h[j].Frequency
	}
	return h[i].sequence < h[j].sequence
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)   { *h = append(*h, x.(*Node)) }
func (h *nodeHeap) Pop() any {
	old := *h
	node := old[len(old)-1]
	*h = old[:len(old)-1]
	return node
}
