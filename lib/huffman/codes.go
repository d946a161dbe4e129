// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffman

import (
	"fmt"
	"sort"
	"strings"
)

// MaxCodeLength is the longest code a 256-symbol tree can produce.
// Tables with longer codes are rejected by [CodeTable.Validate].
const MaxCodeLength = 255

// Code is a variable-length bit string written as '0' and '1'
// characters, most significant bit first.
type Code string

// CodeTable maps each byte value present in a message to its code.
type CodeTable map[byte]Code

// BuildCodes walks the tree and assigns each leaf the path from the
// root ('0' for the Zero branch, '1' for the One branch). A tree that
// is a single leaf gets the code "0".
func BuildCodes(root *Node) CodeTable {
	table := make(CodeTable)
	if root == nil {
		return table
	}
	if root.IsLeaf() {
		table[root.Symbol] = "0"
		return table
	}

	type pending struct {
		node   *Node
		prefix string
	}
	stack := []pending{{node: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.node.IsLeaf() {
			table[top.node.Symbol] = Code(top.prefix)
			continue
		}
		// Push One first so the Zero subtree is visited first.
		stack = append(stack,
			pending{node: top.node.One, prefix: top.prefix + "1"},
			pending{node: top.node.Zero, prefix: top.prefix + "0"},
		)
	}
	return table
}

// Symbols returns the table's symbols in ascending order.
func (table CodeTable) Symbols() []byte {
	symbols := make([]byte, 0, len(table))
	for symbol := range table {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}

// MaxLength returns the length of the longest code in the table.
func (table CodeTable) MaxLength() int {
	longest := 0
	for _, code := range table {
		if len(code) > longest {
			longest = len(code)
		}
	}
	return longest
}

// Validate checks that the table is usable for decoding: at least one
// entry, every code non-empty, binary, at most [MaxCodeLength] bits,
// and no code a prefix of another.
func (table CodeTable) Validate() error {
	_, err := newDecodeTrie(table)
	return err
}

// String formats the table as "symbol:code" pairs in symbol order,
// for logs and test failures.
func (table CodeTable) String() string {
	var builder strings.Builder
	for index, symbol := range table.Symbols() {
		if index > 0 {
			builder.WriteByte(' ')
		}
		fmt.Fprintf(&builder, "%02x:%s", symbol, table[symbol])
	}
	return builder.String()
}

// decodeTrie is the inverse of a CodeTable as a binary trie. Index 0
// is the root; a zero child index means no branch.
type decodeTrie struct {
	nodes []trieNode
}

type trieNode struct {
	children [2]int32
	symbol   byte
	leaf     bool
}

func newDecodeTrie(table CodeTable) (*decodeTrie, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrInvalidTable)
	}
	trie := &decodeTrie{nodes: make([]trieNode, 1, 2*len(table))}

	// Insert in symbol order so error messages are deterministic.
	for _, symbol := range table.Symbols() {
		code := table[symbol]
		if len(code) == 0 {
			return nil, fmt.Errorf("%w: empty code for byte 0x%02x", ErrInvalidTable, symbol)
		}
		if len(code) > MaxCodeLength {
			return nil, fmt.Errorf("%w: code for byte 0x%02x is %d bits, maximum is %d",
				ErrInvalidTable, symbol, len(code), MaxCodeLength)
		}

		current := int32(0)
		for position := 0; position < len(code); position++ {
			if trie.nodes[current].leaf {
				return nil, fmt.Errorf("%w: code for byte 0x%02x has a prefix that is another code",
					ErrInvalidTable, symbol)
			}
			var bit int
			switch code[position] {
			case '0':
				bit = 0
			case '1':
				bit = 1
			default:
				return nil, fmt.Errorf("%w: code for byte 0x%02x contains %q",
					ErrInvalidTable, symbol, code[position])
			}
			next := trie.nodes[current].children[bit]
			if next == 0 {
				trie.nodes = append(trie.nodes, trieNode{})
				next = int32(len(trie.nodes) - 1)
				trie.nodes[current].children[bit] = next
			}
			current = next
		}

		node := &trie.nodes[current]
		if node.leaf || node.children[0] != 0 || node.children[1] != 0 {
			return nil, fmt.Errorf("%w: code for byte 0x%02x is a prefix of another code",
				ErrInvalidTable, symbol)
		}
		node.leaf = true
		node.symbol = symbol
	}
	return trie, nil
}
