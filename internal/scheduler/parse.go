package scheduler

import (
	"strconv"
	"strings"
)

// nodeTableColumns is the number of positional columns in a status row:
// name, available, cpus, cpus state, time limit, free memory, total memory.
const nodeTableColumns = 7

// ParseNodeTable converts raw sinfo output into nodes, in input order.
//
// The first line is a header and is discarded without validation. Each
// remaining non-blank line is split on whitespace and mapped positionally.
// Missing or non-numeric fields become empty/zero; a malformed row never
// stops the rows after it from being parsed. Unavailable nodes are kept.
func ParseNodeTable(raw string) []Node {
	lines := strings.Split(raw, "\n")
	if len(lines) <= 1 {
		return nil
	}

	var nodes []Node
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		nodes = append(nodes, parseNodeLine(line))
	}
	return nodes
}

// parseNodeLine maps one status row onto a Node
func parseNodeLine(line string) Node {
	fields := strings.Fields(line)
	// Pad short rows so every column lookup is safe
	for len(fields) < nodeTableColumns {
		fields = append(fields, "")
	}

	return Node{
		Name:          fields[0],
		Available:     fields[1],
		TotalCPUs:     parseCount(fields[2]),
		CPUState:      parseCPUState(fields[3]),
		TimeLimit:     fields[4],
		FreeMemoryMB:  int64(parseCount(fields[5])),
		TotalMemoryMB: int64(parseCount(fields[6])),
	}
}

// parseCount parses a non-negative integer cell, stripping a trailing "+".
// Leading digits are used when the cell has a non-numeric tail; anything
// else yields 0.
func parseCount(s string) int {
	s = strings.TrimSuffix(strings.TrimSpace(s), "+")
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// parseCPUState parses "allocated/idle[/other/total]"
func parseCPUState(s string) CPUState {
	parts := strings.Split(s, "/")
	state := CPUState{Allocated: parseCount(parts[0])}
	if len(parts) > 1 {
		state.Idle = parseCount(parts[1])
	}
	return state
}

// SelectNode returns the node at a 1-based display index.
// Returns ErrNoNodes for an empty table and *SelectionError when out of range.
func SelectNode(nodes []Node, index int) (Node, error) {
	if len(nodes) == 0 {
		return Node{}, ErrNoNodes
	}
	if index < 1 || index > len(nodes) {
		return Node{}, &SelectionError{Index: index, Count: len(nodes)}
	}
	return nodes[index-1], nil
}
