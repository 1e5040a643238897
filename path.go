package arbor

import "strings"

// Path returns the slash-separated names from the root down to n. Names are
// not escaped, so Find can only resolve a path whose names contain no '/'.
func Path(n *Node) string {
	var parts []string
	for a := n; a != nil; a = a.parent {
		parts = append(parts, a.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Find follows a relative slash-separated name path from n, taking the first
// child with each name. An empty path returns n. It returns nil when a segment
// has no match. Segments are split on every '/', so a node whose name
// contains '/' is unreachable through Find.
func Find(n *Node, path string) *Node {
	cur := n
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		var next *Node
		for _, c := range cur.children {
			if c.Name == seg {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}
