package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"kvd/internal/ast"
	"kvd/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed document:
// 1) the root span is non-empty and within file content bounds
// 2) every node span points at sf and lies inside its parent's span
// 3) siblings appear in source order without overlapping
func CheckSpanInvariants(root ast.Node, sf *source.File) error {
	if root == nil || sf == nil {
		return fmt.Errorf("nil root or file")
	}
	rs := root.Pos()
	if rs.End <= rs.Start {
		return fmt.Errorf("root span is empty: %v", rs)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if rs.End > lenContent {
		return fmt.Errorf("root span end beyond content: %d > %d", rs.End, lenContent)
	}
	return checkNode(root, sf.ID)
}

func checkNode(n ast.Node, file source.FileID) error {
	sp := n.Pos()
	if sp.File != file {
		return fmt.Errorf("%s span file mismatch: got=%d want=%d", ast.KindOf(n), sp.File, file)
	}
	if sp.End <= sp.Start {
		return fmt.Errorf("empty %s span: %v", ast.KindOf(n), sp)
	}

	var children []ast.Node
	switch x := n.(type) {
	case *ast.KeyValue:
		if !sp.Contains(x.KeySpan) {
			return fmt.Errorf("key span %v is outside member span %v", x.KeySpan, sp)
		}
		children = []ast.Node{x.Value}
	case *ast.KeyValueList:
		for _, kv := range x.Entries {
			children = append(children, kv)
		}
	case *ast.List:
		children = x.Items
	}

	var prev source.Span
	for i, c := range children {
		if c == nil {
			return fmt.Errorf("nil child %d of %s", i, ast.KindOf(n))
		}
		cs := c.Pos()
		if !sp.Contains(cs) {
			return fmt.Errorf("%s span %v is outside parent span %v", ast.KindOf(c), cs, sp)
		}
		if i > 0 && cs.Start < prev.End {
			return fmt.Errorf("child %d span %v overlaps previous %v", i, cs, prev)
		}
		if err := checkNode(c, file); err != nil {
			return err
		}
		prev = cs
	}
	return nil
}
