package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"kvd/internal/ast"
	"kvd/internal/source"
)

// ASTNodeOutput is the JSON shape of one node.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Key      *string         `json:"key,omitempty"`
	Value    any             `json:"value,omitempty"`
	Span     source.Span     `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTTree prints root as an indented tree:
//
//	KeyValueList keys=2 (1:1-3:2)
//	├─ "name": String "kvd" (2:11-2:16)
//	└─ "tags": List len=1 (3:11-3:14)
//	   └─ [0] Integer 1 (3:12-3:13)
func FormatASTTree(w io.Writer, root ast.Node, fs *source.FileSet) error {
	if root == nil {
		return fmt.Errorf("nil AST")
	}
	if _, err := fmt.Fprintf(w, "%s\n", nodeLabel(root, fs)); err != nil {
		return err
	}
	return writeChildren(w, root, fs, "")
}

func writeChildren(w io.Writer, n ast.Node, fs *source.FileSet, prefix string) error {
	type child struct {
		label string
		node  ast.Node
	}
	var children []child
	switch x := n.(type) {
	case *ast.KeyValueList:
		for _, kv := range x.Entries {
			children = append(children, child{strconv.Quote(kv.Key) + ": ", kv.Value})
		}
	case *ast.List:
		for i, item := range x.Items {
			children = append(children, child{fmt.Sprintf("[%d] ", i), item})
		}
	case *ast.KeyValue:
		children = append(children, child{strconv.Quote(x.Key) + ": ", x.Value})
	}

	for i, c := range children {
		branch, indent := "├─ ", "│  "
		if i == len(children)-1 {
			branch, indent = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s%s\n", prefix, branch, c.label, nodeLabel(c.node, fs)); err != nil {
			return err
		}
		if err := writeChildren(w, c.node, fs, prefix+indent); err != nil {
			return err
		}
	}
	return nil
}

func nodeLabel(n ast.Node, fs *source.FileSet) string {
	span := formatSpan(n.Pos(), fs)
	switch x := n.(type) {
	case *ast.String:
		return fmt.Sprintf("String %q (%s)", x.Value, span)
	case *ast.Integer:
		return fmt.Sprintf("Integer %d (%s)", x.Value, span)
	case *ast.Float:
		return fmt.Sprintf("Float %s (%s)", strconv.FormatFloat(x.Value, 'g', -1, 64), span)
	case *ast.KeyValueList:
		return fmt.Sprintf("KeyValueList keys=%d (%s)", x.Len(), span)
	case *ast.List:
		return fmt.Sprintf("List len=%d (%s)", len(x.Items), span)
	default:
		return fmt.Sprintf("%s (%s)", ast.KindOf(n), span)
	}
}

// BuildASTOutput converts root into its JSON shape.
func BuildASTOutput(n ast.Node) ASTNodeOutput {
	out := ASTNodeOutput{Type: ast.KindOf(n).String()}
	if n == nil {
		return out
	}
	out.Span = n.Pos()
	switch x := n.(type) {
	case *ast.KeyValue:
		key := x.Key
		out.Key = &key
		out.Children = []ASTNodeOutput{BuildASTOutput(x.Value)}
	case *ast.KeyValueList:
		out.Children = make([]ASTNodeOutput, 0, len(x.Entries))
		for _, kv := range x.Entries {
			out.Children = append(out.Children, BuildASTOutput(kv))
		}
	case *ast.List:
		out.Children = make([]ASTNodeOutput, 0, len(x.Items))
		for _, item := range x.Items {
			out.Children = append(out.Children, BuildASTOutput(item))
		}
	case *ast.String:
		out.Value = x.Value
	case *ast.Integer:
		out.Value = x.Value
	case *ast.Float:
		out.Value = floatValue(x.Value)
	}
	return out
}

// FormatASTJSON writes root as indented JSON.
func FormatASTJSON(w io.Writer, root ast.Node) error {
	if root == nil {
		return fmt.Errorf("nil AST")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildASTOutput(root))
}
