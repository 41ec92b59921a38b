package ast

import (
	"errors"
	"fmt"
	"strconv"
)

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	switch x := n.(type) {
	case *KeyValue:
		walk(x.Value, depth+1, fn)
	case *KeyValueList:
		for _, kv := range x.Entries {
			walk(kv, depth+1, fn)
		}
	case *List:
		for _, item := range x.Items {
			walk(item, depth+1, fn)
		}
	}
}

// ErrPathNotFound is returned by Path when a segment does not resolve.
var ErrPathNotFound = errors.New("path not found")

// Path follows segments from n: object keys select members, decimal
// segments index lists.
func Path(n Node, segments ...string) (Node, error) {
	cur := n
	for i, seg := range segments {
		switch x := cur.(type) {
		case *KeyValueList:
			v, ok := x.Lookup(seg)
			if !ok {
				return nil, fmt.Errorf("%w: no key %q at segment %d", ErrPathNotFound, seg, i)
			}
			cur = v
		case *List:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(x.Items) {
				return nil, fmt.Errorf("%w: bad index %q at segment %d (len %d)", ErrPathNotFound, seg, i, len(x.Items))
			}
			cur = x.Items[idx]
		default:
			return nil, fmt.Errorf("%w: %s has no children at segment %d", ErrPathNotFound, KindOf(cur), i)
		}
	}
	return cur, nil
}
