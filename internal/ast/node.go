package ast

import (
	"kvd/internal/source"
)

// NodeKind is the discriminant of a Node.
type NodeKind uint8

const (
	KindDefault NodeKind = iota
	KindKeyValue
	KindKeyValueList
	KindString
	KindInteger
	KindFloat
	KindList
)

func (k NodeKind) String() string {
	switch k {
	case KindDefault:
		return "Default"
	case KindKeyValue:
		return "KeyValue"
	case KindKeyValueList:
		return "KeyValueList"
	case KindString:
		return "String"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindList:
		return "List"
	}
	return "Unknown"
}

// Node is one of *KeyValue, *KeyValueList, *String, *Integer, *Float, *List, *Default.
type Node interface {
	Kind() NodeKind
	// Pos returns the source range the node was parsed from.
	Pos() source.Span
	node()
}

// KindOf returns the kind of n; a nil node reads as KindDefault.
func KindOf(n Node) NodeKind {
	if n == nil {
		return KindDefault
	}
	return n.Kind()
}

// KeyValue is a single "key": value member of an object.
type KeyValue struct {
	Key     string
	KeySpan source.Span
	Value   Node
	Span    source.Span
}

// String is a quoted string or a bare identifier.
type String struct {
	Value string
	Span  source.Span
}

type Integer struct {
	Value int64
	Span  source.Span
}

type Float struct {
	Value float64
	Span  source.Span
}

// List is an array; Items keeps source order and may be empty.
type List struct {
	Items []Node
	Span  source.Span
}

// Default is the zero placeholder node. The parser never produces it.
type Default struct{}

func (*KeyValue) Kind() NodeKind     { return KindKeyValue }
func (*KeyValueList) Kind() NodeKind { return KindKeyValueList }
func (*String) Kind() NodeKind       { return KindString }
func (*Integer) Kind() NodeKind      { return KindInteger }
func (*Float) Kind() NodeKind        { return KindFloat }
func (*List) Kind() NodeKind         { return KindList }
func (*Default) Kind() NodeKind      { return KindDefault }

func (n *KeyValue) Pos() source.Span     { return n.Span }
func (n *KeyValueList) Pos() source.Span { return n.Span }
func (n *String) Pos() source.Span       { return n.Span }
func (n *Integer) Pos() source.Span      { return n.Span }
func (n *Float) Pos() source.Span        { return n.Span }
func (n *List) Pos() source.Span         { return n.Span }
func (*Default) Pos() source.Span        { return source.Span{} }

func (*KeyValue) node()     {}
func (*KeyValueList) node() {}
func (*String) node()       {}
func (*Integer) node()      {}
func (*Float) node()        {}
func (*List) node()         {}
func (*Default) node()      {}
