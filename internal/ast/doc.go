// Package ast defines the tree produced by the parser.
//
// Node is a closed sum type: the unexported marker method keeps other packages
// from adding variants, and every switch over nodes covers exactly
// KeyValue, KeyValueList, String, Integer, Float, List and Default.
//
// Trees are built once by the parser and never mutated afterwards. There are
// no parent links and no sharing between trees.
package ast
