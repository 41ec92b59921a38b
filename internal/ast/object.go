package ast

import (
	"errors"
	"fmt"

	"kvd/internal/source"
)

// ErrNotKeyValue is returned when a node that must be a KeyValue is not one.
var ErrNotKeyValue = errors.New("node is not a key/value pair")

// KeyValueList is an object.
//
// Entries keeps every member in source order, duplicates included.
// Index holds one value per distinct key; the last member with a key wins.
type KeyValueList struct {
	Entries []*KeyValue
	Index   map[string]Node
	Span    source.Span
}

// NewKeyValueList returns an empty object.
func NewKeyValueList(span source.Span) *KeyValueList {
	return &KeyValueList{
		Entries: make([]*KeyValue, 0),
		Index:   make(map[string]Node),
		Span:    span,
	}
}

// AsKeyValue converts n to a key/value pair or fails with ErrNotKeyValue.
func AsKeyValue(n Node) (*KeyValue, error) {
	kv, ok := n.(*KeyValue)
	if !ok || kv == nil {
		return nil, fmt.Errorf("%w: got %s", ErrNotKeyValue, KindOf(n))
	}
	return kv, nil
}

// Append adds a member. n must be a *KeyValue.
func (l *KeyValueList) Append(n Node) error {
	kv, err := AsKeyValue(n)
	if err != nil {
		return err
	}
	if l.Index == nil {
		l.Index = make(map[string]Node)
	}
	l.Entries = append(l.Entries, kv)
	l.Index[kv.Key] = kv.Value
	return nil
}

// Lookup returns the value stored for key.
func (l *KeyValueList) Lookup(key string) (Node, bool) {
	v, ok := l.Index[key]
	return v, ok
}

// Len returns the number of distinct keys.
func (l *KeyValueList) Len() int {
	return len(l.Index)
}

// Keys returns the distinct keys in order of first appearance.
func (l *KeyValueList) Keys() []string {
	keys := make([]string, 0, len(l.Index))
	seen := make(map[string]struct{}, len(l.Index))
	for _, kv := range l.Entries {
		if _, dup := seen[kv.Key]; dup {
			continue
		}
		seen[kv.Key] = struct{}{}
		keys = append(keys, kv.Key)
	}
	return keys
}
