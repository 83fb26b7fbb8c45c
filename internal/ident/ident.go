// Package ident models campaign identifiers. A stored campaign is keyed
// either by a native ObjectID or, for records imported before ObjectIDs were
// used, by a plain string.
package ident

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Kind int

const (
	Legacy Kind = iota
	Native
)

func (k Kind) String() string {
	if k == Native {
		return "native"
	}
	return "legacy"
}

// Key is one interpretation of a caller-supplied id.
type Key struct {
	kind   Kind
	native primitive.ObjectID
	legacy string
}

func NativeKey(oid primitive.ObjectID) Key {
	return Key{kind: Native, native: oid}
}

func LegacyKey(raw string) Key {
	return Key{kind: Legacy, legacy: raw}
}

func (k Key) Kind() Kind {
	return k.kind
}

// ObjectID returns the native key; ok is false for legacy keys.
func (k Key) ObjectID() (oid primitive.ObjectID, ok bool) {
	return k.native, k.kind == Native
}

// String is the textual form of the key as stored. Native keys render as
// lowercase hex.
func (k Key) String() string {
	if k.kind == Native {
		return k.native.Hex()
	}
	return k.legacy
}

// Value is the key as it appears in an _id field.
func (k Key) Value() any {
	if k.kind == Native {
		return k.native
	}
	return k.legacy
}

// Resolve returns the lookup candidates for raw, in the order they must be
// tried: the native interpretation first when raw is shaped like an
// ObjectID, then raw itself.
func Resolve(raw string) []Key {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return []Key{LegacyKey(raw)}
	}
	return []Key{NativeKey(oid), LegacyKey(raw)}
}

// New returns a fresh native key.
func New() Key {
	return NativeKey(primitive.NewObjectID())
}
