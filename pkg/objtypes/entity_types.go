// Package objtypes defines the shared types of the object shell.
// This file contains the entity contracts used by entity keys and entity-reference parameters.
package objtypes

// Kind names the target type of a textual argument. Built-in kinds are listed below;
// any registered type name is also a valid kind and refers to a live entity of that type.
type Kind string

const (
	KindString   Kind = "string"
	KindInt      Kind = "int"
	KindFloat    Kind = "float"
	KindBool     Kind = "bool"
	KindDate     Kind = "date"
	KindDuration Kind = "duration"
)

// Entity is the shared "registerable entity" capability: anything with a stable textual
// identification that users can address by name.
type Entity interface {
	Identification() string
}

// EntityRecord is a published entity together with the category (type name) it was
// published under.
type EntityRecord struct {
	ID       string
	Category string
	Value    Entity
}

// EntityLookup is the read side of an entity store, queried by keys and parameters
// while matching input. It is never mutated by the grammar.
type EntityLookup interface {
	// Lookup returns the entity with exactly this identification.
	Lookup(id string) (EntityRecord, bool)
	// MatchPrefix returns the entities whose identification starts with prefix, sorted by
	// identification. An empty category matches every category.
	MatchPrefix(category, prefix string) []EntityRecord
}
