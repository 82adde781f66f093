package entity

import (
	"slices"

	"github.com/google/uuid"
)

// ContainsID reports whether id is a member of ids.
func ContainsID(ids []uuid.UUID, id uuid.UUID) bool {
	return slices.Contains(ids, id)
}

// AddID returns ids with id appended unless it is already present.
func AddID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	if ContainsID(ids, id) {
		return ids
	}

	return append(ids, id)
}

// RemoveID returns ids without any occurrence of id.
func RemoveID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	return slices.DeleteFunc(slices.Clone(ids), func(v uuid.UUID) bool {
		return v == id
	})
}

// SetID adds or removes id depending on member.
func SetID(ids []uuid.UUID, id uuid.UUID, member bool) []uuid.UUID {
	if member {
		return AddID(ids, id)
	}

	return RemoveID(ids, id)
}
