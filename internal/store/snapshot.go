package store

// ListKey names a related collection of E carried by a snapshot
type ListKey[E any] string

// Snapshot is an immutable view of a slice.
// Rev increases on every status transition and identifies a terminal occurrence.
type Snapshot[T any] struct {
	Status Status
	Data   T
	Rev    uint64
	lists  map[string]any
}

// Merge derives data and lists of a new snapshot from an old one.
// Status and Rev changes made by a Merge are discarded by the slice.
type Merge[T any] func(Snapshot[T]) Snapshot[T]

// List returns a copy of the collection stored under key.
// Missing collections yield an empty, non-nil slice.
func List[T, E any](s Snapshot[T], key ListKey[E]) []E {
	items, ok := s.lists[string(key)].([]E)
	if !ok {
		return []E{}
	}
	out := make([]E, len(items))
	copy(out, items)
	return out
}

// WithList returns a snapshot whose collection under key is a copy of items
func WithList[T, E any](s Snapshot[T], key ListKey[E], items []E) Snapshot[T] {
	lists := make(map[string]any, len(s.lists)+1)
	for k, v := range s.lists {
		lists[k] = v
	}
	cp := make([]E, len(items))
	copy(cp, items)
	lists[string(key)] = cp
	s.lists = lists
	return s
}

// WithData returns a snapshot carrying data
func (s Snapshot[T]) WithData(data T) Snapshot[T] {
	s.Data = data
	return s
}

// ListNames returns the names of the collections present in the snapshot
func (s Snapshot[T]) ListNames() []string {
	names := make([]string, 0, len(s.lists))
	for k := range s.lists {
		names = append(names, k)
	}
	return names
}

func (s Snapshot[T]) withStatus(status Status) Snapshot[T] {
	s.Status = status
	s.Rev++
	return s
}

// ReplaceData returns a Merge overwriting the snapshot data
func ReplaceData[T any](data T) Merge[T] {
	return func(s Snapshot[T]) Snapshot[T] {
		return s.WithData(data)
	}
}

// ReplaceList returns a Merge overwriting one named collection
func ReplaceList[T, E any](key ListKey[E], items []E) Merge[T] {
	return func(s Snapshot[T]) Snapshot[T] {
		return WithList(s, key, items)
	}
}

// Chain applies merges in order. Nil merges are skipped.
func Chain[T any](merges ...Merge[T]) Merge[T] {
	return func(s Snapshot[T]) Snapshot[T] {
		for _, m := range merges {
			if m != nil {
				s = m(s)
			}
		}
		return s
	}
}
