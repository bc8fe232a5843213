package feed

// pageState is the accumulated feed: items in arrival order plus the last
// page merged. Callers hold Engine.mu.
type pageState struct {
	items    []Item
	index    map[string]int // id -> position in items
	lastPage int            // 0 until the first successful page
}

// merge appends the items whose id is not already present, keeping the
// incoming order, and returns the appended ones.
func (s *pageState) merge(incoming []Item) []Item {
	if s.index == nil {
		s.index = make(map[string]int, len(incoming))
	}
	added := make([]Item, 0, len(incoming))
	for _, item := range incoming {
		if _, ok := s.index[item.ID]; ok {
			continue
		}
		s.index[item.ID] = len(s.items)
		s.items = append(s.items, item)
		added = append(added, item.clone())
	}
	return added
}

// toggleLike flips IsLiked on the item with id. It reports whether the item
// was found.
func (s *pageState) toggleLike(id string) (Item, bool) {
	pos, ok := s.index[id]
	if !ok {
		return Item{}, false
	}
	s.items[pos].IsLiked = !s.items[pos].IsLiked
	return s.items[pos], true
}

func (s *pageState) reset() {
	s.items = nil
	s.index = nil
	s.lastPage = 0
}

// cloneItems copies items deeply enough that callers cannot reach stored
// state through CreatedAt.
func cloneItems(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Item, len(items))
	for i, item := range items {
		dup[i] = item.clone()
	}
	return dup
}
