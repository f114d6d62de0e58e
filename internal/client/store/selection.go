package store

// selection tracks the set of selected entity ids. Ids are kept even when
// the referenced entity is not on the current page, so a selection survives
// paging and filter changes; deletions prune it.
type selection map[string]struct{}

func (s selection) Toggle(id string) {
	if _, ok := s[id]; ok {
		delete(s, id)
		return
	}
	s[id] = struct{}{}
}

func (s selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s selection) Remove(id string) {
	delete(s, id)
}

func (s selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}
