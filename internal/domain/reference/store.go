package reference

import "sync/atomic"

// Store guarda el snapshot vigente. El loader hace Swap; el core solo lee Snapshot.
type Store struct {
	cur atomic.Pointer[ReferenceData]
}

func NewStore(initial *ReferenceData) *Store {
	s := &Store{}
	s.Swap(initial)
	return s
}

// Snapshot nunca devuelve nil.
func (s *Store) Snapshot() *ReferenceData {
	if s == nil {
		return Empty()
	}
	if rd := s.cur.Load(); rd != nil {
		return rd
	}
	return Empty()
}

// Swap reemplaza el snapshot de forma atómica y devuelve el anterior.
func (s *Store) Swap(rd *ReferenceData) *ReferenceData {
	if rd == nil {
		rd = Empty()
	}
	return s.cur.Swap(rd)
}
