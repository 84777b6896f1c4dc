package main

import "strconv"

// EntityID identifies a live entity within its collection. Zero is never allocated.
type EntityID uint32

const EntityIDInvalid = EntityID(0)

func (id EntityID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// idSequence hands out increasing ids; ids are not reused for the lifetime of an arena
type idSequence struct {
	last EntityID
}

func (s *idSequence) Next() EntityID {
	s.last++
	if s.last == EntityIDInvalid {
		s.last++
	}
	return s.last
}
