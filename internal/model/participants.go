package model

// ParticipantSet is a capacity-bounded set of device ids. Add never grows the
// set past MaxParticipants; callers decide whether a refused add is an error
// (join) or a silent no-op (heartbeat).
type ParticipantSet struct {
	members map[string]struct{}
}

func NewParticipantSet() ParticipantSet {
	return ParticipantSet{members: make(map[string]struct{}, MaxParticipants)}
}

// Add inserts deviceID and reports success. Adding an existing member
// succeeds; adding a new member to a full set fails.
func (s ParticipantSet) Add(deviceID string) bool {
	if _, ok := s.members[deviceID]; ok {
		return true
	}
	if len(s.members) >= MaxParticipants {
		return false
	}
	s.members[deviceID] = struct{}{}
	return true
}

func (s ParticipantSet) Has(deviceID string) bool {
	_, ok := s.members[deviceID]
	return ok
}

func (s ParticipantSet) Len() int {
	return len(s.members)
}

// Clear removes all members in place.
func (s ParticipantSet) Clear() {
	for id := range s.members {
		delete(s.members, id)
	}
}
