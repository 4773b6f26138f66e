package skill

// StatusID names a timed status effect.
type StatusID string

// StatusInvulnerable is the dodge window: incoming attacks are dropped.
const StatusInvulnerable StatusID = "invulnerable"

// StatusInstance is an active timed status on a combatant.
type StatusInstance struct {
	ID        StatusID
	Remaining float64 // seconds
	Stacks    int
}

// StatusList manages the timed statuses of a single actor. It is advanced
// by the simulation tick, not by wall-clock time.
type StatusList struct {
	entries []*StatusInstance
}

// Add adds or refreshes a status. A refresh keeps the longer of the two
// remaining durations and increments stacks up to maxStacks.
func (sl *StatusList) Add(id StatusID, duration float64, maxStacks int) *StatusInstance {
	if maxStacks < 1 {
		maxStacks = 1
	}
	for _, s := range sl.entries {
		if s.ID == id {
			if duration > s.Remaining {
				s.Remaining = duration
			}
			if s.Stacks < maxStacks {
				s.Stacks++
			}
			return s
		}
	}
	s := &StatusInstance{ID: id, Remaining: duration, Stacks: 1}
	sl.entries = append(sl.entries, s)
	return s
}

// Remove removes a status by ID. Returns true if it was present.
func (sl *StatusList) Remove(id StatusID) bool {
	for i, s := range sl.entries {
		if s.ID == id {
			sl.entries = append(sl.entries[:i], sl.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether id is active.
func (sl *StatusList) Has(id StatusID) bool {
	return sl.Get(id) != nil
}

// Get returns the status with id, or nil.
func (sl *StatusList) Get(id StatusID) *StatusInstance {
	for _, s := range sl.entries {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// All returns a snapshot of all active statuses.
func (sl *StatusList) All() []StatusInstance {
	out := make([]StatusInstance, len(sl.entries))
	for i, s := range sl.entries {
		out[i] = *s
	}
	return out
}

// Clear removes every status.
func (sl *StatusList) Clear() { sl.entries = sl.entries[:0] }

// Tick counts every status down by dt and drops the expired ones,
// returning their ids.
func (sl *StatusList) Tick(dt float64) []StatusID {
	if len(sl.entries) == 0 {
		return nil
	}
	var expired []StatusID
	kept := sl.entries[:0]
	for _, s := range sl.entries {
		s.Remaining -= dt
		if s.Remaining <= 0 {
			expired = append(expired, s.ID)
			continue
		}
		kept = append(kept, s)
	}
	sl.entries = kept
	return expired
}
