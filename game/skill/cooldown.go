package skill

// CooldownTracker holds the remaining cooldown seconds of one actor's skills.
// Remaining time only decreases (floored at 0) until the next successful cast.
type CooldownTracker struct {
	catalog   *Catalog
	remaining map[string]float64
}

// NewCooldownTracker creates an empty tracker; every known skill starts ready.
func NewCooldownTracker(c *Catalog) *CooldownTracker {
	return &CooldownTracker{catalog: c, remaining: make(map[string]float64)}
}

// Start resets skillID to its full cooldown. Unknown ids are ignored.
func (t *CooldownTracker) Start(skillID string) {
	def, ok := t.catalog.Get(skillID)
	if !ok {
		return
	}
	if def.Cooldown <= 0 {
		delete(t.remaining, skillID)
		return
	}
	t.remaining[skillID] = def.Cooldown
}

// Tick advances every running cooldown by dt seconds. It returns the ids
// that reached zero during this tick, nil when none did.
func (t *CooldownTracker) Tick(dt float64) []string {
	if dt <= 0 || len(t.remaining) == 0 {
		return nil
	}
	var ready []string
	for id, rem := range t.remaining {
		rem -= dt
		if rem <= 0 {
			delete(t.remaining, id)
			ready = append(ready, id)
			continue
		}
		t.remaining[id] = rem
	}
	return ready
}

// IsReady reports remaining ≤ 0. Unknown ids are reported ready.
func (t *CooldownTracker) IsReady(skillID string) bool {
	return t.remaining[skillID] <= 0
}

// Remaining returns the seconds left on skillID, 0 when ready.
func (t *CooldownTracker) Remaining(skillID string) float64 {
	return t.remaining[skillID]
}

// Progress returns the elapsed fraction of the cooldown in [0,1]; 1 is ready.
func (t *CooldownTracker) Progress(skillID string) float64 {
	rem := t.remaining[skillID]
	if rem <= 0 {
		return 1
	}
	def, ok := t.catalog.Get(skillID)
	if !ok || def.Cooldown <= 0 {
		return 1
	}
	return 1 - rem/def.Cooldown
}

// Reset clears all cooldowns.
func (t *CooldownTracker) Reset() {
	clear(t.remaining)
}
