package store

// Transient is a process-lifetime key/value store. The recovery flow keeps
// its intermediate state (reset email, verified code) here so that nothing
// survives a restart.
type Transient struct {
	values map[string]string
}

// NewTransient creates an empty transient store.
func NewTransient() *Transient {
	return &Transient{values: make(map[string]string)}
}

// Get returns the value for key, or "" if absent.
func (t *Transient) Get(key string) string {
	return t.values[key]
}

// Set stores value under key.
func (t *Transient) Set(key, value string) {
	t.values[key] = value
}

// Delete removes key. Deleting an absent key is a no-op.
func (t *Transient) Delete(key string) {
	delete(t.values, key)
}

// Len reports the number of stored keys.
func (t *Transient) Len() int {
	return len(t.values)
}
