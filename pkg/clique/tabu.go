package clique

// TabuList is a bounded FIFO of vertex ids backed by a ring buffer. Pushing
// onto a full list evicts the oldest entry. Membership is O(capacity).
type TabuList struct {
	items []int
	head  int // index of the oldest entry
	n     int
}

// NewTabuList creates an empty list holding at most capacity entries.
// A capacity below 1 yields a list that never holds anything.
func NewTabuList(capacity int) *TabuList {
	return &TabuList{items: make([]int, max(capacity, 0))}
}

// Push appends v, evicting the oldest entry if the list is full.
func (t *TabuList) Push(v int) {
	c := len(t.items)
	if c == 0 {
		return
	}
	if t.n < c {
		t.items[(t.head+t.n)%c] = v
		t.n++
		return
	}
	t.items[t.head] = v
	t.head = (t.head + 1) % c
}

// Contains reports whether v is in the list.
func (t *TabuList) Contains(v int) bool {
	c := len(t.items)
	for i := 0; i < t.n; i++ {
		if t.items[(t.head+i)%c] == v {
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (t *TabuList) Len() int { return t.n }

// Cap returns the capacity.
func (t *TabuList) Cap() int { return len(t.items) }

// Clear empties the list without releasing its storage.
func (t *TabuList) Clear() {
	t.head, t.n = 0, 0
}

// Items returns the entries from oldest to newest.
func (t *TabuList) Items() []int {
	out := make([]int, t.n)
	for i := range out {
		out[i] = t.items[(t.head+i)%len(t.items)]
	}
	return out
}
