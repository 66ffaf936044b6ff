package path

// frontierItem is a tentative distance for a station. Items are never
// updated in place; a shorter distance pushes a new item and the old one
// goes stale.
type frontierItem struct {
	stationID string
	distance  int
	seq       int // push order, breaks distance ties
}

// frontier implements heap.Interface as a min-heap on (distance, seq).
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].distance != f[j].distance {
		return f[i].distance < f[j].distance
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(item any) {
	*f = append(*f, item.(frontierItem))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}
