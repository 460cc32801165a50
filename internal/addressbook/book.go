package addressbook

// Book maps contact names to records. It is owned by a single goroutine;
// records are handed out by pointer, so concurrent users must serialize
// every mutation behind one writer.
type Book struct {
	records map[Name]*Record
	order   []Name
}

// New returns an empty address book.
func New() *Book {
	return &Book{records: make(map[Name]*Record)}
}

// AddRecord stores r under its name. An existing record with the same name
// is replaced and keeps its position in the listing order.
func (b *Book) AddRecord(r *Record) {
	if _, exists := b.records[r.name]; !exists {
		b.order = append(b.order, r.name)
	}
	b.records[r.name] = r
}

// Find returns the shared record stored under name.
func (b *Book) Find(name string) (*Record, error) {
	r, ok := b.records[Name(name)]
	if !ok {
		return nil, NotFound(name)
	}
	return r, nil
}

func (b *Book) Delete(name string) error {
	key := Name(name)
	if _, ok := b.records[key]; !ok {
		return NotFound(name)
	}
	delete(b.records, key)
	for i, n := range b.order {
		if n == key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

// Records lists every record in insertion order.
func (b *Book) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, n := range b.order {
		out = append(out, b.records[n])
	}
	return out
}

func (b *Book) Len() int { return len(b.records) }
