package record

// Lookup is the outcome of locating a record: either Found with the
// record, or not found. A miss is a normal result, not an error.
type Lookup struct {
	Record Record
	Found  bool
}

// Find returns the record carrying id.
func Find(records []Record, id ID) (Record, bool) {
	i := indexOf(records, id)
	if i < 0 {
		return Record{}, false
	}
	return records[i], true
}

// Locate is Find packed into a Lookup.
func Locate(records []Record, id ID) Lookup {
	rec, ok := Find(records, id)
	return Lookup{Record: rec, Found: ok}
}

func indexOf(records []Record, id ID) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}
