package domain

import "sort"

// IndexEntry points at one stored audit record, with enough metadata to filter
// by type without fetching the record.
type IndexEntry struct {
	BlobID     string     `json:"blobId"`
	RecordType RecordType `json:"recordType"`
	RecordID   string     `json:"recordId"`
	Timestamp  int64      `json:"timestamp"`
}

// IndexDocument is the catalog of stored records. Each version is written as its
// own immutable blob; Records keeps merge order, not chronological order.
type IndexDocument struct {
	Records     []IndexEntry `json:"records"`
	LastUpdated int64        `json:"lastUpdated"`

	seen map[string]struct{}
}

// NewIndexDocument returns an empty catalog stamped with now (milliseconds).
func NewIndexDocument(now int64) *IndexDocument {
	return &IndexDocument{
		Records:     []IndexEntry{},
		LastUpdated: now,
	}
}

// EntryFor builds the index entry for a record stored under blobID.
func EntryFor(blobID string, r AuditRecord) IndexEntry {
	return IndexEntry{
		BlobID:     blobID,
		RecordType: r.Type(),
		RecordID:   r.RecordID,
		Timestamp:  r.Timestamp,
	}
}

func (d *IndexDocument) index() {
	if d.seen != nil {
		return
	}
	d.seen = make(map[string]struct{}, len(d.Records))
	for _, e := range d.Records {
		d.seen[e.BlobID] = struct{}{}
	}
}

// Contains reports whether blobID is already catalogued.
func (d *IndexDocument) Contains(blobID string) bool {
	d.index()
	_, ok := d.seen[blobID]
	return ok
}

// Append adds e unless its blob ID is already present. It reports whether e was added.
func (d *IndexDocument) Append(e IndexEntry) bool {
	if d.Contains(e.BlobID) {
		return false
	}
	d.Records = append(d.Records, e)
	d.seen[e.BlobID] = struct{}{}
	return true
}

// Merge unions entries into d by blob ID. Entries already in d win on collision,
// so merging the same set twice is a no-op. It returns how many entries were added.
func (d *IndexDocument) Merge(entries []IndexEntry) int {
	added := 0
	for _, e := range entries {
		if d.Append(e) {
			added++
		}
	}
	return added
}

// Dedup drops repeated blob IDs, keeping the first occurrence.
func (d *IndexDocument) Dedup() {
	d.seen = nil
	records := d.Records
	d.Records = make([]IndexEntry, 0, len(records))
	d.Merge(records)
}

// Clone returns a deep copy safe to serialize while d keeps changing.
func (d *IndexDocument) Clone() *IndexDocument {
	records := make([]IndexEntry, len(d.Records))
	copy(records, d.Records)
	return &IndexDocument{Records: records, LastUpdated: d.LastUpdated}
}

// Filter returns the entries of type t, or all entries when t is empty.
func (d *IndexDocument) Filter(t RecordType) []IndexEntry {
	out := make([]IndexEntry, 0, len(d.Records))
	for _, e := range d.Records {
		if t == "" || e.RecordType == t {
			out = append(out, e)
		}
	}
	return out
}

// SortEntriesNewestFirst orders entries by descending timestamp; ties keep merge order.
func SortEntriesNewestFirst(entries []IndexEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
}
