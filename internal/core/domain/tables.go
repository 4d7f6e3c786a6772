package domain

import (
	"crypto/sha1" //nolint:gosec // Stable id derivation, not security
	"encoding/hex"
	"strconv"
	"strings"
)

// Pseudo-locations are the synthetic roots every file is placed under.
const (
	LocationMyDrive = "My Drive"
	LocationShared  = "Shared"
)

// PseudoLocations lists the synthetic roots in id order.
var PseudoLocations = []string{LocationMyDrive, LocationShared}

// RootLocation returns the synthetic root for a file.
func RootLocation(shared bool) string {
	if shared {
		return LocationShared
	}
	return LocationMyDrive
}

// PseudoLocationID returns the stable id of the pseudo-location at index.
// The id is "<index>_<sha1 hex of name>", so it never changes across runs.
func PseudoLocationID(index int, name string) string {
	sum := sha1.Sum([]byte(name)) //nolint:gosec // Stable id derivation, not security
	return strconv.Itoa(index) + "_" + hex.EncodeToString(sum[:])
}

// OwnerID derives an index-safe id from an email address.
// ASCII letters and digits are kept; every other byte is written as "_XX"
// (uppercase hex). The encoding is injective, so distinct emails never
// share an id.
func OwnerID(email string) string {
	const hexDigits = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(email))
	for i := 0; i < len(email); i++ {
		c := email[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0x0f])
		}
	}
	return b.String()
}

// OwnerTable accumulates the owners seen during one sync run.
// Owners are keyed by lower-cased email; the first display name seen
// for an email wins.
type OwnerTable struct {
	order  []string
	owners map[string]OwnerRecord
}

// NewOwnerTable creates an empty owner table.
func NewOwnerTable() *OwnerTable {
	return &OwnerTable{owners: make(map[string]OwnerRecord)}
}

// Add records an owner. Returns false if the email was already present.
func (t *OwnerTable) Add(email, name string) bool {
	key := strings.ToLower(email)
	if _, ok := t.owners[key]; ok {
		return false
	}
	t.order = append(t.order, key)
	t.owners[key] = OwnerRecord{ID: OwnerID(key), Name: name, Email: email}
	return true
}

// Len returns the number of distinct owners.
func (t *OwnerTable) Len() int {
	return len(t.order)
}

// Records returns the owners in first-seen order.
func (t *OwnerTable) Records() []OwnerRecord {
	records := make([]OwnerRecord, 0, len(t.order))
	for _, key := range t.order {
		records = append(records, t.owners[key])
	}
	return records
}

// LocationTable accumulates the locations seen during one sync run.
type LocationTable struct {
	order     []string
	locations map[string]string
}

// NewLocationTable creates an empty location table.
func NewLocationTable() *LocationTable {
	return &LocationTable{locations: make(map[string]string)}
}

// Set records the name of a location id. Later calls overwrite the name.
func (t *LocationTable) Set(id, name string) {
	if _, ok := t.locations[id]; !ok {
		t.order = append(t.order, id)
	}
	t.locations[id] = name
}

// AddPseudoLocations records the synthetic roots.
func (t *LocationTable) AddPseudoLocations() {
	for i, name := range PseudoLocations {
		t.Set(PseudoLocationID(i, name), name)
	}
}

// Len returns the number of distinct locations.
func (t *LocationTable) Len() int {
	return len(t.order)
}

// Records returns the locations in insertion order.
func (t *LocationTable) Records() []LocationRecord {
	records := make([]LocationRecord, 0, len(t.order))
	for _, id := range t.order {
		records = append(records, LocationRecord{ID: id, Name: t.locations[id]})
	}
	return records
}
