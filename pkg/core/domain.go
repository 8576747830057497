// Record is the central entity of the domain.
package core

// Record is a meme entry as stored by the remote API.
// The remote API is the only source of truth; any Record held locally is a
// transient copy.
type Record struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	ImageURL string `json:"imgUrl" yaml:"imgUrl"`
	Likes    int    `json:"likes" yaml:"likes"`
}

// Patch is a partial update. Nil fields are left untouched by the API.
type Patch struct {
	Name     *string `json:"name,omitempty"`
	ImageURL *string `json:"imgUrl,omitempty"`
	Likes    *int    `json:"likes,omitempty"`
}

// Apply returns a copy of r with the patch fields set.
func (p Patch) Apply(r Record) Record {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.ImageURL != nil {
		r.ImageURL = *p.ImageURL
	}
	if p.Likes != nil {
		r.Likes = *p.Likes
	}
	return r
}

// Merge replaces the record sharing updated's ID, or appends it when absent.
// The input slice is not modified.
func Merge(records []Record, updated Record) []Record {
	out := make([]Record, 0, len(records)+1)
	found := false
	for _, r := range records {
		if r.ID == updated.ID {
			out = append(out, updated)
			found = true
			continue
		}
		out = append(out, r)
	}
	if !found {
		out = append(out, updated)
	}
	return out
}

// EventType represents the type of change applied through the Service.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change made through the Service.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type) + " " + e.ID
}
