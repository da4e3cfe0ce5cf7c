package entities

// MediaKind distinguishes the two attachment pools of an export.
type MediaKind string

const (
	MediaKindPhoto MediaKind = "Photo"
	MediaKindVideo MediaKind = "Video"
)

// MediaReference points from an entry to an attachment file.
// Either field may be empty or stale; resolution degrades to "not found".
type MediaReference struct {
	Identifier string `json:"identifier"`
	MD5        string `json:"md5"`
	Type       string `json:"type"`
}

// Entry is a single journal record as read from the export metadata.
type Entry struct {
	UUID         string           `json:"uuid"`
	Text         string           `json:"text"`
	CreationDate string           `json:"creationDate"`
	Photos       []MediaReference `json:"photos"`
	Videos       []MediaReference `json:"videos"`
	Tags         []string         `json:"tags"`
}

// ResolvedNote is everything the publisher needs to create one note.
type ResolvedNote struct {
	EntryUUID string
	Title     string
	Body      string // rendered markup
	Photos    []string
	Videos    []string
	Tags      []string
	Date      string // display date, raw value when unparseable, empty when absent
}

// Attachments returns photos followed by videos.
func (n ResolvedNote) Attachments() []string {
	all := make([]string, 0, len(n.Photos)+len(n.Videos))
	all = append(all, n.Photos...)
	return append(all, n.Videos...)
}
