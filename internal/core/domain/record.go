package domain

// Shape identifies which dataset format a record was written in.
type Shape string

// Known record shapes.
const (
	// ShapeLegacy is the flat format with one key per form question.
	ShapeLegacy Shape = "legacy"

	// ShapeSummarized is the nested format with narrative traction fields.
	ShapeSummarized Shape = "summarized"
)

// String returns the string representation.
func (s Shape) String() string {
	return string(s)
}

// Record is one application in either dataset shape.
// The concrete types are *LegacyRecord and *SummarizedRecord.
type Record interface {
	// ApplicationID returns the stable BHAR-xxxxx identifier.
	ApplicationID() string

	// Shape reports which dataset format the record came from.
	Shape() Shape

	// Fields returns the raw key/value mapping as decoded from JSON.
	Fields() map[string]any
}

// Award is one entry of a legacy record's awards list.
type Award struct {
	Name    string `json:"name,omitempty"`
	Body    string `json:"body,omitempty"`
	Year    string `json:"year,omitempty"`
	Details string `json:"details,omitempty"`
}

// Informative reports whether the award carries any usable text.
func (a Award) Informative() bool {
	return a.Name != "" || a.Body != "" || a.Details != ""
}

// MediaItem is one press or publication mention.
type MediaItem struct {
	Type        string `json:"type,omitempty"`
	Link        string `json:"link,omitempty"`
	Year        string `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
}

// Informative reports whether the mention carries any usable text.
func (m MediaItem) Informative() bool {
	return m.Link != "" || m.Description != "" || m.Type != ""
}

// TeamMember is one person listed on an application.
type TeamMember struct {
	Name        string `json:"name,omitempty"`
	Role        string `json:"role,omitempty"`
	Email       string `json:"email,omitempty"`
	Mobile      string `json:"mobile,omitempty"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Credentials string `json:"credentials,omitempty"`
}

// LegacyRecord is an application in the flat legacy shape.
type LegacyRecord struct {
	ID     string
	Raw    map[string]any
	Awards []Award
	Media  []MediaItem
	Team   []TeamMember
}

// ApplicationID implements Record.
func (r *LegacyRecord) ApplicationID() string { return r.ID }

// Shape implements Record.
func (r *LegacyRecord) Shape() Shape { return ShapeLegacy }

// Fields implements Record.
func (r *LegacyRecord) Fields() map[string]any { return r.Raw }

// About holds the one or two paragraph description of a summarized record.
type About struct {
	Paragraph1 string `json:"paragraph1,omitempty"`
	Paragraph2 string `json:"paragraph2,omitempty"`
	WordCount  int    `json:"wordCount,omitempty"`
}

// Paragraphs returns the non-empty paragraphs in order.
func (a About) Paragraphs() []string {
	out := make([]string, 0, 2)
	if a.Paragraph1 != "" {
		out = append(out, a.Paragraph1)
	}
	if a.Paragraph2 != "" {
		out = append(out, a.Paragraph2)
	}
	return out
}

// Traction holds the one-line narrative summaries of a summarized record.
// These are free text and are mined for numbers by the normaliser.
type Traction struct {
	Funding string `json:"funding,omitempty"`
	Patents string `json:"patents,omitempty"`
	Awards  string `json:"awards,omitempty"`
	Team    string `json:"team,omitempty"`
}

// SummarizedRecord is an application in the nested summarized shape.
type SummarizedRecord struct {
	ID        string
	Raw       map[string]any
	About     About
	Traction  Traction
	Media     []MediaItem
	Team      []TeamMember
	Documents map[string]string
}

// ApplicationID implements Record.
func (r *SummarizedRecord) ApplicationID() string { return r.ID }

// Shape implements Record.
func (r *SummarizedRecord) Shape() Shape { return ShapeSummarized }

// Fields implements Record.
func (r *SummarizedRecord) Fields() map[string]any { return r.Raw }

// Ensure both shapes implement Record.
var (
	_ Record = (*LegacyRecord)(nil)
	_ Record = (*SummarizedRecord)(nil)
)
