package domain

// SourceKind tags a RawRecord with the layout its Fields follow.
type SourceKind string

const (
	SourceGreenhouse      SourceKind = "greenhouse"
	SourceLever           SourceKind = "lever"
	SourceAshby           SourceKind = "ashby"
	SourceWorkday         SourceKind = "workday"
	SourceSmartRecruiters SourceKind = "smartrecruiters"
	SourceHTML            SourceKind = "html"
	SourceManual          SourceKind = "manual"
)

// Label is the display name stored on postings.
func (k SourceKind) Label() string {
	switch k {
	case SourceGreenhouse:
		return "Greenhouse"
	case SourceLever:
		return "Lever"
	case SourceAshby:
		return "Ashby"
	case SourceWorkday:
		return "Workday"
	case SourceSmartRecruiters:
		return "SmartRecruiters"
	case SourceHTML:
		return "HTML"
	case SourceManual:
		return "Manual"
	default:
		return string(k)
	}
}

// RawRecord is one untrusted record as a fetcher produced it, before
// normalization. Fields holds the decoded source-native object.
type RawRecord struct {
	Kind    SourceKind
	Company string // configured display name of the board
	Board   string // board slug or URL the record came from
	Label   string // optional source label override (e.g. "Taleo" for html boards)
	Fields  map[string]any
}
