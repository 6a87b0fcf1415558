package docwright

// SectionType classifies a document section for ordering and image placement.
type SectionType string

// SectionType values.
const (
	SectionIntroduction    SectionType = "introduction"
	SectionOverview        SectionType = "overview"
	SectionRequirements    SectionType = "requirements"
	SectionInstallation    SectionType = "installation"
	SectionConfiguration   SectionType = "configuration"
	SectionUsage           SectionType = "usage"
	SectionExamples        SectionType = "examples"
	SectionTroubleshooting SectionType = "troubleshooting"
	SectionMaintenance     SectionType = "maintenance"
	SectionReference       SectionType = "reference"
	SectionGeneral         SectionType = "general"
)

// DocumentType selects the canonical section ordering and classification
// defaults used by the organizer.
type DocumentType string

// DocumentType values.
const (
	DocumentUserManual DocumentType = "user_manual"
	DocumentGuide      DocumentType = "guide"
	DocumentReference  DocumentType = "reference"
	DocumentGeneric    DocumentType = "generic"
)

// DocumentSection is one node of the organized document tree. The tree is
// acyclic and at most two levels deep: top-level sections and their
// subsections. Every node has a non-empty title and a unique ID.
type DocumentSection struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	Level       int                `json:"level"` // >= 1
	Subsections []*DocumentSection `json:"subsections,omitempty"`
	Images      []ImagePlacement   `json:"images,omitempty"`
	Type        SectionType        `json:"sectionType"`
}

// sectionKeywords maps heading text patterns to section types. Entries are
// tested in order; the first heading substring match wins.
var sectionKeywords = []struct {
	sectionType SectionType
	keywords    []string
}{
	{SectionIntroduction, []string{"introduction", "intro", "about", "getting started", "welcome"}},
	{SectionOverview, []string{"overview", "summary", "at a glance"}},
	{SectionRequirements, []string{"requirement", "prerequisite", "before you"}},
	{SectionInstallation, []string{"install", "setup", "set up", "download"}},
	{SectionConfiguration, []string{"config", "setting", "option", "customiz"}},
	{SectionTroubleshooting, []string{"troubleshoot", "problem", "issue", "error", "faq", "fix"}},
	{SectionMaintenance, []string{"maintenance", "maintain", "update", "upgrade", "backup"}},
	{SectionExamples, []string{"example", "sample", "demo"}},
	{SectionReference, []string{"reference", "api", "command", "glossary"}},
	{SectionUsage, []string{"usage", "using", "how to", "guide", "tutorial", "use"}},
}

// canonicalOrders lists the preferred section-type order per document type.
// Types absent from the list sort after all listed ones, preserving their
// original relative order.
var canonicalOrders = map[DocumentType][]SectionType{
	DocumentUserManual: {
		SectionIntroduction, SectionOverview, SectionRequirements,
		SectionInstallation, SectionConfiguration, SectionUsage,
		SectionExamples, SectionTroubleshooting, SectionMaintenance,
		SectionReference,
	},
	DocumentGuide: {
		SectionIntroduction, SectionOverview, SectionRequirements,
		SectionUsage, SectionExamples, SectionReference,
		SectionTroubleshooting,
	},
	DocumentReference: {
		SectionIntroduction, SectionOverview, SectionReference,
		SectionExamples, SectionTroubleshooting,
	},
}

// defaultSectionTypes is the classification fallback per document type when
// no heading keyword matches.
var defaultSectionTypes = map[DocumentType]SectionType{
	DocumentUserManual: SectionGeneral,
	DocumentGuide:      SectionUsage,
	DocumentReference:  SectionReference,
	DocumentGeneric:    SectionGeneral,
}
