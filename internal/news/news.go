// Package news defines the content model shared by the feed engine:
// articles, topics, and search filters.
package news

// Topic is a content category tag. The set is closed; TopicAll is the
// wildcard that asks the content source for a cross-category mix.
type Topic string

const (
	TopicAll           Topic = "All"
	TopicAI            Topic = "Artificial Intelligence"
	TopicIoT           Topic = "IoT"
	TopicCloud         Topic = "Cloud Computing"
	TopicCybersecurity Topic = "Cybersecurity"
	TopicVLSI          Topic = "VLSI & Hardware"
	TopicQuantum       Topic = "Quantum Computing"
	TopicBlockchain    Topic = "Blockchain & Web3"
	TopicRobotics      Topic = "Robotics"
	TopicBiotech       Topic = "Biotech & Health"
	TopicSpace         Topic = "Space Tech"
	TopicCleanTech     Topic = "Clean Energy"
	TopicTelecom       Topic = "5G & Connectivity"
)

// Topics lists every concrete topic, wildcard excluded, in display order.
func Topics() []Topic {
	return []Topic{
		TopicAI, TopicIoT, TopicCloud, TopicCybersecurity, TopicVLSI,
		TopicQuantum, TopicBlockchain, TopicRobotics, TopicBiotech,
		TopicSpace, TopicCleanTech, TopicTelecom,
	}
}

// Article is a single feed entry. Articles are immutable after creation;
// the ID is assigned at ingestion time by the content source adapter, not
// by the generator.
type Article struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Source       string   `json:"source"`
	URL          string   `json:"url"`
	PublishedAt  string   `json:"publishedAt"` // display-only, may be relative text
	Topic        Topic    `json:"category"`
	Summary      string   `json:"summary"`
	Content      string   `json:"content"`
	KeyTakeaways []string `json:"keyTakeaways,omitempty"`
	WhyItMatters string   `json:"whyItMatters,omitempty"`
	ImageURL     string   `json:"imageUrl"`
	Images       []string `json:"images,omitempty"`
}

// DateRange filter options.
const (
	DateAny   = "any"
	DateToday = "today"
	DateWeek  = "week"
	DateMonth = "month"
)

// SortBy filter options.
const (
	SortRelevance = "relevance"
	SortNewest    = "newest"
)

// SourceAll matches every publisher.
const SourceAll = "all"

// Filters is the search filter combination that scopes a cache entry.
// It never mutates articles; it only changes what the source returns.
type Filters struct {
	DateRange string `json:"dateRange"`
	SortBy    string `json:"sortBy"`
	Source    string `json:"source"`
}

// DefaultFilters returns the filter state a fresh session starts with.
func DefaultFilters() Filters {
	return Filters{DateRange: DateAny, SortBy: SortRelevance, Source: SourceAll}
}

// Signature serializes the filter combination for cache-key scoping.
func (f Filters) Signature() string {
	dr := f.DateRange
	if dr == "" {
		dr = DateAny
	}
	sb := f.SortBy
	if sb == "" {
		sb = SortRelevance
	}
	src := f.Source
	if src == "" {
		src = SourceAll
	}
	return dr + "-" + sb + "-" + src
}
