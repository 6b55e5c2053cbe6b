package source

import (
	"fmt"
	"strings"

	"github.com/nowflowai/nowflow/internal/news"
)

// buildNewsPrompt assembles the aggregation prompt for one page. The filter
// and pagination blocks steer the search tool; the JSON contract at the end
// is what decodeArticleJSON expects back.
func buildNewsPrompt(topic news.Topic, page int, filters news.Filters, pageSize int) string {
	categoryTerm := string(topic)
	if topic == news.TopicAll {
		categoryTerm = "latest emerging technology, engineering blogs, and tech analysis"
	}

	var filterInstructions strings.Builder
	switch filters.DateRange {
	case news.DateToday:
		filterInstructions.WriteString("STRICT REQUIREMENT: Only include content published within the last 24 hours.\n")
	case news.DateWeek:
		filterInstructions.WriteString("STRICT REQUIREMENT: Only include content published within the last 7 days.\n")
	case news.DateMonth:
		filterInstructions.WriteString("Requirement: Only include content published within the last 30 days.\n")
	}
	if filters.Source != "" && filters.Source != news.SourceAll {
		fmt.Fprintf(&filterInstructions, "STRICT REQUIREMENT: Prioritize and filter for content from the source %q if available.\n", filters.Source)
	}
	if filters.SortBy == news.SortNewest {
		filterInstructions.WriteString("Ordering: List the most recent events/posts first.\n")
	}

	sourceDiversity := fmt.Sprintf(`CRITICAL SOURCE DIVERSITY REQUIREMENT:
The returned articles MUST be a diverse mix of:
1. Official MNC/Engineering Blogs (e.g., Google AI Blog, Netflix TechBlog, Uber Engineering, Microsoft Research, AWS Architecture Blog, Meta Engineering, Cloudflare Blog).
2. Expert Personal Blogs/Substacks (e.g., renowned developers, security researchers, tech analysts).
3. Mainstream Tech News (e.g., TechCrunch, The Verge, Reuters) - ONLY if engineering blogs are not available.

PRIORITY: Actively search for specific "Engineering Blog" posts related to %q. We want deep technical insights, not just press releases.`, categoryTerm)

	var pagination string
	if page == 1 {
		pagination = fmt.Sprintf("Search for the top %d most significant technical stories right now. MANDATORY: At least half the results must be from official company engineering blogs (e.g. 'How we built X at Y').", pageSize)
	} else {
		pagination = fmt.Sprintf(`This is page %d of an infinite feed.
Task: Search for %d *additional* and *distinct* stories.
Prioritize:
- Technical deep-dives/whitepapers.
- Niche architectural breakdowns.
- Avoid repeating major headlines found on earlier pages.`, page, pageSize)
	}

	return fmt.Sprintf(`You are a real-time content aggregator for a professional tech platform.
Target Topic: %q.

%s
%s
%s

Focus on technology, innovation, system architecture, and business impact.

Requirements:
1. Use the 'googleSearch' tool to find real, up-to-date information.
2. After searching, format the results into a strictly valid JSON array.
3. IMPORTANT: Return ONLY the raw JSON string. Do not use Markdown code blocks. Do not add introductory text.

JSON Structure per article:
{
  "title": "Headline of the story or blog post",
  "source": "Name of the publisher (e.g., 'Netflix TechBlog')",
  "publishedAt": "Relative time (e.g., '2 days ago') or Date string",
  "summary": "A punchy, 2-sentence summary. If it's a technical blog, mention the specific problem/solution.",
  "keyTakeaways": ["Key point 1", "Key point 2", "Key point 3"],
  "whyItMatters": "One sentence explaining the industry implication or engineering lesson.",
  "content": "A slightly longer paragraph (approx 4-5 sentences) expanding on the details."
}`, categoryTerm, filterInstructions.String(), sourceDiversity, pagination)
}
