package triage

import "strings"

// PreviewLength is the number of characters kept in CategoryResult.ContentPreview.
const PreviewLength = 200

type CategoryResult struct {
	Category Category
	// Token is the first response line exactly as the model wrote it.
	Token          string
	Explanation    string
	ContentPreview string
}

// ParseCategoryResponse splits a completion into its category line and explanation.
func ParseCategoryResponse(response, content string) CategoryResult {
	text := strings.TrimSpace(response)
	lines := strings.Split(text, "\n")

	token := strings.TrimSpace(lines[0])
	explanation := strings.TrimSpace(strings.Join(lines[1:], "\n"))

	return CategoryResult{
		Category:       ParseCategory(token),
		Token:          token,
		Explanation:    explanation,
		ContentPreview: Preview(content, PreviewLength),
	}
}

// NewErrorResult records a failed categorization. The preview has no ellipsis.
func NewErrorResult(err error, content string) CategoryResult {
	return CategoryResult{
		Category:       CategoryError,
		Token:          string(CategoryError),
		Explanation:    "Error during categorization: " + err.Error(),
		ContentPreview: Truncate(content, PreviewLength),
	}
}

// Preview returns the first n characters of text followed by "..." when
// text is longer than n characters.
func Preview(text string, n int) string {
	if len([]rune(text)) <= n {
		return text
	}
	return Truncate(text, n) + "..."
}

func Truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
