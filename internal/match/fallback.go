package match

import "fmt"

// FallbackContent synthesizes resume text for documents whose content
// could not be extracted (binary PDFs, unreadable uploads). The output
// is deterministic for a given format and title, so scoring it stays
// idempotent, but the score then reflects this template, not the real
// document. Results computed from it are flagged Estimated.
func FallbackContent(format, title string) string {
	return fmt.Sprintf(
		"%s. Resume document in %s format. "+
			"Experienced software professional with a background in "+
			"web development, databases, teamwork and communication.",
		title, format,
	)
}
