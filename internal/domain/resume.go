package domain

import "time"

type ResumeFormat string

const (
	FormatText ResumeFormat = "text"
	FormatPDF  ResumeFormat = "pdf"
	FormatDocx ResumeFormat = "docx"
)

// Resume holds the extracted text of an uploaded resume. The original
// document, when one was uploaded, lives in the object store under
// StorageKey; Content is what the match scorer works on. Content is
// empty when the document could not be parsed.
type Resume struct {
	ID     string
	UserID string
	Title  string
	Format ResumeFormat

	Content string

	StorageKey *string
	FileName   *string
	SizeBytes  *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
