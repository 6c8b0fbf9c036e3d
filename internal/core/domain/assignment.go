package domain

// UntitledAssignment is the sentinel title used when the source text
// gives an assignment no usable title.
const UntitledAssignment = "Untitled"

// Assignment is the canonical unit extracted from a syllabus document.
// Fields other than ID and Title are optional: a nil pointer means the
// source did not state the value, and it is never guessed.
type Assignment struct {
	// ID is unique within one extraction batch. Assigned by the
	// extractor when the source omits it. Slice order is the
	// authoritative display order.
	ID string `json:"id"`

	// Title is the display text. Never empty after extraction.
	Title string `json:"title"`

	// DueDate is an ISO 8601 calendar date (YYYY-MM-DD) when known.
	DueDate *string `json:"dueDate"`

	// Points is the non-negative point value when known.
	Points *float64 `json:"points"`

	// Category is a free-form label (e.g. "Homework", "Exam").
	// The extractor passes through whatever the model returned;
	// mapping onto a closed set is a presentation concern.
	Category *string `json:"category"`
}

// HasDueDate reports whether a due date was stated in the source.
func (a *Assignment) HasDueDate() bool {
	return a.DueDate != nil && *a.DueDate != ""
}

// HasPoints reports whether a point value was stated in the source.
func (a *Assignment) HasPoints() bool {
	return a.Points != nil
}

// HasCategory reports whether a category label was stated in the source.
func (a *Assignment) HasCategory() bool {
	return a.Category != nil && *a.Category != ""
}
