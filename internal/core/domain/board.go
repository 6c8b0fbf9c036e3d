package domain

// ColumnRole identifies one of the fixed columns provisioned on every board.
type ColumnRole string

const (
	// ColumnDueDate is the date column ("Due Date").
	ColumnDueDate ColumnRole = "due_date"
	// ColumnPoints is the numeric column ("Points").
	ColumnPoints ColumnRole = "points"
	// ColumnCategory is the text column ("Category").
	ColumnCategory ColumnRole = "category"
)

// ColumnMap maps a logical column role to the provider-assigned column id.
// Item payloads reference provider ids, so the map must be fully resolved
// before any item is created.
type ColumnMap map[ColumnRole]string

// Complete returns true if all three fixed columns have resolved ids.
func (m ColumnMap) Complete() bool {
	return m[ColumnDueDate] != "" && m[ColumnPoints] != "" && m[ColumnCategory] != ""
}

// ItemResult records the outcome of one item-creation request.
type ItemResult struct {
	// AssignmentID is the id of the assignment the item was built from.
	AssignmentID string `json:"assignment_id"`

	// ItemID is the provider-assigned item id on success.
	ItemID string `json:"item_id,omitempty"`

	// Err is non-nil if the item request failed. Other items in the
	// same batch are unaffected.
	Err error `json:"-"`
}

// SyncReport is the result of one provisioning run. The board and its
// columns always exist when a report is returned; individual item
// failures are listed per record so partial success stays observable.
type SyncReport struct {
	// BoardID is the provider id of the newly created board.
	BoardID string `json:"board_id"`

	// Columns maps logical roles to provider column ids.
	Columns ColumnMap `json:"columns"`

	// Items holds one result per assignment, in batch order.
	Items []ItemResult `json:"items"`
}

// FailedCount returns the number of item requests that failed.
func (r *SyncReport) FailedCount() int {
	n := 0
	for _, it := range r.Items {
		if it.Err != nil {
			n++
		}
	}
	return n
}
