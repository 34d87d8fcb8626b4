package task

// SortOption selects the task list comparator.
type SortOption string

const (
	SortByDueDate   SortOption = "dueDate"
	SortByCreatedAt SortOption = "createdAt"
	SortByPriority  SortOption = "priority"
	SortByTitle     SortOption = "title"
)

// SortOrder selects comparator direction.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// Filter describes the active task list predicates. Zero-valued fields
// are inactive; active predicates are combined as a conjunction.
type Filter struct {
	Status   Status   `json:"status,omitempty"`
	Priority Priority `json:"priority,omitempty"`
	Label    string   `json:"label,omitempty"`
	Search   string   `json:"search,omitempty"`
}
