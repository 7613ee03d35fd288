package refdata

// Category is an expense category. Reference data: entries embed a copy of
// the category as it looked at creation time.
type Category struct {
	ID          string
	Name        string
	Description string
}

// Requester is a person who can request a disbursement.
type Requester struct {
	ID         string
	Name       string
	Department string
}

// Source provides read-only lookups over the reference tables.
// The fixed lists stand in for an external lookup service.
type Source struct {
	categories []Category
	requesters []Requester
}

func NewSource() *Source {
	return &Source{
		categories: []Category{
			{ID: "1", Name: "Office Supplies", Description: "Office supplies and materials"},
			{ID: "2", Name: "Travel", Description: "Travel expenses"},
			{ID: "3", Name: "Meals", Description: "Food and beverages"},
		},
		requesters: []Requester{
			{ID: "1", Name: "John Doe", Department: "IT"},
			{ID: "2", Name: "Jane Smith", Department: "HR"},
			{ID: "3", Name: "Bob Wilson", Department: "Finance"},
		},
	}
}

// Categories returns a copy of the category table.
func (s *Source) Categories() []Category {
	out := make([]Category, len(s.categories))
	copy(out, s.categories)

	return out
}

// Requesters returns a copy of the requester table.
func (s *Source) Requesters() []Requester {
	out := make([]Requester, len(s.requesters))
	copy(out, s.requesters)

	return out
}

// CategoryByID returns the category with the given id, or false if unknown.
func (s *Source) CategoryByID(id string) (Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}

	return Category{}, false
}

// RequesterByID returns the requester with the given id, or false if unknown.
func (s *Source) RequesterByID(id string) (Requester, bool) {
	for _, r := range s.requesters {
		if r.ID == id {
			return r, true
		}
	}

	return Requester{}, false
}

// CategoryByName resolves a category by its display name. CSV exports carry
// names rather than ids, so re-import resolves through here.
func (s *Source) CategoryByName(name string) (Category, bool) {
	for _, c := range s.categories {
		if c.Name == name {
			return c, true
		}
	}

	return Category{}, false
}

// RequesterByName resolves a requester by display name and department.
func (s *Source) RequesterByName(name, department string) (Requester, bool) {
	for _, r := range s.requesters {
		if r.Name == name && r.Department == department {
			return r, true
		}
	}

	return Requester{}, false
}
