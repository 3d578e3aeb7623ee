package model

// Category groups tasks by the kind of accounting work
// (e.g. VAT filing, payroll, year-end closing).
type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Client is a customer of the accounting office.
type Client struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
