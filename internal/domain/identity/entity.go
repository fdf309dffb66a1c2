package identity

import "time"

// Binding ties an external chat identity to exactly one employee.
type Binding struct {
	ExternalID  string
	EmployeeID  string
	DisplayName string
	BoundAt     time.Time
}
