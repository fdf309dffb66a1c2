package location

import "time"

// MaxClockSkew bounds how far ahead of server time a client-dated sample may be.
const MaxClockSkew = 2 * time.Minute

// Sample is one raw position report from a bound identity.
type Sample struct {
	ID          string
	ExternalID  string
	EmployeeID  string
	DisplayName string
	Latitude    float64
	Longitude   float64
	OccurredAt  time.Time
	CreatedAt   time.Time
}
