package location

import "context"

type LocationService interface {
	// RecordLocation validates the ping, resolves the sender and appends a sample.
	RecordLocation(ctx context.Context, req RecordLocationRequest) (SampleResponse, error)
}
