package featureflag

import "context"

// Flag keys known to the platform
const (
	// KeyOrderFulfillment gates the bridge from order domain events to
	// broker integration events. Domain events are always buffered and
	// dispatched in-process; only the outward publish is conditional.
	KeyOrderFulfillment = "order_fulfillment"
)

// Flags evaluates boolean feature flags.
// Unknown keys evaluate to false.
type Flags interface {
	IsEnabled(ctx context.Context, key string) (bool, error)
}
