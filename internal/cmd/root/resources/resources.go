package resources

// Empty type to represent the _type_ Resource. Genesis is to support a key in a Context
type ResourceKey struct{}

// Resource is a global instance of the ResourceKey type
var Resource = ResourceKey{}

// Will represent a specific Resource (subscriptions, verifications)
type ResourceValue string

func (r ResourceValue) String() string {
	return string(r)
}
