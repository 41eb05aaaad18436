package otel

import (
	"go.opentelemetry.io/otel/attribute"
)

/* GetAttributesForGreeting returns a set of attributes for a greeting. Attributes returned:
    greeting-version
    greeting-method

These attributes are tags that can be used to filter traces.
*/
func GetAttributesForGreeting(version, method string) []attribute.KeyValue {
	return []attribute.KeyValue{
		{Key: "greeting-version", Value: attribute.StringValue(version)},
		{Key: "greeting-method", Value: attribute.StringValue(method)},
	}
}
