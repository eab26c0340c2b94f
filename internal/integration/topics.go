package integration

import "strings"

const topicPrefix = "shopstream."

// TopicFor returns the broker topic for an event type.
// Routing is one topic per event type; consumers subscribe with a group
// id per consuming service so each service sees every event once.
func TopicFor(eventType string) string {
	return topicPrefix + strings.ReplaceAll(eventType, ".", "-")
}

// GroupFor returns the consumer group id for a service consuming an event type
func GroupFor(service, eventType string) string {
	return service + "." + eventType
}
