// Package events publishes change sets to a message broker so other
// processes can follow writes made by budget-core.
//
// The AMQP publisher declares a durable direct exchange and publishes one
// persistent JSON ChangeMessage per non-empty change set, using the topic
// (usually a table name) as routing key. When no broker URL is configured,
// New returns a Nop publisher.
package events
