// Package types holds the context keys shared by the CLI commands.
package types

type ContextKey string

// ClientAppKey carries the initialized *client.App through the cobra
// command context.
const ClientAppKey ContextKey = "app"
