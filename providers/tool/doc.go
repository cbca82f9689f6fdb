// Package tool binds typed Go functions to a name, a description and a JSON
// schema derived from the input type, so they can be advertised and invoked
// over a JSON boundary such as an MCP server.
//
// Create tools with [NewTool] and group them in a [Catalog]. The catalog is
// safe for concurrent use and keeps tools in registration order.
package tool
