// Package resource adapts typed client operations to calls on the remote HTTP API.
//
// Services are stateless. Every transport failure or non-2xx response is reduced
// to one domain error per operation category; the detail is logged at debug level
// and dropped.
package resource
