// Package model defines the domain entities shared by the runningmate client and
// the reference API server.
//
// The package contains the wire types for crews, notices (board posts), friends and
// users, together with the RFC 9457 Problem Details error type the server writes.
//
// # Empty Sentinels
//
// Entities never carry nil collections once they pass through Normalize: unloaded
// lists are empty slices and unloaded scalars are their zero value, so views can
// render them unconditionally.
//
// # Ordered Envelopes
//
// Notice listings are returned as a JSON object keyed by entry, not as an array:
//
//	{"0": {"id": 1, "title": "..."}, "1": {"id": 2, "title": "..."}}
//
// NoticePage keeps the key order of that object on both decode and encode.
package model
