// Package handler provides HTTP handlers for the directory API.
//
// Handlers decode and validate requests, call into the data access layer,
// and render responses. Errors surface as RFC 9457 Problem Details via a
// shared error mapper so every endpoint reports failures the same way.
package handler
