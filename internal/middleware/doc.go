// Package middleware provides HTTP middleware for the directory API:
// request identification, structured request logging, panic recovery,
// and CORS handling.
package middleware
