// Package api contains the HTTP handlers, request validation rules, and
// error mapping for the user directory endpoints.
package api
