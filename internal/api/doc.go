// Package api handles incoming HTTP requests, request validation and
// response formatting for the formula analyzer and the compound registry.
// It translates HTTP concerns to service operations and maps service and
// analyzer errors back to status codes and safe messages.
package api
