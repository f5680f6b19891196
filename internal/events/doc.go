// Package events publishes FTP node lifecycle and control results to a
// Redis stream.
package events
