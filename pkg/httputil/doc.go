// Package httputil provides HTTP handler utilities for consistent JSON
// encoding/decoding and the service's error-list response convention.
package httputil
