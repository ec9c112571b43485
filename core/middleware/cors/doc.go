// Package cors sets CORS response headers and answers preflight requests.
package cors
