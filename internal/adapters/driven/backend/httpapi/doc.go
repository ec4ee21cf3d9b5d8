// Package httpapi provides the location search backend adapter over HTTP.
//
// Requests are GET {base}/api/search/{type}/{value} with the value
// path-escaped. Response bodies are decoded with json.Number so the marker
// normaliser sees ids and coordinates exactly as the backend sent them.
package httpapi
