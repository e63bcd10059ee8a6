package http

import "strings"

// URLResolver turns stored video asset references into client-fetchable
// URLs. Blob storage itself is an external collaborator.
type URLResolver interface {
	Resolve(raw string) string
}

// PublicURLResolver rewrites gs://bucket/path references to the bucket's
// public HTTPS form and passes every other URL through unchanged.
type PublicURLResolver struct{}

func (PublicURLResolver) Resolve(raw string) string {
	const scheme = "gs://"
	if !strings.HasPrefix(raw, scheme) {
		return raw
	}
	rest := strings.TrimPrefix(raw, scheme)
	bucket, path, ok := strings.Cut(rest, "/")
	if !ok {
		return raw
	}
	return "https://storage.googleapis.com/" + bucket + "/" + path
}
