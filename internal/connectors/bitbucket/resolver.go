package bitbucket

import "strings"

// BaseWebURL is the human-facing Bitbucket host.
const BaseWebURL = "https://bitbucket.org/"

// CanonicalURL converts an API resource URI to the canonical web URL.
// /1.0/repositories/owner/slug/issues/42 -> https://bitbucket.org/owner/slug/issue/42
//
// The canonical URL is the stable identity of an issue: the same resource
// URI always yields the same URL, across runs.
func CanonicalURL(resourceURI string) string {
	segments := strings.Split(resourceURI, "/")
	if len(segments) <= 3 {
		return ""
	}
	return BaseWebURL + strings.ReplaceAll(strings.Join(segments[3:], "/"), "issues", "issue")
}
