package bitbucket

// maxAnnotationBody bounds the comment excerpt carried by an annotation.
const maxAnnotationBody = 45

// BuildAnnotations turns a comment thread into ordered human-readable
// annotation strings, one per comment, each carrying the author, a
// truncated comment body, and the issue's canonical URL. Order and count
// are preserved; an empty thread yields no annotations.
func BuildAnnotations(comments []Comment, url string) []string {
	annotations := make([]string, len(comments))
	for i, comment := range comments {
		annotations[i] = "@" + comment.AuthorUsername + " - " + truncate(comment.Body, maxAnnotationBody) + " - " + url
	}
	return annotations
}

// truncate shortens s to at most n runes, appending an ellipsis when
// anything was cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
