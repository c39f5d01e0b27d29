package sidecar

// ReportMissing returns one record per photo post that has no media file in
// the inventory, in post order. Posts of any other media type are never
// reported.
func ReportMissing(posts []Post, inventory []FileEntry) []MissingMedia {
	var missing []MissingMedia
	for _, post := range posts {
		if post.MediaType != MediaTypePhoto {
			continue
		}
		if hasPrefixMatch(inventory, post.ID) {
			continue
		}
		missing = append(missing, MissingMedia{PostID: post.ID, URL: post.URL})
	}
	return missing
}
