package sidecar

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
)

var (
	ErrMissingID = errors.New("sidecar: post missing required \"id\" attribute")
	ErrMalformed = errors.New("sidecar: malformed posts document")
)

// element records the most recently opened element so character data can be
// attributed without a full stack; the export vocabulary never nests
// same-named elements.
type element int

const (
	elemOther element = iota
	elemPost
	elemTag
	elemPhoto
	elemPhotoURL
)

// Posts streams Post records out of a Tumblr posts.xml export. Tags pass
// through mappings before they are recorded. Iteration stops at the first
// error: a post without an id attribute surfaces as ErrMissingID and any
// decoder failure as ErrMalformed.
func Posts(r io.Reader, mappings TagMappings) iter.Seq2[Post, error] {
	return func(yield func(Post, error) bool) {
		decoder := xml.NewDecoder(r)
		state := elemOther
		var post Post
		extensionSet := false

		for {
			token, err := decoder.Token()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Post{}, fmt.Errorf("%w: %w", ErrMalformed, err))
				return
			}

			switch t := token.(type) {
			case xml.StartElement:
				switch t.Name.Local {
				case "post":
					id := attrValue(t, "id")
					if id == "" {
						yield(Post{}, ErrMissingID)
						return
					}
					post = Post{
						ID:        id,
						URL:       attrValue(t, "url"),
						Tags:      []string{},
						MediaType: postMediaType(attrValue(t, "type")),
					}
					extensionSet = false
					state = elemPost
				case "tag":
					state = elemTag
				case "photo":
					post.ImageCount++
					post.MediaType = MediaTypePhoto
					state = elemPhoto
				case "photo-url":
					post.MediaType = MediaTypePhoto
					state = elemPhotoURL
				default:
					state = elemOther
				}

			case xml.EndElement:
				if t.Name.Local == "post" {
					if !yield(post, nil) {
						return
					}
					post = Post{}
					state = elemOther
				}

			case xml.CharData:
				text := string(t)
				// xml-rs style: all-whitespace text is structural, not content.
				if strings.TrimSpace(text) == "" {
					break
				}
				switch state {
				case elemTag:
					if mapped, keep := mappings.Apply(text); keep {
						post.Tags = append(post.Tags, mapped)
					}
				case elemPhotoURL:
					if !extensionSet {
						if ext, ok := urlExtension(text); ok {
							post.Extension = ext
							extensionSet = true
						}
					}
				}
			}
		}
	}
}

// ParsePosts collects the full post stream, failing on the first error.
func ParsePosts(r io.Reader, mappings TagMappings) ([]Post, error) {
	var posts []Post
	for post, err := range Posts(r, mappings) {
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// ParsePostsFile parses the export at path.
func ParsePostsFile(path string, mappings TagMappings) ([]Post, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open posts file %q: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return ParsePosts(file, mappings)
}

func attrValue(el xml.StartElement, name string) string {
	for _, attr := range el.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

func postMediaType(typeAttr string) MediaType {
	switch typeAttr {
	case "", "regular":
		return MediaTypeText
	case "photo":
		return MediaTypePhoto
	default:
		return MediaTypeOther
	}
}

// urlExtension extracts the file extension from the last path segment of a
// media URL. The second return reports whether the segment contained an
// extension separator at all, so an empty suffix still counts as one.
func urlExtension(url string) (string, bool) {
	segment := url
	if i := strings.LastIndexByte(segment, '/'); i >= 0 {
		segment = segment[i+1:]
	}
	i := strings.LastIndexByte(segment, '.')
	if i < 0 {
		return "", false
	}
	return segment[i+1:], true
}
