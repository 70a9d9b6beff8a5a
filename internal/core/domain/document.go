package domain

import "time"

// Document is one source content item (a blog post) as fetched from the
// content source. Identity is the content hash of the blob, not the
// filename, so identical content is never reprocessed even if renamed.
type Document struct {
	// ID is the stable content hash (git blob SHA).
	ID string

	// Name is the source filename, e.g. "2025-05-26-weekly-OFS-48.md".
	Name string

	// RawText is the raw file content including any front matter.
	RawText string

	// SourceURL is the human-facing URL of the post.
	SourceURL string
}

// ParsedDocument is a Document split into structured front-matter fields
// and body text. Every metadata value has been normalised to a string to
// satisfy the flat-key-value constraint of the downstream index.
type ParsedDocument struct {
	// Metadata holds the extracted front-matter fields, stringified.
	Metadata map[string]string

	// BodyText is the document content with the front-matter block stripped.
	BodyText string
}

// Chunk is a bounded-length text segment derived from a document, as
// stored in the vector index.
type Chunk struct {
	// ID is "{documentID}_chunk_{index}".
	ID string

	// Content is the text content of this chunk.
	Content string

	// Metadata contains document_id, chunk_index, total_chunks, source_url,
	// document_name plus all front-matter fields. Values are always strings;
	// the index rejects or silently mis-stores anything else, so the post
	// processor stringifies everything before a chunk leaves it.
	Metadata map[string]string
}

// PostEntry is one candidate entry from the source directory listing,
// before its body has been downloaded.
type PostEntry struct {
	// Name is the filename within the posts directory.
	Name string

	// SHA is the git blob SHA of the current content.
	SHA string

	// Date is the date embedded in the filename.
	Date time.Time

	// DownloadURL is where the raw content can be fetched.
	DownloadURL string

	// HTMLURL is the human-facing URL of the file.
	HTMLURL string
}
