// Package domain contains the core business entities for blograg:
// documents fetched from the blog source, the chunks derived from them,
// ingestion progress and results, and search types. It has no dependencies
// on other internal packages.
package domain
