// Package docwright turns a single source locator (a web page or a video
// reference) into a hierarchically organized, image-annotated document tree
// ready for a downstream formatter.
//
// The pipeline is: classify the locator, extract raw content (web page via
// structural parsing, video via metadata/transcript processing), parse the
// extracted text into typed content blocks, organize blocks into a section
// tree, and place available images into sections by relevance.
//
// This package contains domain types, interfaces, and the pure algorithms
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// youtube/, rod/).
package docwright
