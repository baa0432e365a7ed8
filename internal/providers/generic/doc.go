// Package generic implements a providers.Extractor for plain HTML reader
// pages that list every page as an <img> element. Images are returned in
// document order; relative links are resolved against the chapter URL.
// Pages that build their reader in JavaScript fall back to image URLs
// quoted inside inline scripts.
package generic
