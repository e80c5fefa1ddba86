// Package scraper fetches and normalizes events from the GBUWH website.
//
// The listing page is crawled for detail-page links, and each detail page is
// reduced to a flat sequence of text lines from which labeled fields are
// extracted by positional scan (see fields.go). A single detail page that
// fails to fetch or parse is logged and skipped; only a listing fetch failure
// aborts a run, since the listing is the sole discovery source.
package scraper
