// Package imgseed resolves a manifest of named items, each pointing at a
// social-media pin or a file-share page, into one locally saved image per item.
// Pages expose no API, so the real asset URL is found by rendering the page in
// a headless browser and applying an ordered cascade of extraction heuristics.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package imgseed
