// Package style maps the CSS text of one authoring scope (site, page,
// section, row or column) to a property model and back.
//
// Parsing is lenient: declarations which are not recognized or cannot be
// read leave the corresponding field unset. Generation is deterministic and
// shaped by the editing context. The Resolver answers where a property
// comes from when it is not set locally, using a simple three tier cascade
// (site, page, section) instead of selector specificity.
package style
