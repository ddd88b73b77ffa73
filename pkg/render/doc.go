// Package render turns VNode trees into HTML.
//
// The renderer escapes text and attribute values, knows void and boolean
// attributes, and collects event handler props into a registry instead of
// rendering them, marking their elements with data-sv so a host can route
// client events back to the right handler.
package render
