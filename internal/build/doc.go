// Package build renders a whole site.
//
// Two discovery shapes are supported. In graph mode the header document and
// the base document are rendered, and every other page is reached through the
// base document's include and index handlers. In scan mode every Markdown
// file below the content root is rendered as an independent page on a
// bounded worker pool. Both modes finish by grouping written pages by output
// directory and reporting directories that lack an index.html.
package build
