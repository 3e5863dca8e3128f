// Package template defines the engine seam renderers use to turn page data
// into markup. The pongo subpackage provides the default implementation.
package template
