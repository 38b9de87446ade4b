// Package formats provides parsers for the Wavefront OBJ and MTL model formats.
package formats
