// Package mwmcodec implements the binary codec for a map tile's two
// auxiliary payloads: turn restrictions on the road graph and traffic
// coloring of directed road segments. Both payloads are bit-packed using
// delta coding, zig-zag coding, and Elias-gamma/delta universal codes;
// traffic values are additionally passed through a deflate pass.
//
// The package does not interpret what a restriction means to a router,
// nor how a client should render a speed group — it only encodes and
// decodes the wire formats that existing tiles and clients already read.
package mwmcodec
