// Package imaging connects decoded files to the pixel editing packages.
//
// It loads and caches images, copies them into pixbuf buffers (ToBuffer) and
// back out (FromBuffer), encodes results as base64 PNG for transport, and
// describes sampled colors as hex, RGBA, CIE XYZ and HunterLab.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left pixel of the
// image, X increasing rightward and Y increasing downward. Decoded images
// whose bounds do not start at (0,0) are addressed relative to their Min.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Images it returns are shared and
// must not be mutated; edit a buffer obtained from ToBuffer instead.
// A Describer is immutable and may be shared.
package imaging
