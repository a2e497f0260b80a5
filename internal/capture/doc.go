// Package capture implements the ink capture surface a learner draws on.
//
// A Surface owns a device-pixel-density raster. It accepts a pointer path
// (down, move*, up/leave) in global coordinates, composites ink or erase
// strokes, tracks whether anything has ever been drawn since the last clear,
// and exports a flattened JPEG snapshot with erased regions resolved to white.
//
// A Surface is owned by a single session turn and is not safe for concurrent
// use.
package capture
