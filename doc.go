// Package pixbuf provides reference-counted raster image buffers.
//
// # Overview
//
// pixbuf is the buffer-management core of an image-processing toolkit.
// It defines ImageBuffer, a mutable raster buffer that is shared by
// reference: algorithms receive handles to the same underlying storage,
// clone handles cheaply, and release them when done. The last release
// frees the pixel storage through a configurable allocator.
//
// # Quick Start
//
//	import "github.com/gopix/pixbuf"
//
//	// Create a 640x480 8-bit buffer, zero-filled
//	b, err := pixbuf.New(640, 480, pixbuf.Depth8)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Share it with another owner
//	c, _ := b.Clone()
//
//	// Each owner destroys its own handle; storage is freed once
//	pixbuf.Destroy(&b)
//	pixbuf.Destroy(&c)
//
// # Sharing Model
//
// Clone increments a handle count and returns the same object; it never
// copies pixel data. Mutations made through one handle are visible
// through every other handle. CopyInto is the only operation that
// duplicates pixel bytes, and when it resizes an existing destination it
// does so in place, so the new geometry is seen by every handle that
// aliases the destination.
//
// # Memory Management
//
// All pixel storage is obtained through an Allocator. The default is the
// Go heap; embedding applications can install a custom allocator (for
// example PooledAllocator) with SetAllocator before creating buffers, or
// build an isolated Factory for independent configuration in tests.
// Buffer headers always live on the Go heap.
//
// # Concurrency
//
// The handle count is atomic, so Clone and Destroy may race with each
// other safely. Structural mutation (geometry setters, SetData, the
// resize performed by CopyInto) assumes a single logical owner at a
// time; cross-goroutine structural writes require external locking.
package pixbuf

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
