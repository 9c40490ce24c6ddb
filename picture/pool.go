// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package picture

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// ResourcePool stores the resources referenced by recorded operations.
// Paths are cloned on insertion so later mutation by the caller cannot
// change a recording. Images must not be modified after they are drawn.
// Font faces are deduplicated; they are immutable and safe to share.
//
// ResourcePool is not safe for concurrent mutation.
type ResourcePool struct {
	paths  []*gg.Path
	images []image.Image
	faces  []text.Face
	faceID map[text.Face]FaceRef
}

// NewResourcePool creates an empty pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		paths:  make([]*gg.Path, 0, 32),
		images: make([]image.Image, 0, 4),
		faces:  make([]text.Face, 0, 4),
		faceID: make(map[text.Face]FaceRef),
	}
}

// AddPath clones path into the pool and returns its reference.
func (p *ResourcePool) AddPath(path *gg.Path) PathRef {
	var cloned *gg.Path
	if path != nil {
		cloned = path.Clone()
	}
	p.paths = append(p.paths, cloned)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return PathRef(uint32(len(p.paths) - 1))
}

// Path returns the path for ref, or nil if ref is out of range.
func (p *ResourcePool) Path(ref PathRef) *gg.Path {
	if int(ref) >= len(p.paths) {
		return nil
	}
	return p.paths[ref]
}

// AddImage stores img and returns its reference.
func (p *ResourcePool) AddImage(img image.Image) ImageRef {
	p.images = append(p.images, img)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return ImageRef(uint32(len(p.images) - 1))
}

// Image returns the image for ref, or nil if ref is out of range.
func (p *ResourcePool) Image(ref ImageRef) image.Image {
	if int(ref) >= len(p.images) {
		return nil
	}
	return p.images[ref]
}

// AddFace stores face, reusing the existing reference if the same face was
// added before.
func (p *ResourcePool) AddFace(face text.Face) FaceRef {
	if p.faceID == nil {
		p.faceID = make(map[text.Face]FaceRef)
	}
	if ref, ok := p.faceID[face]; ok {
		return ref
	}
	p.faces = append(p.faces, face)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	ref := FaceRef(uint32(len(p.faces) - 1))
	p.faceID[face] = ref
	return ref
}

// Face returns the face for ref, or nil if ref is out of range.
func (p *ResourcePool) Face(ref FaceRef) text.Face {
	if int(ref) >= len(p.faces) {
		return nil
	}
	return p.faces[ref]
}

// Counts returns the number of paths, images and faces in the pool.
func (p *ResourcePool) Counts() (paths, images, faces int) {
	return len(p.paths), len(p.images), len(p.faces)
}

// freeze returns a read-only view of the pool as it is now. The view shares
// storage with p, but its capacity is clipped so later additions to p
// never write into it.
func (p *ResourcePool) freeze() *ResourcePool {
	return &ResourcePool{
		paths:  p.paths[:len(p.paths):len(p.paths)],
		images: p.images[:len(p.images):len(p.images)],
		faces:  p.faces[:len(p.faces):len(p.faces)],
	}
}

// release drops every resource reference.
func (p *ResourcePool) release() {
	p.paths = nil
	p.images = nil
	p.faces = nil
	p.faceID = nil
}
