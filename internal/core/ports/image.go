package ports

import "context"

// ImageBuilder builds a container image from a prepared artifact directory.
// The directory must contain a Dockerfile; ref is the fully qualified
// image reference to tag the result with.
type ImageBuilder interface {
	Build(ctx context.Context, dir, ref string) error
}

// ImagePusher pushes a built image to its registry. The registry itself is an
// opaque collaborator; the adapter owns authentication.
type ImagePusher interface {
	Push(ctx context.Context, ref string) error
}

// ImageScanner runs a vulnerability scan against a built image. A non-nil
// error means the image failed the gate and must not be pushed.
type ImageScanner interface {
	Scan(ctx context.Context, ref string) error
}
