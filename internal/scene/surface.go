package scene

// Surface is a graphics context. Draw is called once per rendered frame;
// Release frees it and is called exactly once by the owning Handle.
type Surface interface {
	Draw(s *Scene) error
	Release()
}

type SurfaceFactory func() (Surface, error)

// NullSurface counts draws and discards them. It backs headless runs.
type NullSurface struct {
	Draws    int
	Released bool
}

func (n *NullSurface) Draw(*Scene) error {
	n.Draws++
	return nil
}

func (n *NullSurface) Release() { n.Released = true }

func NullFactory() SurfaceFactory {
	return func() (Surface, error) { return &NullSurface{}, nil }
}
