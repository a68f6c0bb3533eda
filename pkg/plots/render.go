package plots

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Figure is one image to render under a directory.
type Figure struct {
	Name   string
	Render func(path string) error
}

// RenderAll renders figs concurrently into dir as <Name>.png and returns the
// written paths in figs order. The first failure cancels the figures not yet started.
func RenderAll(ctx context.Context, dir string, figs []Figure) ([]string, error) {
	g, ctx := errgroup.WithContext(ctx)
	paths := make([]string, len(figs))
	for i, f := range figs {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := filepath.Join(dir, f.Name+".png")
			if err := f.Render(p); err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
			paths[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
