// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"

	qimage "gocs/image"
	"gocs/world"
)

// dumpLightmaps writes every lightmap of w as <polygon name>.<format> into
// dir.
func dumpLightmaps(w *world.World, dir, format string) (int, error) {
	if !slices.Contains(qimage.Formats, format) {
		return 0, errors.Errorf("unknown image format %q", format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, errors.Wrap(err, "create dump directory")
	}
	n := 0
	var err error
	w.Polygons(func(p *world.Polygon) {
		if err != nil || p.Lightmap() == nil {
			return
		}
		if err = qimage.Write(filepath.Join(dir, p.Name()+"."+format), p.Lightmap().Image()); err == nil {
			n++
		}
	})
	return n, err
}
