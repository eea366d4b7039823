// Package features links every feature package into the binary. Each
// registers its routes, computations and schemas from init.
package features

import (
	_ "github.com/chromy/hilbertviz/internal/features/api"
	_ "github.com/chromy/hilbertviz/internal/features/quadtree"
	_ "github.com/chromy/hilbertviz/internal/features/render"
	_ "github.com/chromy/hilbertviz/internal/features/tiles"
	_ "github.com/chromy/hilbertviz/internal/features/varz"
)
