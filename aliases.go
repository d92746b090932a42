package bot

import (
	"mineflow/bot/internal/chunks"
	"mineflow/bot/internal/geo"
)

type (
	Vec3       = geo.Vec3
	ChunkCoord = chunks.Coord
)
