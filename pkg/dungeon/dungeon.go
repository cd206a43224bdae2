package dungeon

import (
	"context"
	"fmt"
	"sort"

	"github.com/duskforge/voxeldungeon/pkg/geometry"
	"github.com/duskforge/voxeldungeon/pkg/rng"
	"github.com/duskforge/voxeldungeon/pkg/room"
	"github.com/duskforge/voxeldungeon/pkg/router"
	"github.com/duskforge/voxeldungeon/pkg/topology"
	"github.com/duskforge/voxeldungeon/pkg/voxel"
)

// stageLayout, stageOptional name the RNG stages derived from the config
// hash. The router itself never touches an RNG.
const (
	stageLayout   = "layout"
	stageOptional = "optional-connections"
)

// ConnectionResult records the outcome of attempting one required or
// optional connection. Start and Height are only meaningful when Routed is
// true; they are the committed passage's start voxel and its height (the
// configured passage height clamped to both rooms' heights).
type ConnectionResult struct {
	Room0, Room1 room.ID
	Required     bool
	Routed       bool
	Start        voxel.Point
	Height       int
	Err          error
}

// Result is everything Generate produces: the placed rooms, the committed
// voxel map (rooms and every successfully routed passage merged in), and a
// diagnostic record of every connection attempt.
type Result struct {
	Rooms       map[room.ID]*room.Room
	Map         *voxel.Map
	Connections []ConnectionResult
}

// Passages returns the subset of Connections that were successfully
// committed, in attempt order (required connections first).
func (r *Result) Passages() []ConnectionResult {
	var out []ConnectionResult
	for _, c := range r.Connections {
		if c.Routed {
			out = append(out, c)
		}
	}
	return out
}

// Placer and Selector are the pluggable collaborators Generate drives;
// exported so callers can substitute test doubles or alternative
// strategies without re-implementing the orchestrator.
type Placer = room.Placer
type Selector = topology.Selector

// Generate runs the full orchestrator: place rooms, commit their shells to
// a shared voxel map, select required (MST) and optional (Delaunay)
// connections, route every required connection (aborting generation if any
// fails), then attempt each optional connection with probability
// cfg.OptionalConnectionProbability (dropping silently on failure).
//
// Generate is deterministic: identical ctx-independent (cfg) always
// produces a bit-identical Result, since every random decision is drawn
// from a stage RNG derived from cfg.Seed and cfg.Hash().
func Generate(ctx context.Context, cfg *Config) (*Result, error) {
	return GenerateWith(ctx, cfg, room.NewTieredPlacer(), topology.NewKruskalDelaunaySelector())
}

// GenerateWith runs the same orchestrator as Generate but with caller-
// supplied Placer and Selector implementations, for tests and for callers
// wanting a different room-placement or connection-selection strategy.
func GenerateWith(ctx context.Context, cfg *Config, placer Placer, selector Selector) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	configHash := cfg.Hash()

	layoutRNG := rng.NewRNG(cfg.Seed, stageLayout, configHash)
	rooms, err := placer.Place(ctx, layoutRNG, cfg.placementConfig())
	if err != nil {
		return nil, fmt.Errorf("placing rooms: %w", err)
	}

	if err := checkCtx(ctx); err != nil {
		return nil, err
	}

	m := voxel.NewMap(
		voxel.Point{X: -cfg.MarginForBounds, Y: -cfg.MarginForBounds, Z: -cfg.MarginForBounds},
		voxel.Point{
			X: cfg.Width + 2*cfg.MarginForBounds,
			Y: cfg.Height + 2*cfg.MarginForBounds,
			Z: cfg.Depth + 2*cfg.MarginForBounds,
		},
	)
	for _, id := range sortedRoomIDs(rooms) {
		if err := m.AddRoom(rooms[id]); err != nil {
			return nil, fmt.Errorf("committing room %d: %w", id, ErrLayoutConflict)
		}
	}

	if err := checkCtx(ctx); err != nil {
		return nil, err
	}

	required, optional := selector.Select(rooms)

	result := &Result{Rooms: rooms, Map: m}

	for _, conn := range required {
		if err := checkCtx(ctx); err != nil {
			return nil, err
		}
		start, height, routed, routeErr := attemptConnection(m, rooms, conn, cfg.PassageHeight)
		result.Connections = append(result.Connections, ConnectionResult{
			Room0: conn.Room0ID, Room1: conn.Room1ID, Required: true, Routed: routed, Start: start, Height: height, Err: routeErr,
		})
		if !routed {
			return nil, &ConnectionError{Room0: conn.Room0ID, Room1: conn.Room1ID, Required: true, Err: routeErr}
		}
	}

	optionalRNG := rng.NewRNG(cfg.Seed, stageOptional, configHash)
	for _, conn := range optional {
		if err := checkCtx(ctx); err != nil {
			return nil, err
		}
		if optionalRNG.Float64() >= cfg.OptionalConnectionProbability {
			continue
		}
		start, height, routed, routeErr := attemptConnection(m, rooms, conn, cfg.PassageHeight)
		result.Connections = append(result.Connections, ConnectionResult{
			Room0: conn.Room0ID, Room1: conn.Room1ID, Required: false, Routed: routed, Start: start, Height: height, Err: routeErr,
		})
	}

	return result, nil
}

// attemptConnection picks a start point and legal directions for conn,
// routes a passage between its two rooms, and merges the result into m on
// success.
func attemptConnection(m *voxel.Map, rooms map[room.ID]*room.Room, conn *topology.RoomConnection, passageHeight int) (start voxel.Point, height int, ok bool, err error) {
	room0, room1 := rooms[conn.Room0ID], rooms[conn.Room1ID]
	startRoom, endRoom, point, dirs := geometry.PickStart(room0, room1)
	if len(dirs) == 0 {
		return voxel.Point{}, 0, false, router.ErrUnreachable
	}

	height = passageHeightFor(startRoom, endRoom, passageHeight)
	passage := router.Passage{
		Start:       point,
		StartDirs:   dirs,
		Height:      height,
		StartRoomID: startRoom.ID,
		EndRoomID:   endRoom.ID,
	}
	target := targetRoomFor(endRoom)

	proposal, routeErr := router.Route(m, passage, target)
	if routeErr != nil {
		return point, height, false, routeErr
	}
	if mergeErr := m.Merge(proposal); mergeErr != nil {
		return point, height, false, mergeErr
	}
	return point, height, true, nil
}

// passageHeightFor bounds the configured passage height to both rooms'
// interior heights, so a corridor can never be taller than the shorter of
// the two rooms it joins (it has to fit through each room's doorway).
func passageHeightFor(a, b *room.Room, configured int) int {
	h := configured
	if a.Height < h {
		h = a.Height
	}
	if b.Height < h {
		h = b.Height
	}
	if h < 1 {
		h = 1
	}
	return h
}

// targetRoomFor builds the router's TargetRoom from r, truncating its
// real-valued centre to integers exactly as the search's scorer expects.
func targetRoomFor(r *room.Room) router.TargetRoom {
	cx, _, cz := r.Center()
	return router.TargetRoom{
		ID:      r.ID,
		OriginY: r.Origin.Y,
		CenterX: int(cx),
		CenterZ: int(cz),
	}
}

func sortedRoomIDs(rooms map[room.ID]*room.Room) []room.ID {
	ids := make([]room.ID, 0, len(rooms))
	for id := range rooms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func checkCtx(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
