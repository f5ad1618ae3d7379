package spatial

import (
	"errors"
	"sort"
	"testing"

	"github.com/Faultbox/scenekit/pkg/math"
)

func TestAddDuplicateID(t *testing.T) {
	x := NewIndex[string]()
	if _, err := x.Add("crate", NodeSpec[string]{}); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	_, err := x.Add("crate", NodeSpec[string]{})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("second Add: got %v, want ErrDuplicateID", err)
	}
	if x.Len() != 1 {
		t.Errorf("Len after duplicate Add: got %d, want 1", x.Len())
	}
}

func TestGetUnknownID(t *testing.T) {
	x := NewIndex[string]()
	if _, ok := x.Get("nope"); ok {
		t.Error("Get on unknown id should report not found")
	}
	if x.Remove("nope") {
		t.Error("Remove on unknown id should report false")
	}
	if _, ok := x.Update("nope", NodeUpdate[string]{}); ok {
		t.Error("Update on unknown id should report not found")
	}
}

func TestEmptySceneQueries(t *testing.T) {
	x := NewIndex[string]()
	if _, ok := x.CastRay(math.Vec3{Z: 5}, math.Vec3{Z: -1}); ok {
		t.Error("CastRay on empty index should miss")
	}
	if got := x.QueryBounds(math.UnitBox3()); len(got) != 0 {
		t.Errorf("QueryBounds on empty index: got %d nodes", len(got))
	}
	if _, ok := x.RootBounds(); ok {
		t.Error("RootBounds on empty index should report nothing")
	}
}

func TestCastRaySingleNode(t *testing.T) {
	x := NewIndex[string]()
	n, err := x.Add("crate", NodeSpec[string]{})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	hit, ok := x.CastRay(math.Vec3{Z: 5}, math.Vec3{Z: -1})
	if !ok {
		t.Fatal("ray down -Z should hit the unit node at the origin")
	}
	if hit.Node != n {
		t.Errorf("hit node: got %q, want crate", hit.Node.ID())
	}
	if abs(hit.Distance-4.5) > 0.0001 {
		t.Errorf("hit distance: got %v, want 4.5", hit.Distance)
	}
	want := math.Vec3{Z: 0.5}
	if hit.Point.Distance(want) > 0.0001 {
		t.Errorf("hit point: got %v, want %v", hit.Point, want)
	}
}

func TestCastRayNormalizesDirection(t *testing.T) {
	x := NewIndex[string]()
	x.mustAdd(t, "crate", NodeSpec[string]{})

	// Same ray with an unnormalized direction: distance stays in world units.
	hit, ok := x.CastRay(math.Vec3{Z: 5}, math.Vec3{Z: -10})
	if !ok {
		t.Fatal("ray should hit")
	}
	if abs(hit.Distance-4.5) > 0.0001 {
		t.Errorf("hit distance with unnormalized direction: got %v, want 4.5", hit.Distance)
	}
}

func TestCastRayMiss(t *testing.T) {
	x := NewIndex[string]()
	x.mustAdd(t, "crate", NodeSpec[string]{})

	if _, ok := x.CastRay(math.Vec3{X: 10, Y: 10, Z: 10}, math.Vec3{X: 1}); ok {
		t.Error("ray along +X from (10,10,10) should miss")
	}
}

func TestCastRayClosestWins(t *testing.T) {
	x := NewIndex[string]()
	x.mustAdd(t, "near", NodeSpec[string]{Position: math.Vec3{Z: 2}})
	x.mustAdd(t, "far", NodeSpec[string]{Position: math.Vec3{Z: -2}})

	hit, ok := x.CastRay(math.Vec3{Z: 10}, math.Vec3{Z: -1})
	if !ok {
		t.Fatal("ray through both nodes should hit")
	}
	if hit.Node.ID() != "near" {
		t.Errorf("closest hit: got %q, want near", hit.Node.ID())
	}
}

func TestCastRayThroughOverlappingSplit(t *testing.T) {
	// Several nodes spread on X so the median split separates them, with
	// two overlapping nodes straddling the split: both must stay
	// discoverable and the nearer must win the cast.
	x := NewIndex[string]()
	x.mustAdd(t, "a", NodeSpec[string]{Position: math.Vec3{X: -4}})
	x.mustAdd(t, "b", NodeSpec[string]{Position: math.Vec3{X: -0.3, Z: 1}})
	x.mustAdd(t, "c", NodeSpec[string]{Position: math.Vec3{X: 0.3, Z: -1}})
	x.mustAdd(t, "d", NodeSpec[string]{Position: math.Vec3{X: 4}})

	// b and c overlap around x=0; a ray down -Z at x=0 passes through both.
	hit, ok := x.CastRay(math.Vec3{Z: 10}, math.Vec3{Z: -1})
	if !ok {
		t.Fatal("ray through the overlap should hit")
	}
	if hit.Node.ID() != "b" {
		t.Errorf("nearer overlapping node should win: got %q, want b", hit.Node.ID())
	}

	probe := math.NewBox3(math.Vec3{X: -0.5, Y: -0.5, Z: -2}, math.Vec3{X: 0.5, Y: 0.5, Z: 2})
	got := idSet(x.QueryBounds(probe))
	if len(got) != 2 || !got["b"] || !got["c"] {
		t.Errorf("overlap query: got %v, want {b c}", got)
	}
}

func TestQueryBoundsCompleteness(t *testing.T) {
	x := NewIndex[string]()
	positions := []math.Vec3{
		{X: -3, Y: 2, Z: 1}, {X: 4, Y: -1, Z: 0}, {X: 0, Y: 0, Z: 0},
		{X: 1, Y: 5, Z: -2}, {X: -2, Y: -2, Z: 3},
	}
	for i, p := range positions {
		x.mustAdd(t, string(rune('a'+i)), NodeSpec[string]{Position: p})
	}

	big := math.NewBox3(math.Vec3{X: -100, Y: -100, Z: -100}, math.Vec3{X: 100, Y: 100, Z: 100})
	got := x.QueryBounds(big)
	if len(got) != x.Len() {
		t.Fatalf("query covering everything: got %d nodes, want %d", len(got), x.Len())
	}
	gotIDs := idSet(got)
	for _, n := range x.All() {
		if !gotIDs[n.ID()] {
			t.Errorf("node %q missing from covering query", n.ID())
		}
	}
}

func TestQueryBoundsNoDuplicates(t *testing.T) {
	x := NewIndex[string]()
	x.mustAdd(t, "a", NodeSpec[string]{})
	x.mustAdd(t, "b", NodeSpec[string]{Position: math.Vec3{X: 0.25}})
	x.mustAdd(t, "c", NodeSpec[string]{Position: math.Vec3{X: -0.25}})

	got := x.QueryBounds(math.UnitBox3())
	seen := map[string]int{}
	for _, n := range got {
		seen[n.ID()]++
	}
	for id, count := range seen {
		if count > 1 {
			t.Errorf("node %q returned %d times", id, count)
		}
	}
}

func TestQueryBoundsPartial(t *testing.T) {
	x := NewIndex[string]()
	x.mustAdd(t, "inside", NodeSpec[string]{})
	x.mustAdd(t, "outside", NodeSpec[string]{Position: math.Vec3{X: 50}})

	got := idSet(x.QueryBounds(math.NewBox3(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})))
	if !got["inside"] || got["outside"] {
		t.Errorf("partial query: got %v, want {inside}", got)
	}
}

func TestRemoveCorrectness(t *testing.T) {
	x := NewIndex[string]()
	x.mustAdd(t, "a", NodeSpec[string]{})
	x.mustAdd(t, "b", NodeSpec[string]{Position: math.Vec3{X: 3}})

	if !x.Remove("a") {
		t.Fatal("Remove of an existing node should report true")
	}
	if _, ok := x.Get("a"); ok {
		t.Error("Get after Remove should report not found")
	}
	if _, ok := x.CastRay(math.Vec3{Z: 5}, math.Vec3{Z: -1}); ok {
		t.Error("removed node should no longer be hit by CastRay")
	}
	big := math.NewBox3(math.Vec3{X: -100, Y: -100, Z: -100}, math.Vec3{X: 100, Y: 100, Z: 100})
	if got := idSet(x.QueryBounds(big)); got["a"] {
		t.Error("removed node should no longer appear in QueryBounds")
	}
}

func TestUpdatePartial(t *testing.T) {
	x := NewIndex[string]()
	x.mustAdd(t, "crate", NodeSpec[string]{Payload: "wood"})

	n, ok := x.Update("crate", NodeUpdate[string]{Position: vecPtr(math.Vec3{X: 7})})
	if !ok {
		t.Fatal("Update of existing node should succeed")
	}
	if n.Position() != (math.Vec3{X: 7}) {
		t.Errorf("position after update: got %v", n.Position())
	}
	if n.Scale() != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("scale should be untouched by a position-only update: got %v", n.Scale())
	}
	if n.Payload != "wood" {
		t.Errorf("payload should be untouched: got %q", n.Payload)
	}

	hit, ok := x.CastRay(math.Vec3{X: 7, Z: 5}, math.Vec3{Z: -1})
	if !ok || hit.Node != n {
		t.Error("updated node should be found at its new position")
	}
}

func TestUpdatePayloadOnly(t *testing.T) {
	x := NewIndex[string]()
	x.mustAdd(t, "crate", NodeSpec[string]{Payload: "wood"})
	x.Rebuild()

	n, ok := x.Update("crate", NodeUpdate[string]{Payload: strPtr("steel")})
	if !ok {
		t.Fatal("Update should succeed")
	}
	if n.Payload != "steel" {
		t.Errorf("payload: got %q, want steel", n.Payload)
	}
	if x.stale {
		t.Error("payload-only update should not mark the index stale")
	}
}

func TestRebuildIdempotent(t *testing.T) {
	x := NewIndex[string]()
	x.mustAdd(t, "a", NodeSpec[string]{Position: math.Vec3{X: -2}})
	x.mustAdd(t, "b", NodeSpec[string]{Position: math.Vec3{X: 2}})
	x.mustAdd(t, "c", NodeSpec[string]{Position: math.Vec3{Y: 3}})

	rays := []struct{ origin, dir math.Vec3 }{
		{math.Vec3{X: -2, Z: 5}, math.Vec3{Z: -1}},
		{math.Vec3{X: 2, Z: 5}, math.Vec3{Z: -1}},
		{math.Vec3{Y: 3, Z: 5}, math.Vec3{Z: -1}},
		{math.Vec3{X: 10, Y: 10, Z: 10}, math.Vec3{X: 1}},
	}
	probe := math.NewBox3(math.Vec3{X: -3, Y: -1, Z: -1}, math.Vec3{X: 3, Y: 1, Z: 1})

	x.Rebuild()
	first := queryBattery(x, rays, probe)
	x.Rebuild()
	second := queryBattery(x, rays, probe)

	if len(first) != len(second) {
		t.Fatalf("battery size changed across rebuilds: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("battery entry %d differs across rebuilds: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestRebuildEmptyClearsHierarchy(t *testing.T) {
	x := NewIndex[string]()
	x.mustAdd(t, "a", NodeSpec[string]{})
	x.Rebuild()
	x.Remove("a")
	x.Rebuild()

	if _, ok := x.RootBounds(); ok {
		t.Error("RootBounds after removing the last node should report nothing")
	}
	if x.stale {
		t.Error("Rebuild should clear the stale flag even with zero nodes")
	}
}

func TestRootBounds(t *testing.T) {
	x := NewIndex[string]()
	x.mustAdd(t, "a", NodeSpec[string]{Position: math.Vec3{X: -5}})
	x.mustAdd(t, "b", NodeSpec[string]{Position: math.Vec3{X: 5}})

	rb, ok := x.RootBounds()
	if !ok {
		t.Fatal("RootBounds should exist with two nodes")
	}
	want := math.NewBox3(math.Vec3{X: -5.5, Y: -0.5, Z: -0.5}, math.Vec3{X: 5.5, Y: 0.5, Z: 0.5})
	if rb != want {
		t.Errorf("root bounds: got %v, want %v", rb, want)
	}
}

func TestClear(t *testing.T) {
	x := NewIndex[string]()
	x.mustAdd(t, "a", NodeSpec[string]{})
	x.mustAdd(t, "b", NodeSpec[string]{})
	x.Clear()

	if x.Len() != 0 {
		t.Errorf("Len after Clear: got %d", x.Len())
	}
	if x.stale {
		t.Error("Clear should leave nothing pending")
	}
	if _, ok := x.CastRay(math.Vec3{Z: 5}, math.Vec3{Z: -1}); ok {
		t.Error("CastRay after Clear should miss")
	}
}

func TestInternalBoxesAreChildUnions(t *testing.T) {
	x := NewIndex[string]()
	for i, p := range []math.Vec3{{X: -3}, {X: -1}, {X: 1}, {X: 3}, {Y: 2}, {Z: -2}} {
		x.mustAdd(t, string(rune('a'+i)), NodeSpec[string]{Position: p})
	}
	x.Rebuild()

	for i := range x.arena {
		nd := &x.arena[i]
		if nd.node != nil {
			continue
		}
		want := x.arena[nd.left].bounds.Union(x.arena[nd.right].bounds)
		if nd.bounds != want {
			t.Errorf("internal node %d box is not the union of its children", i)
		}
	}
}

// mustAdd is a test helper that fails the test on an Add error.
func (x *Index[T]) mustAdd(t *testing.T, id string, spec NodeSpec[T]) *Node[T] {
	t.Helper()
	n, err := x.Add(id, spec)
	if err != nil {
		t.Fatalf("Add(%q): %v", id, err)
	}
	return n
}

func idSet[T any](nodes []*Node[T]) map[string]bool {
	out := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		out[n.ID()] = true
	}
	return out
}

// queryBattery runs a fixed set of rays and a region query and flattens
// the answers into a comparable string slice.
func queryBattery(x *Index[string], rays []struct{ origin, dir math.Vec3 }, probe math.Box3) []string {
	var out []string
	for _, r := range rays {
		if hit, ok := x.CastRay(r.origin, r.dir); ok {
			out = append(out, hit.Node.ID())
		} else {
			out = append(out, "-")
		}
	}
	ids := make([]string, 0)
	for _, n := range x.QueryBounds(probe) {
		ids = append(ids, n.ID())
	}
	sort.Strings(ids)
	return append(out, ids...)
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
