package search

import (
	"testing"
	"time"

	"github.com/studx-cloud/listdex/internal/domain/listing"
	"github.com/studx-cloud/listdex/internal/domain/search/result"
	"github.com/studx-cloud/listdex/internal/domain/sponsorship"
)

var rankBase = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func record(t *testing.T, typ listing.SourceType, id string, age time.Duration) listing.Record {
	t.Helper()
	rec, err := listing.New(typ, id, rankBase.Add(-age), listing.Attrs{Title: id, IsActive: true})
	if err != nil {
		t.Fatalf("listing.New(%s/%s): %v", typ, id, err)
	}
	return rec
}

func assignment(t *testing.T, typ listing.SourceType, id string, slot int, createdAt time.Time) sponsorship.Assignment {
	t.Helper()
	a, err := sponsorship.New(typ, id, slot, createdAt)
	if err != nil {
		t.Fatalf("sponsorship.New(%s/%s): %v", typ, id, err)
	}
	return a
}

func keysOf(page *result.Page) []listing.Key {
	keys := make([]listing.Key, len(page.Results))
	for i := range page.Results {
		keys[i] = page.Results[i].Record().Key()
	}
	return keys
}

func TestRankSponsoredAlwaysFirst(t *testing.T) {
	// The regular product is newer than every sponsored item and must
	// still rank below all of them.
	candidates := []listing.Record{
		record(t, listing.TypeProduct, "fresh", 0),
		record(t, listing.TypeProduct, "spons-2", 48*time.Hour),
		record(t, listing.TypeNote, "spons-1", 72*time.Hour),
	}
	assignments := []sponsorship.Assignment{
		assignment(t, listing.TypeProduct, "spons-2", 2, rankBase),
		assignment(t, listing.TypeNote, "spons-1", 1, rankBase),
	}

	page := rank(classify(candidates, assignments), 0, 20)

	want := []listing.Key{
		{Type: listing.TypeNote, ID: "spons-1"},
		{Type: listing.TypeProduct, ID: "spons-2"},
		{Type: listing.TypeProduct, ID: "fresh"},
	}
	got := keysOf(page)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if page.Counts != (result.Counts{Sponsored: 2, Regular: 1, Total: 3}) {
		t.Errorf("counts = %+v", page.Counts)
	}
}

func TestRankSlotCollisionBreaksOnAssignmentRecency(t *testing.T) {
	older := rankBase.Add(-time.Hour)
	candidates := []listing.Record{
		record(t, listing.TypeProduct, "a", time.Hour),
		record(t, listing.TypeProduct, "b", time.Hour),
	}
	assignments := []sponsorship.Assignment{
		assignment(t, listing.TypeProduct, "a", 1, older),
		assignment(t, listing.TypeProduct, "b", 1, rankBase),
	}

	page := rank(classify(candidates, assignments), 0, 20)

	got := keysOf(page)
	if got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("order = %v, want newer assignment first", got)
	}
}

func TestRankRegularByRecency(t *testing.T) {
	candidates := []listing.Record{
		record(t, listing.TypeNote, "old", 72*time.Hour),
		record(t, listing.TypeRoom, "new", time.Hour),
		record(t, listing.TypeProduct, "mid", 24*time.Hour),
	}

	page := rank(classify(candidates, nil), 0, 20)

	want := []string{"new", "mid", "old"}
	got := keysOf(page)
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("order = %v, want ids %v", got, want)
		}
	}
}

func TestClassifyInertAssignmentsIgnored(t *testing.T) {
	candidates := []listing.Record{
		record(t, listing.TypeProduct, "p1", time.Hour),
	}
	assignments := []sponsorship.Assignment{
		// Same id, wrong type: the compound key must not match.
		assignment(t, listing.TypeNote, "p1", 1, rankBase),
		// Item not in the candidate set at all.
		assignment(t, listing.TypeProduct, "ghost", 2, rankBase),
	}

	page := rank(classify(candidates, assignments), 0, 20)

	if page.Counts.Sponsored != 0 || page.Counts.Regular != 1 {
		t.Errorf("counts = %+v, want no sponsored", page.Counts)
	}
	if page.Results[0].IsSponsored() {
		t.Error("p1 must not be sponsored by a note assignment")
	}
}

func TestClassifyDuplicateAssignmentLowerSlotWins(t *testing.T) {
	candidates := []listing.Record{
		record(t, listing.TypeProduct, "p1", time.Hour),
	}
	assignments := []sponsorship.Assignment{
		assignment(t, listing.TypeProduct, "p1", 3, rankBase),
		assignment(t, listing.TypeProduct, "p1", 1, rankBase.Add(-time.Hour)),
	}

	page := rank(classify(candidates, assignments), 0, 20)

	if !page.Results[0].IsSponsored() || page.Results[0].Slot() != 1 {
		t.Errorf("slot = %d, want 1", page.Results[0].Slot())
	}
}

func TestRankWindowingAfterGlobalOrdering(t *testing.T) {
	candidates := []listing.Record{
		record(t, listing.TypeProduct, "s1", 10*time.Hour),
		record(t, listing.TypeProduct, "s2", 10*time.Hour),
		record(t, listing.TypeProduct, "r1", time.Hour),
		record(t, listing.TypeProduct, "r2", 2*time.Hour),
	}
	assignments := []sponsorship.Assignment{
		assignment(t, listing.TypeProduct, "s1", 1, rankBase),
		assignment(t, listing.TypeProduct, "s2", 2, rankBase),
	}
	classified := classify(candidates, assignments)

	// Page 1 of 2 holds only sponsored items.
	first := rank(classified, 0, 2)
	got := keysOf(first)
	if got[0].ID != "s1" || got[1].ID != "s2" {
		t.Errorf("page 1 = %v, want [s1 s2]", got)
	}
	if first.Counts.Total != 4 {
		t.Errorf("counts.Total = %d, want full set size 4", first.Counts.Total)
	}

	// Page 2 continues into the regular partition.
	second := rank(classified, 2, 2)
	got = keysOf(second)
	if got[0].ID != "r1" || got[1].ID != "r2" {
		t.Errorf("page 2 = %v, want [r1 r2]", got)
	}

	// Past the end.
	third := rank(classified, 4, 2)
	if len(third.Results) != 0 {
		t.Errorf("page 3 = %v, want empty", keysOf(third))
	}
	if third.Counts.Total != 4 {
		t.Errorf("counts survive empty window: %+v", third.Counts)
	}
}

func TestRankFullPipelineOrderingAndPaging(t *testing.T) {
	// Two sponsored items (slot order) ahead of three newer regulars,
	// with an assignment for an absent item staying inert throughout.
	candidates := []listing.Record{
		record(t, listing.TypeProduct, "reg-new", time.Hour),
		record(t, listing.TypeNote, "reg-mid", 2*time.Hour),
		record(t, listing.TypeRoom, "reg-old", 3*time.Hour),
		record(t, listing.TypeProduct, "spons-b", 200*time.Hour),
		record(t, listing.TypeNote, "spons-a", 100*time.Hour),
	}
	assignments := []sponsorship.Assignment{
		assignment(t, listing.TypeProduct, "spons-b", 2, rankBase),
		assignment(t, listing.TypeNote, "spons-a", 1, rankBase),
		assignment(t, listing.TypeProduct, "ghost", 3, rankBase),
	}
	classified := classify(candidates, assignments)

	first := rank(classified, 0, 3)
	wantFirst := []string{"spons-a", "spons-b", "reg-new"}
	for i, want := range wantFirst {
		if got := first.Results[i].Record().ID(); got != want {
			t.Fatalf("page 1[%d] = %q, want %q (full: %v)", i, got, want, keysOf(first))
		}
	}
	if first.Counts != (result.Counts{Sponsored: 2, Regular: 3, Total: 5}) {
		t.Errorf("counts = %+v, want {2 3 5}", first.Counts)
	}

	second := rank(classified, 3, 3)
	wantSecond := []string{"reg-mid", "reg-old"}
	if len(second.Results) != 2 {
		t.Fatalf("page 2 = %v, want 2 remaining regulars", keysOf(second))
	}
	for i, want := range wantSecond {
		if got := second.Results[i].Record().ID(); got != want {
			t.Errorf("page 2[%d] = %q, want %q", i, got, want)
		}
	}
}

func TestRecordGettersOnReturnedValue(t *testing.T) {
	// Getters must be callable on a Record returned by value, not only
	// on an addressable variable.
	res := result.Regular(record(t, listing.TypeProduct, "p1", time.Hour))

	if res.Record().Key() != (listing.Key{Type: listing.TypeProduct, ID: "p1"}) {
		t.Errorf("Key() = %+v", res.Record().Key())
	}
	if res.Record().CreatedAt().IsZero() {
		t.Error("CreatedAt() must carry through the value copy")
	}
}

func TestRankIsDeterministic(t *testing.T) {
	// Identical timestamps everywhere; only the (type, id) tiebreak
	// orders the set, so every run must agree.
	candidates := []listing.Record{
		record(t, listing.TypeRoom, "x", time.Hour),
		record(t, listing.TypeNote, "x", time.Hour),
		record(t, listing.TypeProduct, "y", time.Hour),
		record(t, listing.TypeProduct, "x", time.Hour),
	}

	baseline := keysOf(rank(classify(candidates, nil), 0, 20))
	for i := 0; i < 10; i++ {
		got := keysOf(rank(classify(candidates, nil), 0, 20))
		for j := range baseline {
			if got[j] != baseline[j] {
				t.Fatalf("run %d order = %v, baseline %v", i, got, baseline)
			}
		}
	}
}
