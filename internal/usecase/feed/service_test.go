package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studx-cloud/listdex/internal/domain/listing"
)

var feedBase = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

type fakeAdapter struct {
	typ     listing.SourceType
	records []listing.Record
	listErr error

	similar     []listing.Record
	similarErr  error
	gotCategory string
	gotCollege  string
	gotExclude  string
	gotOffset   int
	gotLimit    int
}

func (f *fakeAdapter) Type() listing.SourceType { return f.typ }

func (f *fakeAdapter) List(context.Context) ([]listing.Record, error) {
	return f.records, f.listErr
}

func (f *fakeAdapter) Similar(_ context.Context, category, college, excludeID string, offset, limit int) ([]listing.Record, error) {
	f.gotCategory = category
	f.gotCollege = college
	f.gotExclude = excludeID
	f.gotOffset = offset
	f.gotLimit = limit
	return f.similar, f.similarErr
}

func record(t *testing.T, typ listing.SourceType, id string, age time.Duration) listing.Record {
	t.Helper()
	rec, err := listing.New(typ, id, feedBase.Add(-age), listing.Attrs{Title: id, IsActive: true})
	if err != nil {
		t.Fatalf("listing.New(%s/%s): %v", typ, id, err)
	}
	return rec
}

func ids(records []listing.Record) []string {
	out := make([]string, len(records))
	for i := range records {
		out[i] = records[i].ID()
	}
	return out
}

func TestListMergesByRecency(t *testing.T) {
	svc := New([]Adapter{
		&fakeAdapter{typ: listing.TypeProduct, records: []listing.Record{
			record(t, listing.TypeProduct, "p-old", 72*time.Hour),
			record(t, listing.TypeProduct, "p-new", time.Hour),
		}},
		&fakeAdapter{typ: listing.TypeNote, records: []listing.Record{
			record(t, listing.TypeNote, "n-mid", 24*time.Hour),
		}},
		&fakeAdapter{typ: listing.TypeRoom, records: []listing.Record{
			record(t, listing.TypeRoom, "r-newest", 0),
		}},
	})

	page, err := svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []string{"r-newest", "p-new", "n-mid", "p-old"}
	got := ids(page.Listings)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if page.HasMore {
		t.Error("HasMore = true, want false on last page")
	}
}

func TestListPaginationAndHasMore(t *testing.T) {
	var records []listing.Record
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		records = append(records, record(t, listing.TypeProduct, id, time.Duration(len(records))*time.Hour))
	}
	svc := New([]Adapter{&fakeAdapter{typ: listing.TypeProduct, records: records}})

	first, err := svc.List(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(first.Listings) != 2 || !first.HasMore {
		t.Errorf("page 1: %v HasMore=%v, want 2 items and more", ids(first.Listings), first.HasMore)
	}

	last, err := svc.List(context.Background(), 3, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(last.Listings) != 1 || last.HasMore {
		t.Errorf("page 3: %v HasMore=%v, want 1 item and no more", ids(last.Listings), last.HasMore)
	}

	past, err := svc.List(context.Background(), 9, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(past.Listings) != 0 || past.HasMore {
		t.Errorf("page 9: %v HasMore=%v, want empty", ids(past.Listings), past.HasMore)
	}
}

func TestListDegradesOnAdapterFailure(t *testing.T) {
	svc := New([]Adapter{
		&fakeAdapter{typ: listing.TypeProduct, listErr: errors.New("timeout")},
		&fakeAdapter{typ: listing.TypeNote, records: []listing.Record{
			record(t, listing.TypeNote, "n1", time.Hour),
		}},
	})

	page, err := svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("List must not fail on a single table: %v", err)
	}
	if len(page.Listings) != 1 || page.Listings[0].ID() != "n1" {
		t.Errorf("listings = %v, want surviving note", ids(page.Listings))
	}
}

func TestSimilarRoutesToMatchingAdapter(t *testing.T) {
	products := &fakeAdapter{typ: listing.TypeProduct, similar: []listing.Record{
		record(t, listing.TypeProduct, "p2", time.Hour),
	}}
	rooms := &fakeAdapter{typ: listing.TypeRoom}
	svc := New([]Adapter{products, rooms})

	records, err := svc.Similar(context.Background(), listing.TypeProduct, "books", "", "p1", 1, 4)
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}
	if len(records) != 1 || records[0].ID() != "p2" {
		t.Errorf("records = %v, want [p2]", ids(records))
	}
	if products.gotCategory != "books" || products.gotExclude != "p1" {
		t.Errorf("adapter got category=%q exclude=%q", products.gotCategory, products.gotExclude)
	}
	if products.gotOffset != 0 || products.gotLimit != 4 {
		t.Errorf("adapter got offset=%d limit=%d", products.gotOffset, products.gotLimit)
	}
}

func TestSimilarUnknownTypeYieldsEmpty(t *testing.T) {
	svc := New([]Adapter{&fakeAdapter{typ: listing.TypeProduct}})

	records, err := svc.Similar(context.Background(), listing.TypeRental, "", "", "", 1, 4)
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("records = %v, want empty non-nil slice", records)
	}
}

func TestSimilarDegradesOnFailure(t *testing.T) {
	svc := New([]Adapter{
		&fakeAdapter{typ: listing.TypeRoom, similarErr: errors.New("bad connection")},
	})

	records, err := svc.Similar(context.Background(), listing.TypeRoom, "", "City College", "r1", 1, 4)
	if err != nil {
		t.Fatalf("Similar must degrade, not fail: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %v, want empty", ids(records))
	}
}

func TestWithPagination(t *testing.T) {
	svc := New(nil).WithPagination(6, 24)

	offset, limit := svc.clampPaging(0, 0)
	if offset != 0 || limit != 6 {
		t.Errorf("defaults: offset=%d limit=%d, want 0/6", offset, limit)
	}
	_, limit = svc.clampPaging(1, 100)
	if limit != 24 {
		t.Errorf("clamp: limit=%d, want 24", limit)
	}
}
