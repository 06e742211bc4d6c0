package utils

import "testing"

func TestPaginationNormalize(t *testing.T) {
	pq := &Pagination{Page: 0, Size: 0}
	pq.Normalize()
	if pq.GetPage() != 1 {
		t.Errorf("page floor: got %d", pq.GetPage())
	}
	if pq.GetSize() != defaultSize {
		t.Errorf("default size: got %d", pq.GetSize())
	}

	pq = &Pagination{Page: 3, Size: 500}
	pq.Normalize()
	if pq.GetSize() != defaultSize {
		t.Errorf("oversized request falls back to default, got %d", pq.GetSize())
	}
	if pq.GetOffset() != 2*defaultSize {
		t.Errorf("offset: got %d", pq.GetOffset())
	}
}

func TestGetHasMore(t *testing.T) {
	if !GetHasMore(1, 25, 10) {
		t.Error("expected more pages at page 1 of 25/10")
	}
	if GetHasMore(3, 25, 10) {
		t.Error("expected no more pages at page 3 of 25/10")
	}
}
