package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/capitolwatch/capitolwatch-backend/internal/types"
)

func TestClampPage(t *testing.T) {
	cases := []struct {
		page, pageSize         int
		wantPage, wantPageSize int
	}{
		{0, 0, 1, 24},
		{-3, -1, 1, 24},
		{1, 24, 1, 24},
		{5, 50, 5, 50},
		{2, 100, 2, 100},
		{2, 101, 2, 100},
		{1, 100000, 1, 100},
	}
	for _, tc := range cases {
		gotPage, gotPageSize := ClampPage(tc.page, tc.pageSize)
		if gotPage != tc.wantPage || gotPageSize != tc.wantPageSize {
			t.Fatalf("ClampPage(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.pageSize, gotPage, gotPageSize, tc.wantPage, tc.wantPageSize)
		}
	}
}

func TestList_SecondPageOffsets(t *testing.T) {
	repo := &stubLegislatorRepo{count: 60}
	for i := 0; i < 60; i++ {
		repo.listItems = append(repo.listItems, &types.Legislator{BioguideID: fmt.Sprintf("A%06d", i)})
	}
	svc := NewLegislatorService(nil, testLogger(t), repo)

	page, err := svc.List(context.Background(), 2, 24)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.lastOffset != 24 || repo.lastLimit != 24 {
		t.Fatalf("expected offset=24 limit=24, got offset=%d limit=%d", repo.lastOffset, repo.lastLimit)
	}
	if len(page.Items) != 24 {
		t.Fatalf("expected 24 items, got %d", len(page.Items))
	}
	if page.Items[0].BioguideID != "A000024" {
		t.Fatalf("expected page to start at A000024, got %s", page.Items[0].BioguideID)
	}
	if page.TotalCount != 60 {
		t.Fatalf("expected totalCount 60, got %d", page.TotalCount)
	}
	if page.Page != 2 || page.PageSize != 24 {
		t.Fatalf("expected echo of page=2 pageSize=24, got page=%d pageSize=%d", page.Page, page.PageSize)
	}
}

func TestList_InvalidInputFallsBackToDefaults(t *testing.T) {
	repo := &stubLegislatorRepo{count: 5}
	for i := 0; i < 5; i++ {
		repo.listItems = append(repo.listItems, &types.Legislator{BioguideID: fmt.Sprintf("A%06d", i)})
	}
	svc := NewLegislatorService(nil, testLogger(t), repo)

	page, err := svc.List(context.Background(), -7, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Page != DefaultPage || page.PageSize != DefaultPageSize {
		t.Fatalf("expected defaults page=%d pageSize=%d, got page=%d pageSize=%d",
			DefaultPage, DefaultPageSize, page.Page, page.PageSize)
	}
	if repo.lastOffset != 0 {
		t.Fatalf("expected offset 0, got %d", repo.lastOffset)
	}
}

func TestList_PastEndReturnsEmptyItemsNotNull(t *testing.T) {
	repo := &stubLegislatorRepo{count: 3}
	for i := 0; i < 3; i++ {
		repo.listItems = append(repo.listItems, &types.Legislator{BioguideID: fmt.Sprintf("A%06d", i)})
	}
	svc := NewLegislatorService(nil, testLogger(t), repo)

	page, err := svc.List(context.Background(), 10, 24)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Items == nil {
		t.Fatalf("expected empty items slice, got nil")
	}
	if len(page.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(page.Items))
	}
	if page.TotalCount != 3 {
		t.Fatalf("totalCount must be independent of the page, got %d", page.TotalCount)
	}
}
