package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/docstore"
	"github.com/ghuser/sharebox/pkg/logger"
	catalogdomain "github.com/ghuser/sharebox/services/catalog/domain"
	"github.com/ghuser/sharebox/services/catalog/domain/models"
)

var (
	alice = auth.Identity{ID: "user-alice", DisplayName: "Alice"}
	bob   = auth.Identity{ID: "user-bob", DisplayName: "Bob"}
)

func newCatalog(t *testing.T) (*CatalogService, *docstore.Memory) {
	t.Helper()
	store := docstore.NewMemory()
	return NewCatalogService(store, nil, nil, logger.NewDiscard()), store
}

func saleInput(price float64) CreateListingInput {
	return CreateListingInput{
		Type:        models.TypeSale,
		Title:       "Road bike",
		Description: "Lightly used",
		Category:    "sports",
		Condition:   models.ConditionGood,
		Price:       &price,
		Negotiable:  true,
	}
}

func donationInput() CreateListingInput {
	return CreateListingInput{
		Type:        models.TypeDonation,
		Title:       "Paperback stack",
		Description: "Assorted novels",
		Category:    "books",
		Condition:   models.ConditionFair,
	}
}

func TestCatalogCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("sale listing starts available with zero counters", func(t *testing.T) {
		svc, _ := newCatalog(t)
		listing, err := svc.Create(ctx, alice, saleInput(500))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if listing.ID == "" {
			t.Fatal("expected assigned id")
		}
		if listing.Status != models.StatusAvailable {
			t.Fatalf("status = %q, want available", listing.Status)
		}
		if listing.Views != 0 || listing.Likes != 0 {
			t.Fatalf("counters = %d/%d, want 0/0", listing.Views, listing.Likes)
		}
		if listing.OwnerID != alice.ID || listing.OwnerName != alice.DisplayName {
			t.Fatalf("owner = %s/%s, want alice", listing.OwnerID, listing.OwnerName)
		}
		if listing.CreatedAt.IsZero() || listing.UpdatedAt.IsZero() {
			t.Fatal("expected store-assigned timestamps")
		}
	})

	t.Run("sale without price fails validation", func(t *testing.T) {
		svc, _ := newCatalog(t)
		in := saleInput(500)
		in.Price = nil
		if _, err := svc.Create(ctx, alice, in); !errors.Is(err, catalogdomain.ErrInvalidListing) {
			t.Fatalf("error = %v, want ErrInvalidListing", err)
		}
	})

	t.Run("donation with price fails validation", func(t *testing.T) {
		svc, _ := newCatalog(t)
		in := donationInput()
		price := 10.0
		in.Price = &price
		if _, err := svc.Create(ctx, alice, in); !errors.Is(err, catalogdomain.ErrInvalidListing) {
			t.Fatalf("error = %v, want ErrInvalidListing", err)
		}
	})

	t.Run("empty title fails validation", func(t *testing.T) {
		svc, _ := newCatalog(t)
		in := donationInput()
		in.Title = ""
		if _, err := svc.Create(ctx, alice, in); !errors.Is(err, catalogdomain.ErrInvalidListing) {
			t.Fatalf("error = %v, want ErrInvalidListing", err)
		}
	})
}

func TestCatalogGet(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id returns not found", func(t *testing.T) {
		svc, _ := newCatalog(t)
		if _, err := svc.Get(ctx, "missing", alice, false); !errors.Is(err, catalogdomain.ErrListingNotFound) {
			t.Fatalf("error = %v, want ErrListingNotFound", err)
		}
	})

	t.Run("authenticated view bumps the counter", func(t *testing.T) {
		svc, _ := newCatalog(t)
		created, err := svc.Create(ctx, alice, donationInput())
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := svc.Get(ctx, created.ID, bob, true)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Views != 1 {
			t.Fatalf("views = %d, want 1", got.Views)
		}
	})

	t.Run("anonymous view leaves the counter alone", func(t *testing.T) {
		svc, _ := newCatalog(t)
		created, err := svc.Create(ctx, alice, donationInput())
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := svc.Get(ctx, created.ID, auth.Identity{}, true)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Views != 0 {
			t.Fatalf("views = %d, want 0", got.Views)
		}
	})
}

func TestCatalogFeed(t *testing.T) {
	ctx := context.Background()

	t.Run("pages the full open set exactly once, newest first", func(t *testing.T) {
		svc, store := newCatalog(t)
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		tick := 0
		store.SetClock(func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		})

		const total = 12
		for i := 0; i < total; i++ {
			if _, err := svc.Create(ctx, alice, donationInput()); err != nil {
				t.Fatalf("create %d: %v", i, err)
			}
		}

		var collected []*models.Listing
		cursor := ""
		for pages := 0; ; pages++ {
			if pages > total {
				t.Fatal("cursor loop did not terminate")
			}
			page, err := svc.Feed(ctx, FeedQuery{PageSize: 5, Cursor: cursor})
			if err != nil {
				t.Fatalf("feed: %v", err)
			}
			collected = append(collected, page.Listings...)
			if !page.HasMore {
				break
			}
			cursor = page.NextCursor
		}

		if len(collected) != total {
			t.Fatalf("collected %d listings, want %d", len(collected), total)
		}
		seen := make(map[string]struct{})
		for i, l := range collected {
			if _, dup := seen[l.ID]; dup {
				t.Fatalf("listing %s appeared twice", l.ID)
			}
			seen[l.ID] = struct{}{}
			if i > 0 && collected[i-1].CreatedAt.Before(l.CreatedAt) {
				t.Fatalf("feed not newest-first at position %d", i)
			}
		}
	})

	t.Run("excludes closed listings", func(t *testing.T) {
		svc, _ := newCatalog(t)
		open, err := svc.Create(ctx, alice, donationInput())
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		closed, err := svc.Create(ctx, alice, donationInput())
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := svc.SetStatus(ctx, closed.ID, models.StatusTaken); err != nil {
			t.Fatalf("set status: %v", err)
		}

		page, err := svc.Feed(ctx, FeedQuery{PageSize: 10})
		if err != nil {
			t.Fatalf("feed: %v", err)
		}
		if len(page.Listings) != 1 || page.Listings[0].ID != open.ID {
			t.Fatalf("feed = %d listings, want only the open one", len(page.Listings))
		}
	})

	t.Run("filters by category and type", func(t *testing.T) {
		svc, _ := newCatalog(t)
		if _, err := svc.Create(ctx, alice, donationInput()); err != nil {
			t.Fatalf("create: %v", err)
		}
		sale, err := svc.Create(ctx, alice, saleInput(500))
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		page, err := svc.Feed(ctx, FeedQuery{PageSize: 10, Category: "sports", Type: "sale"})
		if err != nil {
			t.Fatalf("feed: %v", err)
		}
		if len(page.Listings) != 1 || page.Listings[0].ID != sale.ID {
			t.Fatalf("filtered feed wrong: got %d listings", len(page.Listings))
		}
	})
}

func TestCatalogUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("owner edit applies and bumps updatedAt", func(t *testing.T) {
		svc, store := newCatalog(t)
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		tick := 0
		store.SetClock(func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		})

		created, err := svc.Create(ctx, alice, saleInput(500))
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		title := "Road bike (serviced)"
		price := 450.0
		updated, err := svc.Update(ctx, created.ID, alice, UpdateListingInput{Title: &title, Price: &price})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Title != title {
			t.Fatalf("title = %q, want %q", updated.Title, title)
		}
		if updated.Price == nil || *updated.Price != price {
			t.Fatalf("price = %v, want %v", updated.Price, price)
		}
		if !updated.UpdatedAt.After(created.UpdatedAt) {
			t.Fatal("expected updatedAt bump")
		}
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Fatal("createdAt must not change on edit")
		}
	})

	t.Run("non-owner edit is rejected", func(t *testing.T) {
		svc, _ := newCatalog(t)
		created, err := svc.Create(ctx, alice, donationInput())
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		title := "hijacked"
		if _, err := svc.Update(ctx, created.ID, bob, UpdateListingInput{Title: &title}); !errors.Is(err, catalogdomain.ErrNotOwner) {
			t.Fatalf("error = %v, want ErrNotOwner", err)
		}
	})

	t.Run("edit that breaks validation is rejected", func(t *testing.T) {
		svc, _ := newCatalog(t)
		created, err := svc.Create(ctx, alice, saleInput(500))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		bad := -5.0
		if _, err := svc.Update(ctx, created.ID, alice, UpdateListingInput{Price: &bad}); !errors.Is(err, catalogdomain.ErrInvalidListing) {
			t.Fatalf("error = %v, want ErrInvalidListing", err)
		}
	})
}

func TestCatalogSetStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)

	created, err := svc.Create(ctx, alice, saleInput(500))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("unknown status rejected", func(t *testing.T) {
		if err := svc.SetStatus(ctx, created.ID, models.Status("archived")); !errors.Is(err, catalogdomain.ErrInvalidListing) {
			t.Fatalf("error = %v, want ErrInvalidListing", err)
		}
	})

	t.Run("status writes through", func(t *testing.T) {
		if err := svc.SetStatus(ctx, created.ID, models.StatusSold); err != nil {
			t.Fatalf("set status: %v", err)
		}
		got, err := svc.Get(ctx, created.ID, auth.Identity{}, false)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Status != models.StatusSold {
			t.Fatalf("status = %q, want sold", got.Status)
		}
	})

	t.Run("unknown listing returns not found", func(t *testing.T) {
		if err := svc.SetStatus(ctx, "missing", models.StatusSold); !errors.Is(err, catalogdomain.ErrListingNotFound) {
			t.Fatalf("error = %v, want ErrListingNotFound", err)
		}
	})
}

func TestCatalogDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)

	created, err := svc.Create(ctx, alice, donationInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, created.ID, bob); !errors.Is(err, catalogdomain.ErrNotOwner) {
		t.Fatalf("error = %v, want ErrNotOwner", err)
	}
	if err := svc.Delete(ctx, created.ID, alice); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID, alice, false); !errors.Is(err, catalogdomain.ErrListingNotFound) {
		t.Fatalf("error = %v, want ErrListingNotFound after delete", err)
	}
}

func TestCatalogToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects deltas other than plus or minus one", func(t *testing.T) {
		svc, _ := newCatalog(t)
		created, _ := svc.Create(ctx, alice, donationInput())
		if _, err := svc.ToggleLike(ctx, created.ID, 2); !errors.Is(err, catalogdomain.ErrInvalidListing) {
			t.Fatalf("error = %v, want ErrInvalidListing", err)
		}
	})

	t.Run("floors at zero", func(t *testing.T) {
		svc, _ := newCatalog(t)
		created, _ := svc.Create(ctx, alice, donationInput())
		likes, err := svc.ToggleLike(ctx, created.ID, -1)
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if likes != 0 {
			t.Fatalf("likes = %d, want 0", likes)
		}
	})

	t.Run("concurrent increments never lose an update", func(t *testing.T) {
		svc, _ := newCatalog(t)
		created, _ := svc.Create(ctx, alice, donationInput())

		const n = 50
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				if _, err := svc.ToggleLike(ctx, created.ID, 1); err != nil {
					t.Errorf("toggle: %v", err)
				}
			}()
		}
		wg.Wait()

		got, err := svc.Get(ctx, created.ID, auth.Identity{}, false)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Likes != n {
			t.Fatalf("likes = %d, want %d", got.Likes, n)
		}
	})

	t.Run("mixed deltas sum and never go negative", func(t *testing.T) {
		svc, _ := newCatalog(t)
		created, _ := svc.Create(ctx, alice, donationInput())

		// Seed the counter high enough that no interleaving of the
		// concurrent phase can reach the zero floor.
		for i := 0; i < 10; i++ {
			if _, err := svc.ToggleLike(ctx, created.ID, 1); err != nil {
				t.Fatalf("seed toggle: %v", err)
			}
		}

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			delta := 1
			if i%2 == 0 {
				delta = -1
			}
			wg.Add(1)
			go func(d int) {
				defer wg.Done()
				likes, err := svc.ToggleLike(ctx, created.ID, d)
				if err != nil {
					t.Errorf("toggle: %v", err)
				}
				if likes < 0 {
					t.Errorf("observed negative like count %d", likes)
				}
			}(delta)
		}
		wg.Wait()

		got, err := svc.Get(ctx, created.ID, auth.Identity{}, false)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		// 10 seed + 10 increments - 10 decrements.
		if got.Likes != 10 {
			t.Fatalf("likes = %d, want 10", got.Likes)
		}
	})
}

func TestCatalogListByOwner(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)

	if _, err := svc.Create(ctx, alice, donationInput()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, alice, saleInput(100)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, bob, donationInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	mine, err := svc.ListByOwner(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("got %d listings, want 2", len(mine))
	}
	for _, l := range mine {
		if l.OwnerID != alice.ID {
			t.Fatalf("foreign listing %s in owner list", l.ID)
		}
	}
}
