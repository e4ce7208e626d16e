package expireoption_test

import (
	"context"
	"fmt"
	"time"

	expireoption "github.com/common-repository/real-category-library-lite"
	"github.com/common-repository/real-category-library-lite/store/memstore"
)

func ExampleExpireOption() {
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &expireoption.FixedClock{Time: start}

	opt := expireoption.New(memstore.New(), "sync-token", false, time.Hour,
		expireoption.WithClock(clock))

	if err := opt.Set(ctx, "abc123"); err != nil {
		panic(err)
	}
	fmt.Println(opt.Get(ctx, "none"))

	clock.Time = start.Add(2 * time.Hour)
	fmt.Println(opt.Get(ctx, "none"))

	// Output:
	// abc123
	// none
}

func ExampleExpireOption_EnableTransientMigration() {
	ctx := context.Background()
	clock := &expireoption.FixedClock{Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}

	// the host still holds the value in its volatile transient cache
	mem := memstore.New()
	mem.SetTransient("sync-token", "abc123", false)

	opt := expireoption.New(mem, "sync-token", false, time.Hour,
		expireoption.WithClock(clock)).
		EnableTransientMigration(expireoption.MigratePerSite)

	// the first read re-homes the transient into the durable options store
	fmt.Println(opt.Get(ctx, "none"))

	_, found, _ := mem.ReadTransient(ctx, "sync-token", false)
	fmt.Println("transient left:", found)

	// Output:
	// abc123
	// transient left: false
}

func ExampleTypedOption() {
	ctx := context.Background()
	clock := &expireoption.FixedClock{Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}

	opt := expireoption.New(memstore.New(), "category-count", false, time.Hour,
		expireoption.WithClock(clock))
	counter := expireoption.NewTyped[int](opt, nil)

	if err := counter.Set(ctx, 42); err != nil {
		panic(err)
	}
	fmt.Println(counter.Get(ctx, -1))

	// Output:
	// 42
}
