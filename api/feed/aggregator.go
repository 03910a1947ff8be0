package feed

import (
	"context"
	"fmt"
	"time"

	"Litreview/api/metrics"
)

type FeedPage struct {
	Page
	ReviewedTickets map[uint]bool
}

// HasReviewed reports whether the viewer already reviewed the ticket.
func (f *FeedPage) HasReviewed(ticketID uint) bool {
	return f.ReviewedTickets[ticketID]
}

type Aggregator struct {
	Source   Source
	PageSize int
}

func NewAggregator(source Source, pageSize int) *Aggregator {
	return &Aggregator{Source: source, PageSize: pageSize}
}

func (a *Aggregator) pageSize() int {
	if a.PageSize < 1 {
		return DefaultPageSize
	}
	return a.PageSize
}

// Feed builds the viewer's home page: their own posts, posts of followed
// accounts and reviews replying to their tickets.
func (a *Aggregator) Feed(ctx context.Context, viewer uint, rawPage string) (*FeedPage, error) {
	start := time.Now()
	defer func() { metrics.ObserveFeed(string(ModeFeed), time.Since(start)) }()

	posts, err := a.collect(ctx, viewer, ModeFeed)
	if err != nil {
		return nil, err
	}

	ids, err := a.Source.ReviewedTicketIDs(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviewed tickets: %w", err)
	}
	reviewed := make(map[uint]bool, len(ids))
	for _, id := range ids {
		reviewed[id] = true
	}

	return &FeedPage{
		Page:            Paginate(posts, rawPage, a.pageSize()),
		ReviewedTickets: reviewed,
	}, nil
}

// Posts pages through everything the viewer authored.
func (a *Aggregator) Posts(ctx context.Context, viewer uint, rawPage string) (*Page, error) {
	start := time.Now()
	defer func() { metrics.ObserveFeed(string(ModePosts), time.Since(start)) }()

	posts, err := a.collect(ctx, viewer, ModePosts)
	if err != nil {
		return nil, err
	}
	page := Paginate(posts, rawPage, a.pageSize())
	return &page, nil
}

func (a *Aggregator) collect(ctx context.Context, viewer uint, mode Mode) ([]Post, error) {
	tickets, err := a.Source.Tickets(ctx, viewer, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}
	reviews, err := a.Source.Reviews(ctx, viewer, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	return Merge(tickets, reviews), nil
}
