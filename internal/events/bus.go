package events

import "context"

type AuthorDeletedHandler func(ctx context.Context, ev AuthorDeleted) error
type BookDeletedHandler func(ctx context.Context, ev BookDeleted) error
type CustomerDeletedHandler func(ctx context.Context, ev CustomerDeleted) error

// Bus is a synchronous, in-process publisher with an explicit ordered
// handler list per event type. It is injected into the owning services
// rather than held as global state, so handler registration happens in one
// place (the container) and services can be tested with an empty bus.
//
// Publish runs handlers in registration order and stops at the first
// error; the caller is expected to be inside a transaction and to treat
// that error as an abort of the whole deletion. Handler registration
// happens once during wiring; the Bus is not safe for concurrent
// subscription after that.
type Bus struct {
	authorDeleted   []AuthorDeletedHandler
	bookDeleted     []BookDeletedHandler
	customerDeleted []CustomerDeletedHandler
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) OnAuthorDeleted(h AuthorDeletedHandler) {
	b.authorDeleted = append(b.authorDeleted, h)
}

func (b *Bus) OnBookDeleted(h BookDeletedHandler) {
	b.bookDeleted = append(b.bookDeleted, h)
}

func (b *Bus) OnCustomerDeleted(h CustomerDeletedHandler) {
	b.customerDeleted = append(b.customerDeleted, h)
}

func (b *Bus) PublishAuthorDeleted(ctx context.Context, ev AuthorDeleted) error {
	for _, h := range b.authorDeleted {
		if err := h(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bus) PublishBookDeleted(ctx context.Context, ev BookDeleted) error {
	for _, h := range b.bookDeleted {
		if err := h(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bus) PublishCustomerDeleted(ctx context.Context, ev CustomerDeleted) error {
	for _, h := range b.customerDeleted {
		if err := h(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}
