// Package events fans order-lifecycle events out to interested subscribers.
package events

import (
	"sync"

	"food-order-api/models"
)

type Topic string

const (
	TopicPendingOrders Topic = "pendingOrders"
	TopicCookedOrders  Topic = "cookedOrders"
	TopicOrderUpdates  Topic = "orderUpdates"
)

// Filter decides whether a subscriber receives a published order. A nil
// filter admits everything on the topic.
type Filter func(order *models.Order) bool

// Subscription is one listener on a topic. Events arrive on C; a slow
// subscriber whose buffer is full misses events rather than blocking the
// publisher.
type Subscription struct {
	Topic  Topic
	filter Filter
	C      chan *models.Order
}

type Hub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

func (h *Hub) Subscribe(topic Topic, filter Filter) *Subscription {
	sub := &Subscription{
		Topic:  topic,
		filter: filter,
		C:      make(chan *models.Order, 16),
	}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.C)
	}
	h.mu.Unlock()
}

// Publish delivers the order to every subscriber of the topic whose filter
// admits it. Never blocks.
func (h *Hub) Publish(topic Topic, order *models.Order) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		if sub.Topic != topic {
			continue
		}
		if sub.filter != nil && !sub.filter(order) {
			continue
		}
		select {
		case sub.C <- order:
		default:
		}
	}
}

// PendingOrdersFilter admits new pending orders of restaurants the owner
// owns. The published order must carry its Restaurant.
func PendingOrdersFilter(ownerID uint) Filter {
	return func(order *models.Order) bool {
		return order.Restaurant.OwnerID == ownerID
	}
}

// OrderUpdatesFilter admits updates of the watched order, and only for its
// driver, customer, or restaurant owner.
func OrderUpdatesFilter(user *models.User, watchedID uint) Filter {
	return func(order *models.Order) bool {
		if order.ID != watchedID {
			return false
		}
		if order.CustomerID == user.ID {
			return true
		}
		if order.DriverID != nil && *order.DriverID == user.ID {
			return true
		}
		return order.Restaurant.OwnerID == user.ID
	}
}
