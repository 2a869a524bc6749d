package system

import (
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/domain/rule"
)

// EventDispatcher fires rule handlers on state edges
type EventDispatcher struct {
	handlers []entity.EventHandler
}

// NewEventDispatcher creates a dispatcher with no scene-wide handlers
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{}
}

// AddHandler registers a scene-wide handler
func (d *EventDispatcher) AddHandler(r rule.Rule, c entity.Condition, fn func(*entity.Sprite)) {
	d.handlers = append(d.handlers, entity.EventHandler{Rule: r, Condition: c, Fn: fn})
}

// Len returns the number of scene-wide handlers
func (d *EventDispatcher) Len() int {
	return len(d.handlers)
}

// Clear drops every scene-wide handler
func (d *EventDispatcher) Clear() {
	d.handlers = nil
}

// Dispatch runs sprite-scoped handlers, then scene-wide ones, for each live sprite,
// and then snapshots its state for the next tick. Every matching handler fires.
func (d *EventDispatcher) Dispatch(sprites []*entity.Sprite) {
	for i := 0; i < len(sprites); i++ {
		s := sprites[i]
		if s.Destroyed() {
			continue
		}
		run(s, s.Handlers())
		run(s, d.handlers)
		s.PreviousState = s.State
	}
}

func run(s *entity.Sprite, handlers []entity.EventHandler) {
	for _, h := range handlers {
		if h.Fn != nil && h.Fires(s.PreviousState, s.State) {
			h.Fn(s)
		}
	}
}
