package script

import (
	"fmt"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/domain/rule"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// Event is a compiled script waiting on a rule edge
type Event struct {
	Rule    rule.Rule
	When    entity.Condition
	Program *Program
}

// Handler returns the event as a sprite-scoped handler
func (e Event) Handler() entity.EventHandler {
	return entity.EventHandler{Rule: e.Rule, Condition: e.When, Fn: e.Program.Handler()}
}

// CompileKind compiles the event scripts of one sprite kind. Programs are
// named "<kind name>#<index>" in error messages.
func CompileKind(spec *config.KindSpec, host Host, store *Store) ([]Event, error) {
	events := make([]Event, 0, len(spec.Events))
	for i, ev := range spec.Events {
		name := fmt.Sprintf("%s#%d", spec.Name, i)

		r, err := config.ParseRule(ev.Rule)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", name, err)
		}
		when, err := entity.ParseCondition(ev.When)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", name, err)
		}
		prog, err := Compile(name, ev.Script, host, store)
		if err != nil {
			return nil, err
		}
		events = append(events, Event{Rule: r, When: when, Program: prog})
	}
	return events, nil
}
