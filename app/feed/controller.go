package feed

import (
	"fmt"
	"sync"
)

// Controller owns the interactive feed state of one reader session. Every
// state transition synchronously recomputes the result through the Builder
// before returning, so a renderer never observes a state without its matching
// result. Transitions are serialized with a mutex; the builder underneath
// stays lock-free and shared.
type Controller struct {
	builder *Builder

	mu     sync.Mutex
	state  State
	result *Result
}

// View is the render-ready pair of state and its computed result
type View struct {
	State  State
	Result *Result
}

func NewController(builder *Builder) *Controller {
	return &Controller{
		builder: builder,
		state:   State{Sort: SortRecent, Page: 1},
	}
}

// Current returns the cached view, computing it on first access. A pure
// re-render without interaction never triggers a recompute.
func (c *Controller) Current() (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureResult(); err != nil {
		return View{}, err
	}
	return c.view(), nil
}

// ToggleTag selects the tag, or clears the selection when the tag is already
// selected. Either way the page resets to 1 and the result is recomputed.
func (c *Controller) ToggleTag(slug string) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.state
	if c.state.SelectedTag == slug {
		c.state.SelectedTag = ""
	} else {
		c.state.SelectedTag = slug
	}
	c.state.Page = 1

	if err := c.recompute(); err != nil {
		c.state = prev
		return View{}, err
	}
	return c.view(), nil
}

// SortBy switches the ranking mode and resets the page to 1. Re-selecting the
// active mode is a no-op: no page reset, no recompute.
func (c *Controller) SortBy(mode SortMode) (View, error) {
	if _, err := ParseSortMode(string(mode)); err != nil {
		return View{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if mode == c.state.Sort {
		if err := c.ensureResult(); err != nil {
			return View{}, err
		}
		return c.view(), nil
	}

	prev := c.state
	c.state.Sort = mode
	c.state.Page = 1

	if err := c.recompute(); err != nil {
		c.state = prev
		return View{}, err
	}
	return c.view(), nil
}

// GoToPage moves to page n within the current filter context. Out-of-range
// pages are rejected with ErrInvalidPage and prior state is kept; requesting
// the current page is a no-op.
func (c *Controller) GoToPage(n int) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureResult(); err != nil {
		return View{}, err
	}

	if n == c.state.Page {
		return c.view(), nil
	}
	if n < 1 || n > c.result.TotalPages() {
		return View{}, fmt.Errorf("%w: %d", ErrInvalidPage, n)
	}

	prev := c.state
	c.state.Page = n

	if err := c.recompute(); err != nil {
		c.state = prev
		return View{}, err
	}
	return c.view(), nil
}

func (c *Controller) ensureResult() error {
	if c.result != nil {
		return nil
	}
	return c.recompute()
}

func (c *Controller) recompute() error {
	result, err := c.builder.Run(Filter{SelectedTag: c.state.SelectedTag, Sort: c.state.Sort}, c.state.Page)
	if err != nil {
		return err
	}
	c.result = result
	return nil
}

func (c *Controller) view() View {
	return View{State: c.state, Result: c.result}
}
