package task

import (
	"errors"
	"fmt"
)

// Collection is the ordered set of logical tasks shown by a calendar.
// Insertion order is preserved; it is the order of overflow listings.
type Collection struct {
	items []Range
}

// NewCollection creates a collection from ranges. See Collection.Replace.
func NewCollection(ranges []Range) (*Collection, error) {
	c := &Collection{}
	err := c.Replace(ranges)
	return c, err
}

// Replace swaps the whole collection for ranges. Invalid ranges are left
// out and reported together; valid ones are kept.
func (c *Collection) Replace(ranges []Range) error {
	c.items = nil
	return c.Append(ranges...)
}

// Append adds ranges to the end of the collection. Invalid ranges are left
// out and reported together; valid ones are kept.
func (c *Collection) Append(ranges ...Range) error {
	var errs []error
	for _, r := range ranges {
		if err := c.admit(r); err != nil {
			errs = append(errs, fmt.Errorf("task %q: %w", r.ID, err))
			continue
		}
		c.items = append(c.items, r)
	}
	return errors.Join(errs...)
}

func (c *Collection) admit(r Range) error {
	if r.IsSegment() {
		return ErrNotLogical
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if c.Index(r.ID) >= 0 {
		return ErrDuplicateID
	}
	return nil
}

// Len returns the number of tasks.
func (c *Collection) Len() int {
	return len(c.items)
}

// All returns a copy of the tasks in insertion order.
func (c *Collection) All() []Range {
	out := make([]Range, len(c.items))
	copy(out, c.items)
	return out
}

// Index returns the position of the task with id, or -1.
func (c *Collection) Index(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns a copy of the task with id.
func (c *Collection) Get(id string) (Range, bool) {
	i := c.Index(id)
	if i < 0 {
		return Range{}, false
	}
	return c.items[i], true
}

// Remove deletes the task with id.
func (c *Collection) Remove(id string) error {
	i := c.Index(id)
	if i < 0 {
		return ErrTaskNotFound
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

// Reschedule moves the task with id to [start, end] in place.
func (c *Collection) Reschedule(id, start, end string) error {
	i := c.Index(id)
	if i < 0 {
		return ErrTaskNotFound
	}
	updated := c.items[i]
	updated.StartTime = start
	updated.EndTime = end
	if err := updated.Validate(); err != nil {
		return err
	}
	c.items[i] = updated
	return nil
}

// ContainingDate returns the logical tasks whose [StartTime, EndTime]
// contains the date key, in insertion order.
func (c *Collection) ContainingDate(key string) []Range {
	var out []Range
	for _, r := range c.items {
		if r.Contains(key) {
			out = append(out, r)
		}
	}
	return out
}
