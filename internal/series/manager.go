package series

import (
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	flowerrors "taskflow/internal/errors"
	"taskflow/internal/task"
)

// Manager owns the invariant linking a template to its generated instances:
// after every operation the template's generated-ID list equals the set of
// its instances in the store. Validation failures abort before any write.
type Manager struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewManager creates a Manager over the given store.
func NewManager(store Store, log zerolog.Logger) *Manager {
	return &Manager{
		store: store,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Info summarizes a series against the store's current contents. Instances
// the user deleted independently are simply absent from the counts.
type Info struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Remaining int `json:"remaining"`
}

// Create validates the template, expands its rule, and persists template plus
// instances as one atomic write. The template's due date is the series start.
func (m *Manager) Create(template *task.Task) (*task.Task, error) {
	if err := m.validateTemplate(template); err != nil {
		return nil, err
	}

	all, err := m.store.LoadAll()
	if err != nil {
		return nil, err
	}

	instances := Generate(template, *template.DueDate, m.now())
	template.Recurrence.GeneratedTaskIDs = instanceIDs(instances)

	next := append(slices.Clone(all), template)
	next = append(next, instances...)
	if err := m.store.SaveAll(next); err != nil {
		return nil, err
	}

	m.log.Info().
		Str("template", template.ID).
		Int("instances", len(instances)).
		Msg("recurring series created")
	return template, nil
}

// Update applies an edited template and regenerates its series: every
// instance from the previous generated-ID list is removed and a fresh set is
// materialized from the (possibly changed) rule. This is a full replace, not
// a diff — completed or individually edited instances are not preserved.
func (m *Manager) Update(edited *task.Task) (*task.Task, error) {
	if err := m.validateTemplate(edited); err != nil {
		return nil, err
	}

	all, err := m.store.LoadAll()
	if err != nil {
		return nil, err
	}

	stored := findTemplate(all, edited.ID)
	if stored == nil {
		return nil, flowerrors.TaskNotFoundError{ID: edited.ID}
	}
	if !stored.IsTemplate() {
		return nil, flowerrors.NotATemplateError{ID: edited.ID}
	}

	edited.CreatedAt = stored.CreatedAt
	edited.UpdatedAt = m.now()
	return edited, m.replaceSeries(all, stored, edited)
}

// Regenerate rebuilds the series from the stored template's unchanged rule.
// Replace semantics are identical to Update.
func (m *Manager) Regenerate(templateID string) (*task.Task, error) {
	all, err := m.store.LoadAll()
	if err != nil {
		return nil, err
	}

	stored := findTemplate(all, templateID)
	if stored == nil {
		return nil, flowerrors.TaskNotFoundError{ID: templateID}
	}
	if !stored.IsTemplate() {
		return nil, flowerrors.NotATemplateError{ID: templateID}
	}

	fresh := *stored
	fresh.UpdatedAt = m.now()
	return &fresh, m.replaceSeries(all, stored, &fresh)
}

// replaceSeries swaps out the old template and every instance in its previous
// generated-ID list, then persists the new template with a regenerated set in
// a single write.
func (m *Manager) replaceSeries(all []*task.Task, old, next *task.Task) error {
	stale := make(map[string]bool, len(old.Recurrence.GeneratedTaskIDs))
	for _, id := range old.Recurrence.GeneratedTaskIDs {
		stale[id] = true
	}

	kept := make([]*task.Task, 0, len(all))
	for _, t := range all {
		if t.ID == old.ID || stale[t.ID] {
			continue
		}
		kept = append(kept, t)
	}

	instances := Generate(next, *next.DueDate, m.now())
	rule := *next.Recurrence
	rule.GeneratedTaskIDs = instanceIDs(instances)
	next.Recurrence = &rule

	kept = append(kept, next)
	kept = append(kept, instances...)
	if err := m.store.SaveAll(kept); err != nil {
		return err
	}

	m.log.Info().
		Str("template", next.ID).
		Int("removed", len(stale)).
		Int("instances", len(instances)).
		Msg("recurring series regenerated")
	return nil
}

// Delete removes the template and every instance in its generated-ID list.
// No instance survives regardless of completion status. The confirmed flag is
// the abstract confirmation gate for this destructive operation.
func (m *Manager) Delete(templateID string, confirmed bool) error {
	if !confirmed {
		return flowerrors.ConfirmationRequiredError{Action: "deleting a recurring series"}
	}

	all, err := m.store.LoadAll()
	if err != nil {
		return err
	}

	stored := findTemplate(all, templateID)
	if stored == nil {
		return flowerrors.TaskNotFoundError{ID: templateID}
	}
	if !stored.IsTemplate() {
		return flowerrors.NotATemplateError{ID: templateID}
	}

	doomed := make(map[string]bool, len(stored.Recurrence.GeneratedTaskIDs)+1)
	doomed[stored.ID] = true
	for _, id := range stored.Recurrence.GeneratedTaskIDs {
		doomed[id] = true
	}

	kept := make([]*task.Task, 0, len(all))
	for _, t := range all {
		if doomed[t.ID] {
			continue
		}
		// Instances referencing this template stay consistent even if the
		// ID list drifted: sweep them too.
		if t.IsInstance() && t.RecurringParentID == templateID {
			continue
		}
		kept = append(kept, t)
	}

	if err := m.store.SaveAll(kept); err != nil {
		return err
	}

	m.log.Info().
		Str("template", templateID).
		Int("removed", len(all)-len(kept)).
		Msg("recurring series deleted")
	return nil
}

// Info reports totals for a series by filtering the store's instances against
// the template's generated-ID list. IDs with no surviving instance are
// skipped, not errors.
func (m *Manager) Info(templateID string) (Info, error) {
	all, err := m.store.LoadAll()
	if err != nil {
		return Info{}, err
	}

	stored := findTemplate(all, templateID)
	if stored == nil {
		return Info{}, flowerrors.TaskNotFoundError{ID: templateID}
	}
	if !stored.IsTemplate() {
		return Info{}, flowerrors.NotATemplateError{ID: templateID}
	}

	byID := make(map[string]*task.Task, len(all))
	for _, t := range all {
		byID[t.ID] = t
	}

	var info Info
	for _, id := range stored.Recurrence.GeneratedTaskIDs {
		inst, ok := byID[id]
		if !ok {
			continue
		}
		info.Total++
		if inst.Status == task.StatusCompleted {
			info.Completed++
		}
	}
	info.Remaining = info.Total - info.Completed
	return info, nil
}

// Templates returns every template in the store.
func (m *Manager) Templates() ([]*task.Task, error) {
	all, err := m.store.LoadAll()
	if err != nil {
		return nil, err
	}
	var templates []*task.Task
	for _, t := range all {
		if t.IsTemplate() {
			templates = append(templates, t)
		}
	}
	return templates, nil
}

// validateTemplate enforces the create/edit preconditions: non-empty title,
// present start date, and a valid rule (weekly rules need weekdays).
func (m *Manager) validateTemplate(template *task.Task) error {
	if strings.TrimSpace(template.Title) == "" {
		return flowerrors.EmptyTitleError{}
	}
	if template.Recurrence == nil {
		return flowerrors.InvalidTaskKindError{Reason: "template requires a recurrence rule"}
	}
	if template.DueDate == nil || template.DueDate.IsZero() {
		return flowerrors.MissingStartDateError{}
	}
	if err := template.Recurrence.Validate(); err != nil {
		return err
	}
	return template.Validate()
}

func findTemplate(tasks []*task.Task, id string) *task.Task {
	for _, t := range tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func instanceIDs(instances []*task.Task) []string {
	ids := make([]string, len(instances))
	for i, inst := range instances {
		ids[i] = inst.ID
	}
	return ids
}
