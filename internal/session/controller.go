package session

import (
	"log/slog"
	"strings"

	"github.com/nao1215/contraband/internal/model"
	"github.com/nao1215/contraband/internal/report"
)

// Activation is the result of activating an item.
type Activation struct {
	// Item is the entry after the call, or the removed entry when Selected
	// is false.
	Item model.Item

	// Selected reports whether the item is in the ledger after the call.
	Selected bool
}

// Controller is the single owner of a selection ledger.
// It is not safe for concurrent use; each front-end session creates its own.
type Controller struct {
	ledger  *model.Ledger
	labels  model.Labels
	catalog map[string]string
	logger  *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for mutation events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLabels merges label overrides over the default label table.
func WithLabels(overrides model.Labels) Option {
	return func(c *Controller) {
		c.labels = c.labels.Merge(overrides)
	}
}

// WithCatalog registers known item names and their category codes.
// Names are matched case-insensitively by ResolveCategory.
func WithCatalog(catalog map[string]string) Option {
	return func(c *Controller) {
		for name, code := range catalog {
			c.catalog[strings.ToLower(strings.TrimSpace(name))] = code
		}
	}
}

// New creates a Controller with an empty ledger using policy.
func New(policy model.TogglePolicy, opts ...Option) *Controller {
	c := &Controller{
		ledger:  model.NewLedger(policy),
		labels:  model.DefaultLabels(),
		catalog: make(map[string]string),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Labels returns the label table used for rendering.
func (c *Controller) Labels() model.Labels {
	return c.labels.Merge(nil)
}

// ResolveCategory returns the catalog code for name.
func (c *Controller) ResolveCategory(name string) (string, bool) {
	code, ok := c.catalog[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// OnItemActivated applies the configured toggle policy to name.
// An empty code is resolved through the catalog when possible.
func (c *Controller) OnItemActivated(name, code string) Activation {
	if code == "" {
		code, _ = c.ResolveCategory(name)
	}

	item, selected := c.ledger.Activate(name, code)
	c.logger.Debug("item activated",
		slog.String("item", item.Name),
		slog.String("category", item.Category.Code()),
		slog.Int("quantity", item.Quantity),
		slog.Bool("selected", selected),
	)
	return Activation{Item: item, Selected: selected}
}

// OnQuantityEdited sets the quantity of name from raw input.
// It reports false, and changes nothing, when name is not selected.
func (c *Controller) OnQuantityEdited(name, raw string) (model.Item, bool) {
	item, ok := c.ledger.SetQuantity(name, raw)
	if !ok {
		c.logger.Debug("quantity edit ignored", slog.String("item", name))
		return item, false
	}
	c.logger.Debug("quantity edited",
		slog.String("item", name),
		slog.Int("quantity", item.Quantity),
	)
	return item, true
}

// OnRemove deletes name from the selection.
func (c *Controller) OnRemove(name string) bool {
	removed := c.ledger.Remove(name)
	c.logger.Debug("item removed", slog.String("item", name), slog.Bool("existed", removed))
	return removed
}

// OnClearAll empties the selection.
func (c *Controller) OnClearAll() {
	n := c.ledger.Len()
	c.ledger.Clear()
	c.logger.Debug("selection cleared", slog.Int("items", n))
}

// IsSelected reports whether name is currently selected.
func (c *Controller) IsSelected(name string) bool {
	return c.ledger.Has(name)
}

// Items returns the selected items in insertion order.
func (c *Controller) Items() []model.Item {
	return c.ledger.Items()
}

// GetRenderModel projects the ledger for display.
func (c *Controller) GetRenderModel() model.RenderModel {
	return model.Project(c.ledger, c.labels)
}

// GetSummaryText renders the selection as a single line.
// Options without labels use the controller's label table.
func (c *Controller) GetSummaryText(opts report.SelectionOptions) string {
	if opts.Labels == nil {
		opts.Labels = c.labels
	}
	return report.FormatSelection(c.ledger, opts)
}

// GetBriefingText renders a briefing form. The ledger is not involved.
func (c *Controller) GetBriefingText(form model.BriefingForm, opts report.BriefingOptions) (string, error) {
	text, err := report.FormatBriefing(form, opts)
	if err != nil {
		c.logger.Warn("briefing rejected", slog.String("error", err.Error()))
		return "", err
	}
	return text, nil
}
