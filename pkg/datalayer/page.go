package datalayer

import (
	"context"

	"github.com/unifiedtracking/datalayer/pkg/datalayer/validate"
)

// PageModule emits page-level events.
type PageModule struct {
	base *base
}

// Home tracks a home page view.
func (m *PageModule) Home(ctx context.Context) (Event, error) {
	return m.base.push(ctx, "page.home", "page_default",
		withDefault(m.base.pageView("home", "view"), nil))
}

// View tracks a view of any page type. An empty action defaults to "view".
func (m *PageModule) View(ctx context.Context, pageType, action string) (Event, error) {
	if err := validate.Check("pageType", validate.String(pageType, "pageType", validate.StringOpts{})); err != nil {
		return nil, m.base.reject(ctx, "page.view", err)
	}
	if action == "" {
		action = "view"
	}

	return m.base.push(ctx, "page.view", "page_default",
		withDefault(m.base.pageView(pageType, action), nil))
}

// Error tracks a page-level error condition. The error field rides under
// default and is auto-nulled on the following event by the default
// nullification allow-list.
func (m *PageModule) Error(ctx context.Context, errorType, message string) (Event, error) {
	if err := validate.Check("errorType", validate.String(errorType, "errorType", validate.StringOpts{})); err != nil {
		return nil, m.base.reject(ctx, "page.error", err)
	}

	payload := withDefault(m.base.pageView("error", "view"), nil)
	payload["default"].(map[string]any)["error"] = map[string]any{
		"type":    errorType,
		"message": message,
	}
	return m.base.push(ctx, "page.error", "page_default", payload)
}
