package datalayer

import "context"

// FormInfo identifies the form an account event relates to.
type FormInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// AccountModule emits account lifecycle events.
type AccountModule struct {
	base *base
}

// CreateStart tracks the start of account registration.
func (m *AccountModule) CreateStart(ctx context.Context) (Event, error) {
	return m.base.push(ctx, "account.createStart", "account_create-start",
		withDefault(pageRef("account", "create-start"), Event{
			"form_info": FormInfo{Name: "account-create", Type: "registration"},
		}))
}

// CreateComplete tracks a completed account registration.
func (m *AccountModule) CreateComplete(ctx context.Context) (Event, error) {
	return m.base.push(ctx, "account.createComplete", "account_create-complete",
		withDefault(pageRef("account", "create-complete"), Event{
			"form_info": FormInfo{Name: "account-create", Type: "registration"},
		}))
}

// LoginStart tracks the start of a login attempt.
func (m *AccountModule) LoginStart(ctx context.Context) (Event, error) {
	return m.base.push(ctx, "account.loginStart", "account_login-start",
		withDefault(pageRef("account", "login-start"), Event{
			"form_info": FormInfo{Name: "account-login", Type: "login"},
		}))
}

// LoginSuccess tracks a completed login.
func (m *AccountModule) LoginSuccess(ctx context.Context) (Event, error) {
	return m.base.push(ctx, "account.loginSuccess", "account_login-success",
		withDefault(pageRef("account", "login-complete"), Event{
			"form_info": FormInfo{Name: "account-login", Type: "login"},
		}))
}
