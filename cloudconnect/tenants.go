package cloudconnect

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/s0up4200/restvc/hypermedia"
	"github.com/s0up4200/restvc/task"
	"github.com/s0up4200/restvc/transport"
)

const tenantsPath = "cloud/tenants"

func tenantPath(uid string) string {
	return tenantsPath + "/" + url.PathEscape(uid)
}

// ListTenants returns references to all cloud tenants.
func (s *Service) ListTenants(ctx context.Context) ([]Ref, error) {
	list, err := transport.Get[RefList](ctx, s.client, tenantsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return list.Refs, nil
}

// GetTenant fetches a tenant by UID.
func (s *Service) GetTenant(ctx context.Context, uid string) (Tenant, error) {
	return transport.Get[Tenant](ctx, s.client, tenantPath(uid))
}

// GetTenantByName resolves exactly one tenant by account name.
func (s *Service) GetTenantByName(ctx context.Context, name string) (Tenant, error) {
	refs, err := s.ListTenants(ctx)
	if err != nil {
		return Tenant{}, err
	}
	ref, err := hypermedia.FindNamed(refs, name, TypeTenantRef)
	if err != nil {
		return Tenant{}, err
	}
	return transport.Get[Tenant](ctx, s.client, ref.Href)
}

// CreateTenant provisions a new tenant account. The server executes the
// creation out-of-band; this call resolves once the task finishes.
func (s *Service) CreateTenant(ctx context.Context, spec CreateTenantSpec) (Tenant, error) {
	resp, err := s.client.Do(ctx, http.MethodPost, tenantsPath, &spec)
	if err != nil {
		return Tenant{}, fmt.Errorf("failed to create tenant %q: %w", spec.Name, err)
	}
	tenant, err := task.Await[Tenant](ctx, s.client, resp, s.taskOpts...)
	if err != nil {
		return Tenant{}, fmt.Errorf("failed to create tenant %q: %w", spec.Name, err)
	}

	s.logger.Debug().Str("tenant", spec.Name).Msg("tenant created")
	return tenant, nil
}

// UpdateTenant replaces a tenant's settings.
func (s *Service) UpdateTenant(ctx context.Context, uid string, tenant Tenant) (Tenant, error) {
	resp, err := s.client.Do(ctx, http.MethodPut, tenantPath(uid), &tenant)
	if err != nil {
		return Tenant{}, fmt.Errorf("failed to update tenant %s: %w", uid, err)
	}
	return task.Await[Tenant](ctx, s.client, resp, s.taskOpts...)
}

// DeleteTenant removes a tenant account.
func (s *Service) DeleteTenant(ctx context.Context, uid string) error {
	resp, err := s.client.Do(ctx, http.MethodDelete, tenantPath(uid), nil)
	if err != nil {
		return fmt.Errorf("failed to delete tenant %s: %w", uid, err)
	}
	if _, err := task.Await[struct{}](ctx, s.client, resp, s.taskOpts...); err != nil {
		return fmt.Errorf("failed to delete tenant %s: %w", uid, err)
	}

	s.logger.Debug().Str("tenant", uid).Msg("tenant deleted")
	return nil
}

// EnableTenant allows the tenant to connect to the platform again.
func (s *Service) EnableTenant(ctx context.Context, uid string) error {
	return s.tenantAction(ctx, uid, "enable")
}

// DisableTenant blocks the tenant from connecting without deleting its
// account or data.
func (s *Service) DisableTenant(ctx context.Context, uid string) error {
	return s.tenantAction(ctx, uid, "disable")
}

func (s *Service) tenantAction(ctx context.Context, uid, action string) error {
	resp, err := s.client.Do(ctx, http.MethodPost, tenantPath(uid)+"?action="+action, nil)
	if err != nil {
		return fmt.Errorf("failed to %s tenant %s: %w", action, uid, err)
	}
	if _, err := task.Await[struct{}](ctx, s.client, resp, s.taskOpts...); err != nil {
		return fmt.Errorf("failed to %s tenant %s: %w", action, uid, err)
	}
	return nil
}
