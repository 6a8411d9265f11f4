package cloudconnect

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/s0up4200/restvc/task"
	"github.com/s0up4200/restvc/transport"
)

func backupResourcesPath(tenantUID string) string {
	return tenantPath(tenantUID) + "/resources"
}

func replicaResourcePath(tenantUID string) string {
	return tenantPath(tenantUID) + "/replicaResources"
}

// ListBackupResources returns a tenant's cloud repository quotas.
func (s *Service) ListBackupResources(ctx context.Context, tenantUID string) ([]BackupResource, error) {
	list, err := transport.Get[BackupResourceList](ctx, s.client, backupResourcesPath(tenantUID))
	if err != nil {
		return nil, fmt.Errorf("failed to list backup resources for tenant %s: %w", tenantUID, err)
	}
	return list.Resources, nil
}

// CreateBackupResource allocates a repository quota to the tenant.
func (s *Service) CreateBackupResource(ctx context.Context, tenantUID string, res BackupResource) (BackupResource, error) {
	resp, err := s.client.Do(ctx, http.MethodPost, backupResourcesPath(tenantUID), &res)
	if err != nil {
		return BackupResource{}, fmt.Errorf("failed to create backup resource for tenant %s: %w", tenantUID, err)
	}
	return task.Await[BackupResource](ctx, s.client, resp, s.taskOpts...)
}

// UpdateBackupResource replaces an existing repository quota.
func (s *Service) UpdateBackupResource(ctx context.Context, tenantUID, resourceID string, res BackupResource) (BackupResource, error) {
	uri := backupResourcesPath(tenantUID) + "/" + url.PathEscape(resourceID)
	resp, err := s.client.Do(ctx, http.MethodPut, uri, &res)
	if err != nil {
		return BackupResource{}, fmt.Errorf("failed to update backup resource %s: %w", resourceID, err)
	}
	return task.Await[BackupResource](ctx, s.client, resp, s.taskOpts...)
}

// DeleteBackupResource revokes a repository quota.
func (s *Service) DeleteBackupResource(ctx context.Context, tenantUID, resourceID string) error {
	uri := backupResourcesPath(tenantUID) + "/" + url.PathEscape(resourceID)
	resp, err := s.client.Do(ctx, http.MethodDelete, uri, nil)
	if err != nil {
		return fmt.Errorf("failed to delete backup resource %s: %w", resourceID, err)
	}
	if _, err := task.Await[struct{}](ctx, s.client, resp, s.taskOpts...); err != nil {
		return fmt.Errorf("failed to delete backup resource %s: %w", resourceID, err)
	}
	return nil
}

// GetReplicaResource returns the tenant's replication allocation, if any.
func (s *Service) GetReplicaResource(ctx context.Context, tenantUID string) (ReplicaResource, error) {
	return transport.Get[ReplicaResource](ctx, s.client, replicaResourcePath(tenantUID))
}

// CreateReplicaResource subscribes the tenant to a hardware plan.
func (s *Service) CreateReplicaResource(ctx context.Context, tenantUID string, res ReplicaResource) (ReplicaResource, error) {
	resp, err := s.client.Do(ctx, http.MethodPost, replicaResourcePath(tenantUID), &res)
	if err != nil {
		return ReplicaResource{}, fmt.Errorf("failed to create replica resource for tenant %s: %w", tenantUID, err)
	}
	return task.Await[ReplicaResource](ctx, s.client, resp, s.taskOpts...)
}

// DeleteReplicaResource unsubscribes the tenant from its hardware plan.
func (s *Service) DeleteReplicaResource(ctx context.Context, tenantUID string) error {
	resp, err := s.client.Do(ctx, http.MethodDelete, replicaResourcePath(tenantUID), nil)
	if err != nil {
		return fmt.Errorf("failed to delete replica resource for tenant %s: %w", tenantUID, err)
	}
	if _, err := task.Await[struct{}](ctx, s.client, resp, s.taskOpts...); err != nil {
		return fmt.Errorf("failed to delete replica resource for tenant %s: %w", tenantUID, err)
	}
	return nil
}
