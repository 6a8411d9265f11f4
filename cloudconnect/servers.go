package cloudconnect

import (
	"context"
	"fmt"
	"net/url"

	"github.com/s0up4200/restvc/transport"
)

const backupServersPath = "backupServers"

// ListBackupServers returns references to all managed backup servers.
func (s *Service) ListBackupServers(ctx context.Context) ([]Ref, error) {
	list, err := transport.Get[RefList](ctx, s.client, backupServersPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list backup servers: %w", err)
	}
	return list.Refs, nil
}

// GetBackupServer fetches a managed backup server by UID.
func (s *Service) GetBackupServer(ctx context.Context, uid string) (BackupServer, error) {
	return transport.Get[BackupServer](ctx, s.client, backupServersPath+"/"+url.PathEscape(uid))
}
