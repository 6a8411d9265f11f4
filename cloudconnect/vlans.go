package cloudconnect

import (
	"context"
	"fmt"

	"github.com/s0up4200/restvc/transport"
)

const vlansPath = "cloud/vlans"

// ListVLANs returns the VLAN ranges configured for tenant networking.
func (s *Service) ListVLANs(ctx context.Context) ([]VLANConfiguration, error) {
	list, err := transport.Get[VLANConfigurationList](ctx, s.client, vlansPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list VLAN configurations: %w", err)
	}
	return list.VLANs, nil
}
