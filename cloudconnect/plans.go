package cloudconnect

import (
	"context"
	"fmt"
	"net/url"

	"github.com/s0up4200/restvc/hypermedia"
	"github.com/s0up4200/restvc/transport"
)

const hardwarePlansPath = "cloud/hardwarePlans"

// ListHardwarePlans returns references to all hardware plans.
func (s *Service) ListHardwarePlans(ctx context.Context) ([]Ref, error) {
	list, err := transport.Get[RefList](ctx, s.client, hardwarePlansPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list hardware plans: %w", err)
	}
	return list.Refs, nil
}

// GetHardwarePlan fetches a hardware plan by UID.
func (s *Service) GetHardwarePlan(ctx context.Context, uid string) (HardwarePlan, error) {
	return transport.Get[HardwarePlan](ctx, s.client, hardwarePlansPath+"/"+url.PathEscape(uid))
}

// GetHardwarePlanByName resolves exactly one hardware plan by name.
func (s *Service) GetHardwarePlanByName(ctx context.Context, name string) (HardwarePlan, error) {
	refs, err := s.ListHardwarePlans(ctx)
	if err != nil {
		return HardwarePlan{}, err
	}
	ref, err := hypermedia.FindNamed(refs, name, TypeHardwarePlanRef)
	if err != nil {
		return HardwarePlan{}, err
	}
	return transport.Get[HardwarePlan](ctx, s.client, ref.Href)
}
