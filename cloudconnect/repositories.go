package cloudconnect

import (
	"context"
	"fmt"
	"net/url"

	"github.com/s0up4200/restvc/hypermedia"
	"github.com/s0up4200/restvc/transport"
)

const repositoriesPath = "repositories"

// ListRepositories returns references to all backup repositories.
func (s *Service) ListRepositories(ctx context.Context) ([]Ref, error) {
	list, err := transport.Get[RefList](ctx, s.client, repositoriesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	return list.Refs, nil
}

// GetRepository fetches a backup repository by UID.
func (s *Service) GetRepository(ctx context.Context, uid string) (Repository, error) {
	return transport.Get[Repository](ctx, s.client, repositoriesPath+"/"+url.PathEscape(uid))
}

// GetRepositoryByName resolves exactly one repository by name.
func (s *Service) GetRepositoryByName(ctx context.Context, name string) (Repository, error) {
	refs, err := s.ListRepositories(ctx)
	if err != nil {
		return Repository{}, err
	}
	ref, err := hypermedia.FindNamed(refs, name, TypeRepositoryRef)
	if err != nil {
		return Repository{}, err
	}
	return transport.Get[Repository](ctx, s.client, ref.Href)
}
