package cloudconnect

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/restvc/config"
	"github.com/s0up4200/restvc/task"
	"github.com/s0up4200/restvc/transport"
)

// Service exposes the management API's business operations as typed Go
// methods. Every method is a thin path-template mapping onto the
// transport client; asynchronous mutations resolve through the task
// poller.
type Service struct {
	client   *transport.Client
	logger   zerolog.Logger
	taskOpts []task.Option
}

// Option configures a Service.
type Option func(*options)

type options struct {
	transportOpts []transport.Option
	taskOpts      []task.Option
}

// WithTransportOptions forwards options to the underlying transport
// client.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(o *options) {
		o.transportOpts = append(o.transportOpts, opts...)
	}
}

// WithTaskOptions tunes the polling schedule used for asynchronous
// operations.
func WithTaskOptions(opts ...task.Option) Option {
	return func(o *options) {
		o.taskOpts = append(o.taskOpts, opts...)
	}
}

// New creates a service for the API rooted at baseURL. credential is the
// pre-hashed username:password pair; build it with
// transport.BasicCredential. No network traffic happens until Logon.
func New(baseURL, credential string, logger zerolog.Logger, opts ...Option) (*Service, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	client, err := transport.NewClient(baseURL, credential, logger, o.transportOpts...)
	if err != nil {
		return nil, err
	}

	return &Service{
		client:   client,
		logger:   logger,
		taskOpts: o.taskOpts,
	}, nil
}

// NewFromConfig creates a service from a loaded configuration.
func NewFromConfig(cfg *config.Config, logger zerolog.Logger, opts ...Option) (*Service, error) {
	credential := cfg.Console.Credential
	if credential == "" {
		credential = transport.BasicCredential(cfg.Console.Username, cfg.Console.Password)
	}

	if cfg.Console.TokenHeader != "" {
		opts = append(opts, WithTransportOptions(transport.WithTokenHeader(cfg.Console.TokenHeader)))
	}

	svc, err := New(cfg.Console.BaseURL(), credential, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create management API client: %w", err)
	}
	return svc, nil
}

// Client exposes the underlying transport client.
func (s *Service) Client() *transport.Client {
	return s.client
}

// Logon opens the session. Pair it with Close on every exit path of the
// owning scope.
func (s *Service) Logon(ctx context.Context) error {
	return s.client.Logon(ctx)
}

// Close releases the session, best-effort.
func (s *Service) Close(ctx context.Context) error {
	return s.client.Logoff(ctx)
}

// ListLogonSessions returns the sessions currently active on the server.
func (s *Service) ListLogonSessions(ctx context.Context) ([]transport.LogonSession, error) {
	list, err := transport.Get[transport.LogonSessionList](ctx, s.client, "logonSessions")
	if err != nil {
		return nil, fmt.Errorf("failed to list logon sessions: %w", err)
	}
	return list.Sessions, nil
}
