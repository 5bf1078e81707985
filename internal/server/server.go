package server

import (
	"context"

	"github.com/rohanthewiz/rweb"
	"github.com/rs/zerolog"

	"typeahead/internal/catalog"
	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
	"typeahead/internal/logging"
)

// Searcher answers search queries; *catalog.Catalog satisfies it
type Searcher interface {
	Search(ctx context.Context, query string, limit int) (domain.ResultPayload, error)
}

var _ Searcher = (*catalog.Catalog)(nil)

// Options configures the endpoint server
type Options struct {
	Address   string
	Verbose   bool
	Limit     int           // entries per section
	Channel   string        // default side-channel for /deliver
	ReadyChan chan struct{} // signalled once the listener is up
}

// Server exposes the catalog as a search endpoint and relays side-channel
// deliveries onto the bus
type Server struct {
	ctx      context.Context
	log      *zerolog.Logger
	searcher Searcher
	bus      eventbus.EventBus
	opts     Options
	srv      *rweb.Server
}

// New creates and configures the server. bus may be nil, in which case
// /deliver answers 503.
func New(ctx context.Context, searcher Searcher, bus eventbus.EventBus, opts Options) *Server {
	ctx = logging.WithComponent(ctx, "server")
	if opts.Limit <= 0 {
		opts.Limit = catalog.DefaultLimit
	}
	if opts.Channel == "" {
		opts.Channel = domain.DefaultResultsChannel
	}

	s := &Server{
		ctx:      ctx,
		log:      logging.FromContext(ctx),
		searcher: searcher,
		bus:      bus,
		opts:     opts,
	}

	s.srv = rweb.NewServer(rweb.ServerOptions{
		Address:   opts.Address,
		Verbose:   opts.Verbose,
		ReadyChan: opts.ReadyChan,
	})

	if opts.Verbose {
		s.srv.Use(rweb.RequestInfo)
	}
	s.srv.Use(corsMiddleware)
	s.srv.Use(s.loggingMiddleware)

	s.setupRoutes()
	return s
}

// Run starts serving and blocks
func (s *Server) Run() error {
	s.log.Info().Str("address", s.opts.Address).Msg("search endpoint starting")
	return s.srv.Run()
}

// ListenPort returns the bound port once the server is ready
func (s *Server) ListenPort() string {
	return s.srv.GetListenPort()
}
