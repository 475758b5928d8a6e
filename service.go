package flowsnap

import (
	"text/template"

	"github.com/deskdocs/flowsnap/internal/assets"
)

// Service owns one browser session and the resolved page assets for a
// run. Create it with New, render or export as many times as needed,
// then Close.
type Service struct {
	cfg         serviceConfig
	session     browserSession
	template    *template.Template
	printCSS    string
	initOptions string
}

// New builds a Service and eagerly starts its browser. An environment
// that cannot launch a browser fails here, before any per-diagram work
// begins, instead of failing on the first render.
func New(opts ...Option) (*Service, error) {
	cfg := defaultServiceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s, err := newService(cfg, newRodSession(cfg.browserBin, cfg.noSandbox))
	if err != nil {
		return nil, err
	}

	if err := s.session.Start(); err != nil {
		return nil, err
	}

	return s, nil
}

// newService wires assets and theme without touching the browser.
// Split from New so tests can inject a fake session.
func newService(cfg serviceConfig, session browserSession) (*Service, error) {
	resolver, err := assets.NewAssetResolver(cfg.assetDir)
	if err != nil {
		return nil, err
	}

	tmplText, err := resolver.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return nil, err
	}

	tmpl, err := parseDiagramTemplate(tmplText)
	if err != nil {
		return nil, err
	}

	printCSS, err := resolver.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return nil, err
	}

	initOptions, err := encodeInitOptions(cfg.theme)
	if err != nil {
		return nil, err
	}

	return &Service{
		cfg:         cfg,
		session:     session,
		template:    tmpl,
		printCSS:    printCSS,
		initOptions: initOptions,
	}, nil
}

// Close shuts down the browser session. Safe to call more than once.
func (s *Service) Close() error {
	return s.session.Close()
}
