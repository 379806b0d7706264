package server

import "github.com/joeblew999/plat-titlecard/pkg/render"

// renderService adapts render.Engine to the service.Service interface.
type renderService struct {
	engine  *render.Engine
	workers int
}

func newRenderService(engine *render.Engine, workers int) *renderService {
	return &renderService{engine: engine, workers: workers}
}

func (s *renderService) Start() {
	s.engine.Start(s.workers)
}

func (s *renderService) Stop() {
	s.engine.Stop()
}
