package main

import (
	"flag"
	"log"
	"time"

	"github.com/esimov/sph-fluid/config"
	"github.com/esimov/sph-fluid/http"
	sph "github.com/esimov/sph-fluid/sph-solver"
	"github.com/esimov/sph-fluid/terminal"
	"github.com/esimov/sph-fluid/websocket"
)

const fps = 30

func main() {
	var (
		cfgPath, mode          string
		addr, prefix, root     string
		substeps, ticks, every int
	)
	flag.StringVar(&cfgPath, "config", "", "simulation config file (defaults are used when empty)")
	flag.StringVar(&mode, "mode", "terminal", "renderer: terminal, web or headless")
	flag.IntVar(&substeps, "substeps", 10, "ticks per rendered frame")
	flag.StringVar(&addr, "a", "", "address to serve(host:port)")
	flag.StringVar(&prefix, "p", "", "prefix path under")
	flag.StringVar(&root, "r", "", "root path to serve")
	flag.IntVar(&ticks, "ticks", 1000, "ticks to run in headless mode")
	flag.IntVar(&every, "every", 100, "headless log interval in ticks")
	flag.Parse()

	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			log.Fatalln(err)
		}
	}
	s, err := cfg.NewSolver()
	if err != nil {
		log.Fatalln(err)
	}

	frame := time.Second / fps
	switch mode {
	case "terminal":
		err = terminal.New(s, substeps, frame).Render()
	case "web":
		srv := websocket.NewServer(s, substeps, frame)
		err = http.InitServer(srv, websocket.HttpParams{Address: addr, Prefix: prefix, Root: root})
	case "headless":
		err = headless(s, ticks, every)
	default:
		log.Fatalf("unknown mode %q", mode)
	}
	if err != nil {
		log.Fatalln(err)
	}
}

func headless(s *sph.Solver, ticks, every int) error {
	if every < 1 {
		every = 1
	}
	start := time.Now()
	for i := 1; i <= ticks; i++ {
		if err := s.Tick(); err != nil {
			return err
		}
		if i%every == 0 || i == ticks {
			st := s.Stats()
			log.Printf("step %d t=%.4f rho min/mean/max %.4g/%.4g/%.4g max speed %.4g",
				s.Steps(), s.Time(), st.MinDensity, st.MeanDensity, st.MaxDensity, st.MaxSpeed)
		}
	}
	log.Printf("%d particles, %d ticks in %v", s.Len(), ticks, time.Since(start))
	return nil
}
