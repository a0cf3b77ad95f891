package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"gonum.org/v1/gonum/spatial/r3"

	sph "github.com/esimov/sph-fluid/sph-solver"
)

// Frame is broadcast to every renderer after each batch of ticks.
type Frame struct {
	Step      int          `json:"step"`
	Time      float64      `json:"time"`
	Extent    float64      `json:"extent"`
	Positions [][3]float64 `json:"positions"`
}

// Probe is sent by a renderer to move the probe particle.
type Probe struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type HttpParams struct {
	Address string
	Prefix  string
	Root    string
}

// A server application calls the Upgrade method from an HTTP request handler to initiate a connection
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HttpServer is the server started by Init
var HttpServer http.Server

const sendBuffer = 4

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server streams the solver state to websocket clients. Run is the only
// method touching the solver.
type Server struct {
	solver   *sph.Solver
	substeps int
	frame    time.Duration

	// probes carries probe moves from socket readers to Run
	probes chan Probe

	mu      sync.Mutex
	clients map[*client]struct{}

	positions []r3.Vec
}

// NewServer prepares a server running substeps ticks every frame.
func NewServer(s *sph.Solver, substeps int, frame time.Duration) *Server {
	if substeps < 1 {
		substeps = 1
	}
	return &Server{
		solver:   s,
		substeps: substeps,
		frame:    frame,
		probes:   make(chan Probe, 16),
		clients:  make(map[*client]struct{}),
	}
}

// Init serves the static renderer and the /ws endpoint until the listener
// or the simulation fails.
func Init(p *HttpParams, srv *Server) error {
	var err error
	p.Root, err = filepath.Abs(p.Root)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	HttpServer = http.Server{
		Addr:    p.Address,
		Handler: srv.Handler(p),
	}
	go func() {
		if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("simulation stopped: %v", err)
			HttpServer.Close()
		}
	}()

	log.Printf("serving %s as %s on %s", p.Root, p.Prefix, p.Address)
	return HttpServer.ListenAndServe()
}

// Handler returns the static file server and the /ws endpoint behind a
// request logger.
func (s *Server) Handler(p *HttpParams) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(p.Prefix, http.StripPrefix(p.Prefix, http.FileServer(http.Dir(p.Root))))
	mux.HandleFunc("/ws", s.wsHandler)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Print(r.RemoteAddr + " " + r.Method + " " + r.URL.String())
		mux.ServeHTTP(w, r)
	})
}

// Run ticks the solver every frame and broadcasts the result. Probe moves
// are applied between ticks.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return ctx.Err()
		case pr := <-s.probes:
			s.solver.SetProbe(r3.Vec{X: pr.X, Y: pr.Y, Z: pr.Z})
		case <-ticker.C:
			for i := 0; i < s.substeps; i++ {
				if err := s.solver.Tick(); err != nil {
					s.closeAll()
					return err
				}
			}
			msg, err := json.Marshal(s.snapshot())
			if err != nil {
				return err
			}
			s.broadcast(msg)
		}
	}
}

func (s *Server) snapshot() Frame {
	s.positions = s.solver.Positions(s.positions)
	f := Frame{
		Step:      s.solver.Steps(),
		Time:      s.solver.Time(),
		Extent:    s.solver.Params().HalfExtent,
		Positions: make([][3]float64, len(s.positions)),
	}
	for i, p := range s.positions {
		f.Positions[i] = [3]float64{p.X, p.Y, p.Z}
	}
	return f
}

// broadcast hands msg to every client; a client still busy with older
// frames skips this one.
func (s *Server) broadcast(msg []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for c := range s.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}

func (s *Server) register(c *client) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
}

// wsHandler defines the websocket connection endpoint
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	// Upgrade the http connection to a WebSocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if _, ok := err.(websocket.HandshakeError); !ok {
			log.Println(err)
		}
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	s.register(c)
	go s.writeSocket(c)
	s.readSocket(c)
}

// readSocket listen for probe moves being sent to the websocket
func (s *Server) readSocket(c *client) {
	defer func() {
		s.unregister(c)
		c.conn.Close()
	}()

	for {
		var pr Probe
		if err := c.conn.ReadJSON(&pr); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			return
		}
		select {
		case s.probes <- pr:
		default:
			// Run is behind; the next move supersedes this one anyway
		}
	}
}

// writeSocket forwards frames until the client is unregistered
func (s *Server) writeSocket(c *client) {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Println(err)
			c.conn.Close()
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
