package http

import (
	"github.com/esimov/sph-fluid/websocket"
)

var ws = websocket.HttpParams{
	Address: "localhost:5000",
	Prefix:  "/",
	Root:    "web",
}

// InitServer serves the browser renderer with the given parameters, falling
// back to the defaults for empty fields.
func InitServer(srv *websocket.Server, p websocket.HttpParams) error {
	if p.Address != "" {
		ws.Address = p.Address
	}
	if p.Prefix != "" {
		ws.Prefix = p.Prefix
	}
	if p.Root != "" {
		ws.Root = p.Root
	}
	return websocket.Init(&ws, srv)
}

// GetParams returns the parameters the server runs with.
func GetParams() websocket.HttpParams {
	return ws
}
