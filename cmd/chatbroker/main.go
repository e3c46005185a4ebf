// Command chatbroker is a TCP chat server with adaptive Huffman
// compression. It accepts connections, decodes each frame with a
// per-connection decoder purely for server-side logging, and rebroadcasts
// the original compressed payload verbatim to every other connected
// client.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"sync"

	"github.com/adahuff/adahuff"
	"github.com/adahuff/adahuff/internal/chatproto"
)

const defaultPort = 9000

func main() {
	port := flag.Int("port", defaultPort, "TCP port to listen on")
	flag.Parse()

	addr := fmt.Sprintf(":%d", *port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("chatbroker: listen on %s: %v", addr, err)
	}
	defer ln.Close()

	log.Printf("chatbroker: listening on %s", addr)

	reg := newRegistry()
	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Printf("chatbroker: accept: %v", err)
			continue
		}
		reg.add(conn)
		go serve(conn, reg)
	}
}

// registry is the broker's connected-client set, guarded by its own lock.
// Per the codec's concurrency model, the registry lock is only ever taken
// to snapshot or mutate the client list itself; it is never held while a
// codec's lock is also held, and no codec lock is ever held while taking
// this one.
type registry struct {
	mu      sync.Mutex
	clients map[net.Conn]struct{}
}

func newRegistry() *registry {
	return &registry{clients: make(map[net.Conn]struct{})}
}

func (r *registry) add(c net.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c] = struct{}{}
}

func (r *registry) remove(c net.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, c)
}

// snapshot returns the current client list excluding sender, for fan-out
// outside the registry lock.
func (r *registry) snapshot(sender net.Conn) []net.Conn {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]net.Conn, 0, len(r.clients))
	for c := range r.clients {
		if c != sender {
			out = append(out, c)
		}
	}
	return out
}

func broadcast(reg *registry, payload []byte, sender net.Conn) {
	for _, c := range reg.snapshot(sender) {
		if err := chatproto.WriteFrame(c, payload); err != nil {
			log.Printf("chatbroker: forwarding to %s: %v", c.RemoteAddr(), err)
		}
	}
}

// serve reads frames from conn until it disconnects or its decoder
// desynchronizes. A decode error drops the connection rather than merely
// logging and continuing: a desynchronized decoder's later frames would
// decode against a diverged tree, so dropping it is the only way to keep
// the rest of the broadcast group uncorrupted.
func serve(conn net.Conn, reg *registry) {
	addr := conn.RemoteAddr()
	log.Printf("chatbroker: new client %s", addr)

	decoder := adahuff.New()
	defer func() {
		reg.remove(conn)
		conn.Close()
		log.Printf("chatbroker: client %s disconnected", addr)
	}()

	for {
		payload, err := chatproto.ReadFrame(conn)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("chatbroker: reading frame from %s: %v", addr, err)
			}
			return
		}

		message, err := decoder.Decode(payload)
		if err != nil {
			log.Printf("chatbroker: decode error from %s, dropping connection: %v", addr, err)
			return
		}
		log.Printf("[%s] %s", addr, message)

		broadcast(reg, payload, conn)
	}
}
