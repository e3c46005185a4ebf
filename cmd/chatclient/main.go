// Command chatclient is a line-oriented REPL chat client with adaptive
// Huffman compression. It dials a chatbroker, spawns a reader goroutine
// that decodes and prints incoming frames, and loops reading stdin lines,
// encoding and framing each as it is entered.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"

	"github.com/adahuff/adahuff"
	"github.com/adahuff/adahuff/internal/chatproto"
)

const defaultPort = 9000

func main() {
	host := flag.String("host", "127.0.0.1", "broker host")
	port := flag.Int("port", defaultPort, "broker port")
	username := flag.String("user", "anon", "display name prefixed to outgoing messages")
	flag.Parse()

	addr := fmt.Sprintf("%s:%d", *host, *port)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		log.Fatalf("chatclient: connecting to %s: %v", addr, err)
	}
	defer conn.Close()

	fmt.Printf("Connected to %s — type a message and press Enter. Ctrl+D to quit.\n", addr)

	done := make(chan struct{})
	go receiveLoop(conn, done)

	sendLoop(conn, *username)
	<-done
}

// receiveLoop decodes and prints every frame received from conn, using a
// decoder private to this client (never shared with the outgoing
// encoder). It returns once the connection closes or a frame fails to
// decode — a decode error means this client's decoder has desynchronized
// from the broker's forwarding stream, and there is no recovery short of
// reconnecting.
func receiveLoop(conn net.Conn, done chan<- struct{}) {
	defer close(done)

	decoder := adahuff.New()
	for {
		payload, err := chatproto.ReadFrame(conn)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Printf("\rconnection error: %v\n", err)
			} else {
				fmt.Println("\rserver closed connection.")
			}
			return
		}

		message, err := decoder.Decode(payload)
		if err != nil {
			fmt.Printf("\rdecode error: %v\n", err)
			return
		}
		fmt.Printf("\r%s\n> ", message)
	}
}

// sendLoop reads lines from stdin, encodes each with a private encoder,
// and writes it as a frame until stdin closes or the connection fails.
func sendLoop(conn net.Conn, username string) {
	encoder := adahuff.New()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("> ")
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			fmt.Print("> ")
			continue
		}

		payload, err := encoder.Encode(username + ": " + line)
		if err != nil {
			fmt.Printf("encode error: %v\n", err)
			fmt.Print("> ")
			continue
		}

		if err := chatproto.WriteFrame(conn, payload); err != nil {
			fmt.Printf("send error: %v\n", err)
			return
		}
		fmt.Print("> ")
	}
}
