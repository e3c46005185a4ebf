// Command huffdump encodes or decodes a single message on the command
// line and hex-dumps the resulting bytes, for inspecting the codec's wire
// format without standing up a broker and client.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/adahuff/adahuff"
)

func main() {
	decode := flag.Bool("decode", false, "treat the argument as hex-encoded payload bytes and decode it")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: huffdump [-decode] <text|hex-payload>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	c := adahuff.New()

	if *decode {
		payload, err := hex.DecodeString(args[0])
		if err != nil {
			log.Fatalf("huffdump: invalid hex input: %v", err)
		}
		text, err := c.Decode(payload)
		if err != nil {
			log.Fatalf("huffdump: decode: %v", err)
		}
		fmt.Println(text)
		return
	}

	payload, err := c.Encode(args[0])
	if err != nil {
		log.Fatalf("huffdump: encode: %v", err)
	}

	fmt.Printf("%d bytes:\n", len(payload))
	for i := 0; i < len(payload); i += 16 {
		end := i + 16
		if end > len(payload) {
			end = len(payload)
		}
		fmt.Printf("%08x: % x\n", i, payload[i:end])
	}
}
