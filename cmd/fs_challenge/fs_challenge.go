// Command fs_challenge records labeled messages in a Fiat-Shamir transcript and prints a challenge drawn from it.
//
// Messages are given as arguments of the form label=data:
//
//	fs_challenge -protocol com.example.schnorr -label challenge -n 32 public-key=alice commitment=r
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/codahale/fiatshamir"
	"github.com/codahale/fiatshamir/strobeduplex"
)

var constructions = map[string]fiatshamir.Construction{ //nolint:gochecknoglobals // constant lookup table
	"simpira": fiatshamir.Simpira,
	"strobe":  strobeduplex.New,
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			slog.Error("failed to draw challenge", "err", err)
		}
		os.Exit(2)
	}
}

type message struct {
	label string
	data  []byte
}

type config struct {
	protocol     string
	construction fiatshamir.Construction
	label        string
	n            int
	verbose      bool
	messages     []message
}

func parseConfig(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("fs_challenge", flag.ContinueOnError)
	fs.SetOutput(stderr)

	protocol := fs.String("protocol", "fiatshamir.fs_challenge", "the protocol's domain separation string")
	construction := fs.String("construction", "simpira", "the duplex construction (simpira or strobe)")
	label := fs.String("label", "challenge", "the challenge's label")
	n := fs.Int("n", 32, "the number of challenge bytes to print")
	verbose := fs.Bool("v", false, "log each recorded message")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	c, ok := constructions[*construction]
	if !ok {
		return nil, fmt.Errorf("unknown construction: %q", *construction)
	}

	if *n < 0 {
		return nil, fmt.Errorf("invalid challenge length: %d", *n)
	}

	messages, err := parseMessages(fs.Args())
	if err != nil {
		return nil, err
	}

	return &config{
		protocol:     *protocol,
		construction: c,
		label:        *label,
		n:            *n,
		verbose:      *verbose,
		messages:     messages,
	}, nil
}

// parseMessages splits each argument at its first '=' into a label and data.
func parseMessages(args []string) ([]message, error) {
	messages := make([]message, 0, len(args))
	for _, arg := range args {
		label, data, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid message %q, want label=data", arg)
		}
		messages = append(messages, message{label: label, data: []byte(data)})
	}
	return messages, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	t := fiatshamir.NewWith(cfg.construction, cfg.protocol)
	for _, m := range cfg.messages {
		t.Message(m.label, m.data)
		log.Debug("recorded message", "label", m.label, "len", len(m.data))
	}

	challenge := t.ChallengeBytes(cfg.label, nil, cfg.n)
	log.Info("drew challenge", "protocol", cfg.protocol, "label", cfg.label, "messages", len(cfg.messages))

	_, err = fmt.Fprintln(stdout, hex.EncodeToString(challenge))
	return err
}
