// Command merklenotesd is a small demonstration tool for the merkle
// module: it builds a fixed-height note commitment tree, appends the
// given commitments, and prints the resulting root (and, if asked, a
// witness).
//
// Usage:
//
//	merklenotesd [flags]
//
// Flags:
//
//	-depth     tree depth (default 32)
//	-backend   storage backend: memory or filedb (default memory)
//	-datadir   kvstore.FileDB directory, used only when -backend=filedb
//	-commit    hex-encoded 32-byte commitment to append (repeatable)
//	-witness   leaf index to print a witness for (-1 to skip)
package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/BeanstalkNetwork/merkle-notes/internal/mlog"
	"github.com/BeanstalkNetwork/merkle-notes/merkle"
	"github.com/BeanstalkNetwork/merkle-notes/merkle/kvstore"
	"github.com/BeanstalkNetwork/merkle-notes/merkle/refhash"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

type config struct {
	Depth   uint
	Backend string
	DataDir string
	Commits []string
	Witness int
}

func defaultConfig() config {
	return config{
		Depth:   32,
		Backend: "memory",
		DataDir: "./merklenotes-data",
		Witness: -1,
	}
}

// run is the actual entry point, returning an exit code. It accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	cfg, exit, code := parseFlags(args)
	if exit {
		return code
	}

	log := mlog.Default().Module("merklenotesd")

	log.Info("merklenotesd starting",
		"depth", cfg.Depth,
		"backend", cfg.Backend,
		"commits", len(cfg.Commits),
	)

	commitments := make([]refhash.Commitment, 0, len(cfg.Commits))
	for _, raw := range cfg.Commits {
		c, err := parseCommitment(raw)
		if err != nil {
			log.Error("invalid commitment", "value", raw, "error", err)
			return 1
		}
		commitments = append(commitments, c)
	}

	tree, closeFn, err := buildTree(cfg, log)
	if err != nil {
		log.Error("failed to build tree", "error", err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	for i, c := range commitments {
		tree.Add(c)
		log.Debug("appended commitment", "index", i, "leaves", tree.Len())
	}

	root, ok := tree.RootHash()
	if !ok {
		log.Error("tree is empty, no root to print")
		return 1
	}
	fmt.Printf("leaves: %d\n", tree.Len())
	fmt.Printf("root:   %s\n", hex.EncodeToString(root[:]))

	if cfg.Witness >= 0 {
		w, ok := tree.Witness(uint32(cfg.Witness))
		if !ok {
			log.Error("no such leaf", "index", cfg.Witness)
			return 1
		}
		fmt.Printf("witness(%d):\n", cfg.Witness)
		fmt.Printf("  tree_size: %d\n", w.TreeSize)
		fmt.Printf("  root:      %s\n", hex.EncodeToString(w.RootHash[:]))
		for i, node := range w.AuthPath {
			side := "left"
			if node.Right {
				side = "right"
			}
			fmt.Printf("  [%2d] %-5s %s\n", i, side, hex.EncodeToString(node.Hash[:]))
		}
	}

	return 0
}

func parseCommitment(raw string) (refhash.Commitment, error) {
	var c refhash.Commitment
	b, err := hex.DecodeString(raw)
	if err != nil {
		return c, fmt.Errorf("not valid hex: %w", err)
	}
	if len(b) != len(c) {
		return c, fmt.Errorf("want %d bytes, got %d", len(c), len(b))
	}
	copy(c[:], b)
	return c, nil
}

// buildTree constructs the Tree for the requested backend. The returned
// close function (nil for the memory backend) must be called once the
// caller is done using the tree.
func buildTree(cfg config, log *mlog.Logger) (*merkle.Tree[[32]byte, refhash.Commitment], func(), error) {
	hasher := refhash.Hasher{}

	switch cfg.Backend {
	case "memory":
		return merkle.NewInMemory[[32]byte, refhash.Commitment](hasher, uint8(cfg.Depth)), nil, nil

	case "filedb":
		db, err := kvstore.OpenFileDB(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open filedb at %s: %w", cfg.DataDir, err)
		}
		arena, err := kvstore.NewArena[[32]byte, refhash.Commitment](db, hasher)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("init kvstore arena: %w", err)
		}
		log.Debug("opened filedb backend", "datadir", cfg.DataDir)
		tree := merkle.New[[32]byte, refhash.Commitment](hasher, uint8(cfg.Depth), arena)
		return tree, func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend %q (want memory or filedb)", cfg.Backend)
	}
}

// parseFlags parses CLI arguments into a config. Returns the config,
// whether the caller should exit immediately, and the exit code.
func parseFlags(args []string) (config, bool, int) {
	cfg := defaultConfig()
	fs := newCustomFlagSet("merklenotesd")

	var depth uint
	fs.UintVar(&depth, "depth", cfg.Depth, "tree depth")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "storage backend: memory or filedb")
	fs.StringVar(&cfg.DataDir, "datadir", cfg.DataDir, "filedb directory (used only when -backend=filedb)")
	fs.hexListVar(&cfg.Commits, "commit", "hex-encoded 32-byte commitment to append (repeatable)")
	fs.IntVar(&cfg.Witness, "witness", cfg.Witness, "leaf index to print a witness for (-1 to skip)")
	verbose := fs.Bool("v", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cfg, true, 2
	}
	cfg.Depth = depth

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	mlog.SetDefault(mlog.New(level))

	return cfg, false, 0
}
