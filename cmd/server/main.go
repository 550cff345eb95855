package main

import (
	"flag"
	"log"

	"github.com/Tani1964/compiler-api/pkg/server"
)

func main() {
	cfg := server.DefaultConfig()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	baseOps := flag.Bool("base-ops", false, "scan only the base operator set (no **, &&, ||)")
	quiet := flag.Bool("quiet", false, "disable request logging")
	flag.Parse()

	if *baseOps {
		cfg.Compiler.Lexer.ExtendedOperators = false
	}
	if *quiet {
		cfg.Logger = nil
	}

	if err := server.New(cfg).ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
