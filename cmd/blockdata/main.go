// blockdata fetches a block-definition bundle (blocks.yaml plus textures)
// into the data directory. Sources can be URLs, git repos or local paths,
// anything go-getter understands.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"
)

func main() {
	var (
		src = flag.String("src", "", "bundle source (url, git::..., or local dir)")
		out = flag.String("o", "./data/data", "output dir path")
	)
	flag.Parse()

	if *src == "" {
		log.Fatal("bundle source required (-src)")
	}
	if *out == "" {
		log.Fatal("output dir path required (-o)")
	}

	staging := *out + ".staging"
	if err := os.RemoveAll(staging); err != nil {
		log.Fatal(err)
	}

	log.Printf("fetching block data from %s", *src)
	if err := get.Get(staging, *src); err != nil {
		log.Fatal(err)
	}

	// Only promote the bundle if it actually carries block definitions.
	if _, err := os.Stat(filepath.Join(staging, "blocks.yaml")); err != nil {
		os.RemoveAll(staging)
		log.Fatalf("bundle has no blocks.yaml: %v", err)
	}

	if err := os.RemoveAll(*out); err != nil {
		log.Fatal(err)
	}
	if err := os.Rename(staging, *out); err != nil {
		log.Fatal(err)
	}
	log.Printf("block data installed into %s", *out)
}
