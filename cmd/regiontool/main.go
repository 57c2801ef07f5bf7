// regiontool inspects and maintains a world's region files.
//
//	regiontool -world ./data/world stats
//	regiontool -world ./data/world compact
//	regiontool -world ./data/world backup -o world.tar.zst
package main

import (
	"archive/tar"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/colorBanded/rayCave/internal/server/world"
	"github.com/colorBanded/rayCave/internal/server/world/region"
)

func main() {
	worldDir := flag.String("world", "./data/world", "world directory")
	out := flag.String("o", "world-backup.tar.zst", "backup output file")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: regiontool -world <dir> stats|compact|backup")
		os.Exit(2)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	store := region.NewStore(log, *worldDir)

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "stats":
		err = stats(store)
	case "compact":
		err = compact(store)
	case "backup":
		err = backup(*worldDir, *out)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		log.Error("regiontool failed", "error", err)
		os.Exit(1)
	}
}

func stats(store *region.Store) error {
	regions, err := store.Regions()
	if err != nil {
		return err
	}
	if len(regions) == 0 {
		fmt.Println("no region files")
		return nil
	}

	totalChunks := 0
	var totalBytes int64
	for _, rc := range regions {
		chunks := store.ChunkCountInRegion(rc)
		size := store.RegionFileSize(rc)
		totalChunks += chunks
		totalBytes += size
		live := int64(chunks * world.ChunkPayloadBytes)
		fmt.Printf("region %v: %d chunks, %d bytes on disk, %d live payload bytes\n",
			rc, chunks, size, live)
	}
	fmt.Printf("total: %d regions, %d chunks, %d bytes\n", len(regions), totalChunks, totalBytes)
	return nil
}

func compact(store *region.Store) error {
	regions, err := store.Regions()
	if err != nil {
		return err
	}
	for _, rc := range regions {
		before := store.RegionFileSize(rc)
		if err := store.CompactRegion(rc); err != nil {
			return fmt.Errorf("compact region %v: %w", rc, err)
		}
		after := store.RegionFileSize(rc)
		fmt.Printf("region %v: %d -> %d bytes\n", rc, before, after)
	}
	return nil
}

// backup streams the world directory into a zstd-compressed tar archive.
func backup(worldDir, out string) error {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	tw := tar.NewWriter(zw)

	err = filepath.Walk(worldDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(worldDir, path)
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = strings.ReplaceAll(rel, string(filepath.Separator), "/")
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(tw, src)
		return err
	})
	if err != nil {
		return fmt.Errorf("archive world: %w", err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finish tar: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish zstd: %w", err)
	}
	fmt.Printf("backup written to %s\n", out)
	return nil
}
