package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"huff"
	"huff/internal/report"
	"huff/pkg/logger"

	"github.com/sirupsen/logrus"
)

const usage = `Compress:   huff <input>        writes <input>.huff
Decompress: huff <input.huff>   writes <input>
Report:     huff stats <input>
Codes:      huff codes <input>
`

func main() {
	level := os.Getenv("HUFF_LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	log, err := logger.New(level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "HUFF_LOG_LEVEL:", err)
		os.Exit(1)
	}

	switch {
	case len(os.Args) == 3 && os.Args[1] == "stats":
		if err := printStats(os.Args[2]); err != nil {
			fmt.Fprintln(os.Stderr, "stats error:", err)
			os.Exit(1)
		}
		return
	case len(os.Args) == 3 && os.Args[1] == "codes":
		if err := printCodes(os.Args[2]); err != nil {
			fmt.Fprintln(os.Stderr, "codes error:", err)
			os.Exit(1)
		}
		return
	case len(os.Args) != 2:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	inputPath := os.Args[1]
	ext := strings.ToLower(filepath.Ext(inputPath))

	// .huff → original bytes next to it
	if ext == ".huff" {
		outPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		if err := decompressFile(log, inputPath, outPath); err != nil {
			fmt.Fprintln(os.Stderr, "decompress error:", err)
			os.Exit(1)
		}
		fmt.Printf("Decompressed %s → %s\n", inputPath, outPath)
		return
	}

	outPath := inputPath + ".huff"
	if err := compressFile(log, inputPath, outPath); err != nil {
		fmt.Fprintln(os.Stderr, "compress error:", err)
		os.Exit(1)
	}
	fmt.Printf("Compressed %s → %s\n", inputPath, outPath)
}

func compressFile(log logrus.FieldLogger, inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	enc := huff.NewEncoder()
	enc.Log = log
	if err := enc.EncodeTo(out, in); err != nil {
		out.Close()
		os.Remove(outPath)
		return err
	}
	return out.Close()
}

func decompressFile(log logrus.FieldLogger, inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	dec := huff.NewDecoder()
	dec.Log = log
	data, err := dec.DecodeFrom(in)
	if err != nil {
		return err
	}

	return os.WriteFile(outPath, data, 0o644)
}

func printStats(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	r, err := report.Analyze(src)
	if err != nil {
		return err
	}
	_, err = r.WriteTo(os.Stdout)
	return err
}

func printCodes(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	root := huff.BuildTree(huff.CountFrequencies(src))
	if _, err := huff.GenerateCodes(root).WriteTo(os.Stdout); err != nil {
		return err
	}
	fmt.Println()
	return huff.FormatTree(os.Stdout, root)
}
