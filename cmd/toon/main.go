// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program toon converts between JSON or YAML documents and the TOON
// line-oriented notation.
//
// Usage:
//
//	toon [flags] encode [file]    -- JSON or YAML to TOON
//	toon [flags] decode [file]    -- TOON to JSON
//
// With no file argument, input is read from stdin. JSON input may carry
// comments and trailing commas, which are stripped before parsing.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/tailscale/hujson"
	"github.com/theory/jsonpath"
	"github.com/toonlab/toon"
)

var (
	doPretty  = flag.Bool("pretty", false, "Indent table rows below their header")
	doFlat    = flag.Bool("flat", false, "Do not expand dotted keys when decoding")
	useYAML   = flag.Bool("yaml", false, "Parse input as YAML when encoding")
	pathExpr  = flag.String("path", "", "Filter the input through this JSONPath query")
	doCompact = flag.Bool("compact", false, "Emit compact JSON when decoding")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: %[1]s [flags] encode [file]
       %[1]s [flags] decode [file]

Convert a JSON or YAML document to TOON notation, or a TOON document
back to JSON. With no file argument, input is read from stdin.

Flags:
`, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var run func(input []byte, name string) error
	switch cmd := flag.Arg(0); cmd {
	case "encode":
		run = runEncode
	case "decode":
		run = runDecode
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", cmd)
		os.Exit(2)
	}

	input, name, err := readInput(flag.Args()[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := run(input, name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func readInput(args []string) ([]byte, string, error) {
	switch len(args) {
	case 0:
		data, err := io.ReadAll(os.Stdin)
		return data, "", err
	case 1:
		data, err := os.ReadFile(args[0])
		return data, args[0], err
	default:
		return nil, "", fmt.Errorf("extra arguments after input file: %v", args[1:])
	}
}

func runEncode(input []byte, name string) error {
	obj, err := parseInput(input, name)
	if err != nil {
		return err
	}
	if obj, err = applyPath(obj); err != nil {
		return err
	}
	root, err := toon.ToValue(obj)
	if err != nil {
		return err
	}
	c := toon.New()
	text, err := c.EncodeWithOptions(root, toon.EncodeOptions{PrettyTables: *doPretty})
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func runDecode(input []byte, name string) error {
	c := toon.New()
	c.ExpandPaths(!*doFlat)
	obj, err := c.Decode(string(input))
	if err != nil {
		return err
	}
	out, err := applyPath(toon.ToGo(obj))
	if err != nil {
		return err
	}
	var data []byte
	if *doCompact {
		data, err = json.Marshal(out)
	} else {
		data, err = json.MarshalIndent(out, "", "  ")
	}
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// parseInput decodes input as JSON or, if -yaml is set or the file name has a
// YAML extension, as YAML. JSON is standardized first so the tool accepts
// inputs with comments and trailing commas.
func parseInput(input []byte, name string) (any, error) {
	if *useYAML || isYAMLName(name) {
		var v any
		if err := yaml.Unmarshal(input, &v); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
		return v, nil
	}
	std, err := hujson.Standardize(input)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	var v any
	if err := json.Unmarshal(std, &v); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return v, nil
}

func isYAMLName(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}

// applyPath filters v through the -path query, if one was given. A query
// with a single result yields that result; multiple results yield an array.
func applyPath(v any) (any, error) {
	if *pathExpr == "" {
		return v, nil
	}
	p, err := jsonpath.Parse(*pathExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", *pathExpr, err)
	}
	results := p.Select(v)
	switch len(results) {
	case 0:
		return nil, fmt.Errorf("path %q did not match any values", *pathExpr)
	case 1:
		return results[0], nil
	default:
		return []any(results), nil
	}
}
