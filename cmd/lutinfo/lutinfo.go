// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command lutinfo describes the lookup tables stored in a file:
// dataset names, shapes, axes and attributes.
//
// Usage:
//
//	lutinfo [-d dataset] file.h5|file.yaml
//
// With -d only the named dataset is read and described, which avoids
// loading the rest of an HDF5 file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lutsgo/luts"
	"github.com/lutsgo/luts/lutshdf5"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("lutinfo: ")
	dataset := flag.String("d", "", "describe only the named dataset")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: lutinfo [-d dataset] file.h5|file.yaml")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	m, err := open(path, *dataset)
	if err != nil {
		log.Fatal(err)
	}
	if *dataset != "" {
		l, err := m.Dataset(*dataset)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(l)
		return
	}
	fmt.Print(m)
}

func open(path, dataset string) (*luts.MLUT, error) {
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return luts.OpenMLUTYAML(path)
	}
	if dataset != "" {
		return lutshdf5.Open(path, dataset)
	}
	return lutshdf5.Open(path)
}
