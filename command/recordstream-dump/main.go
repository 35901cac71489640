// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/spf13/afero"

	"github.com/bitmark-inc/recordstream/signer"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const defaultSidecarDirectory = "sidecar"

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "verify", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "sidecars", HasArg: getoptions.NO_ARGUMENT, Short: 's'},
		{Long: "sidecar-directory", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'd'},
		{Long: "public-key", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'k'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || 0 == len(arguments) {
		exitwithstatus.Message("usage: %s [--help] [--verify] [--sidecars] [--sidecar-directory=NAME] [--public-key=HEX] FILE...", program)
	}

	d := dumper{
		fs:               afero.NewOsFs(),
		verify:           len(options["verify"]) > 0,
		sidecars:         len(options["sidecars"]) > 0,
		sidecarDirectory: defaultSidecarDirectory,
	}
	if len(options["sidecar-directory"]) > 0 {
		d.sidecarDirectory = options["sidecar-directory"][0]
	}
	if len(options["public-key"]) > 0 {
		d.verifier, err = signer.NewEd25519VerifierFromHex(options["public-key"][0])
		if nil != err {
			exitwithstatus.Message("%s: public key error: %s", program, err)
		}
	}

	failed := 0
	for _, fileName := range arguments {
		r, err := d.dump(fileName)
		if nil != err {
			exitwithstatus.Message("%s: file: %q  error: %s", program, fileName, err)
		}
		if !r.ok() {
			failed += 1
		}
		printJson(r)
	}

	if 0 != failed {
		exitwithstatus.Message("%s: %d of %d files failed verification", program, failed, len(arguments))
	}
}

func printJson(message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		exitwithstatus.Message("Error: printjson marshall error: %s", err)
	}
	fmt.Printf("%s\n", b)
}
