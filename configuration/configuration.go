// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/recordstream/fault"
	"github.com/bitmark-inc/recordstream/nodeinfo"
	"github.com/bitmark-inc/recordstream/recordfile"
	"github.com/bitmark-inc/recordstream/recordformat"
	"github.com/bitmark-inc/recordstream/signer"
	"github.com/bitmark-inc/recordstream/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultRecordDirectory  = "records"
	defaultSidecarDirectory = "sidecar"
	defaultSidecarMaxSize   = 256 * 1024 * 1024
	defaultIndexDirectory   = "index.leveldb"
	defaultKeyFile          = "" // no signing key by default

	defaultLogDirectory = "log"
	defaultLogFile      = "recordstream.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// NodeType - identity of the node writing the stream
type NodeType struct {
	AccountMemo string `gluamapper:"account_memo" json:"account_memo"`
	KeyFile     string `gluamapper:"key_file" json:"key_file"`
}

// RecordStreamType - settings applied to each block as it is opened
type RecordStreamType struct {
	Directory            string `gluamapper:"directory" json:"directory"`
	FormatVersion        int    `gluamapper:"format_version" json:"format_version"`
	SignatureFileVersion int    `gluamapper:"signature_file_version" json:"signature_file_version"`
	Compress             bool   `gluamapper:"compress" json:"compress"`
	MetadataSignature    bool   `gluamapper:"metadata_signature" json:"metadata_signature"`
	SidecarDirectory     string `gluamapper:"sidecar_directory" json:"sidecar_directory"`
	SidecarMaxSize       int64  `gluamapper:"sidecar_max_size" json:"sidecar_max_size"`
}

// IndexType - location of the block index database
type IndexType struct {
	Directory string `gluamapper:"directory" json:"directory"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Node          NodeType             `gluamapper:"node" json:"node"`
	RecordStream  RecordStreamType     `gluamapper:"record_stream" json:"record_stream"`
	Index         IndexType            `gluamapper:"index" json:"index"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// Options - the record file writer settings, relative record
// directories are placed under dataDirectory
func (r RecordStreamType) Options(dataDirectory string) recordfile.Options {
	return recordfile.Options{
		FormatVersion:        int32(r.FormatVersion),
		SignatureFileVersion: int32(r.SignatureFileVersion),
		Compress:             r.Compress,
		MetadataSignature:    r.MetadataSignature,
		RecordDirectory:      util.EnsureAbsolute(dataDirectory, r.Directory),
		SidecarDirectory:     r.SidecarDirectory,
		SidecarMaxSize:       r.SidecarMaxSize,
	}
}

// NodeInfo - the node identity for the record file writer
func (c *Configuration) NodeInfo() (nodeinfo.NodeInfo, error) {
	return nodeinfo.New(c.Node.AccountMemo)
}

// Signer - Ed25519 signer read from the node's key file
func (c *Configuration) Signer() (*signer.Ed25519, error) {
	if "" == c.Node.KeyFile {
		return nil, fault.ErrMissingSigner
	}
	return signer.LoadEd25519(c.Node.KeyFile)
}

// WriterOptions - record file writer settings for the next block
func (c *Configuration) WriterOptions() recordfile.Options {
	return c.RecordStream.Options(c.DataDirectory)
}

// Load - read decode and verify the configuration
func Load(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	if !util.EnsureFileExists(configurationFileName) {
		return nil, fault.ErrNotFoundConfigFile
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,

		Node: NodeType{
			KeyFile: defaultKeyFile,
		},

		RecordStream: RecordStreamType{
			Directory:            defaultRecordDirectory,
			FormatVersion:        recordformat.Version,
			SignatureFileVersion: recordformat.SignatureVersion,
			Compress:             true,
			MetadataSignature:    true,
			SidecarDirectory:     defaultSidecarDirectory,
			SidecarMaxSize:       defaultSidecarMaxSize,
		},

		Index: IndexType{
			Directory: defaultIndexDirectory,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: LoglevelMap{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, errors.Wrapf(fault.ErrInvalidDirectory, "data directory: %q", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, errors.Wrapf(fault.ErrInvalidDirectory, "data directory: %q is not a directory", options.DataDirectory)
	}

	if _, err := options.NodeInfo(); nil != err {
		return nil, errors.Wrapf(err, "node account memo: %q", options.Node.AccountMemo)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.Node.KeyFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names
	mustNotBePaths := []*string{
		&options.Logging.File,
		&options.RecordStream.SidecarDirectory,
	}
	for _, f := range mustNotBePaths {
		if err := util.EnsurePlainName(*f); nil != err {
			return nil, errors.Wrap(fault.ErrInvalidDirectory, err.Error())
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.RecordStream.Directory,
		&options.Index.Directory,
		&options.Logging.Directory,
	} {
		*d, err = util.EnsureDirectory(options.DataDirectory, *d)
		if nil != err {
			return nil, err
		}
	}

	if err := options.WriterOptions().Validate(); nil != err {
		return nil, err
	}

	// done
	return options, nil
}
